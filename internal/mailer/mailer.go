// Package mailer talks to the hosted mail API. Delivery is fire-and-forget
// from the caller's perspective: a non-2xx answer surfaces as an error, there
// is no delivery tracking.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hr-ops/internal/httpx"
)

type Attachment struct {
	Filename string
	Content  []byte
}

type Message struct {
	To          string
	CC          string
	Subject     string
	HTMLBody    string
	SenderName  string
	Attachments []Attachment
}

// Sender is the narrow edge the operations depend on; the HTTP client below
// is the production implementation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Retry   httpx.RetryConfig
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: time.Minute},
		Retry:   httpx.DefaultRetryConfig(),
	}
}

type sendRequest struct {
	To          string           `json:"to"`
	CC          string           `json:"cc,omitempty"`
	Subject     string           `json:"subject"`
	HTMLBody    string           `json:"html_body"`
	SenderName  string           `json:"sender_name,omitempty"`
	Attachments []sendAttachment `json:"attachments,omitempty"`
}

type sendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"` // base64
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mailer: empty recipient")
	}

	req := sendRequest{
		To:         msg.To,
		CC:         msg.CC,
		Subject:    msg.Subject,
		HTMLBody:   msg.HTMLBody,
		SenderName: msg.SenderName,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, sendAttachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		})
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("mailer: marshal: %w", err)
	}

	build := func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/messages", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+c.Token)
		return r, nil
	}

	if _, err := httpx.Do(ctx, c.HTTP, build, c.Retry); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", msg.To, err)
	}
	return nil
}

// Recorder captures messages instead of sending them. Test double.
type Recorder struct {
	Sent []Message
	Err  error
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	if r.Err != nil {
		return r.Err
	}
	r.Sent = append(r.Sent, msg)
	return nil
}
