// Package docgen talks to the document service: duplicate a template into a
// new document with {{token}} substitutions applied, wait for the copy to
// become readable, export as PDF.
package docgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hr-ops/internal/httpx"
)

// ErrNotReady is returned by WaitReady when the document never became
// accessible inside the timeout. It fails the one record being processed,
// not the whole batch.
var ErrNotReady = errors.New("docgen: document not ready before timeout")

type Document struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Retry   httpx.RetryConfig

	// Poll cadence for WaitReady. Freshly duplicated documents take a few
	// seconds to become readable on the service side.
	PollInterval time.Duration
	PollTimeout  time.Duration
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:      baseURL,
		Token:        token,
		HTTP:         &http.Client{Timeout: time.Minute},
		Retry:        httpx.DefaultRetryConfig(),
		PollInterval: 3 * time.Second,
		PollTimeout:  30 * time.Second,
	}
}

type createRequest struct {
	TemplateID string            `json:"template_id"`
	Name       string            `json:"name"`
	FolderID   string            `json:"folder_id,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
}

// CreateFromTemplate duplicates a template into a named document, applying
// the {{token}} substitution map server-side.
func (c *Client) CreateFromTemplate(ctx context.Context, templateID, name, folderID string, values map[string]string) (Document, error) {
	body, err := json.Marshal(createRequest{TemplateID: templateID, Name: name, FolderID: folderID, Values: values})
	if err != nil {
		return Document{}, fmt.Errorf("docgen: marshal: %w", err)
	}

	build := func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/documents", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+c.Token)
		return r, nil
	}

	var doc Document
	if err := httpx.DoJSON(ctx, c.HTTP, build, &doc, c.Retry); err != nil {
		return Document{}, fmt.Errorf("docgen: create from template %s: %w", templateID, err)
	}
	return doc, nil
}

type renderRequest struct {
	Name string `json:"name"`
	HTML string `json:"html"`
}

// RenderPDF submits a fully rendered HTML body and returns the PDF bytes.
// Used for one-off letters that are built locally rather than duplicated
// from a stored template.
func (c *Client) RenderPDF(ctx context.Context, name, html string) ([]byte, error) {
	body, err := json.Marshal(renderRequest{Name: name, HTML: html})
	if err != nil {
		return nil, fmt.Errorf("docgen: marshal: %w", err)
	}

	build := func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/documents/render?format=pdf", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+c.Token)
		return r, nil
	}

	blob, err := httpx.Do(ctx, c.HTTP, build, c.Retry)
	if err != nil {
		return nil, fmt.Errorf("docgen: render %s: %w", name, err)
	}
	return blob, nil
}

// WaitReady polls until the document answers a metadata read, with a fixed
// interval and a hard deadline.
func (c *Client) WaitReady(ctx context.Context, docID string) error {
	deadline := time.Now().Add(c.PollTimeout)
	for {
		if err := c.stat(ctx, docID); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrNotReady, docID)
		}
		t := time.NewTimer(c.PollInterval)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}
}

// ExportPDF fetches the rendered PDF bytes of a document.
func (c *Client) ExportPDF(ctx context.Context, docID string) ([]byte, error) {
	u := fmt.Sprintf("%s/v1/documents/%s/export?format=pdf", c.BaseURL, url.PathEscape(docID))
	build := func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		r.Header.Set("Authorization", "Bearer "+c.Token)
		return r, nil
	}
	blob, err := httpx.Do(ctx, c.HTTP, build, c.Retry)
	if err != nil {
		return nil, fmt.Errorf("docgen: export %s: %w", docID, err)
	}
	return blob, nil
}

// stat is a single readiness check: one metadata GET, no retries. The poll
// loop in WaitReady owns the cadence.
func (c *Client) stat(ctx context.Context, docID string) error {
	u := fmt.Sprintf("%s/v1/documents/%s", c.BaseURL, url.PathEscape(docID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("docgen: stat %s: status %d", docID, resp.StatusCode)
	}
	return nil
}
