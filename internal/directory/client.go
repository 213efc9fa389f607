// Package directory is the HTTP client for the group-membership directory.
// Listing is paginated; insert/remove act on one member at a time so the
// reconciler can tolerate individual failures.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hr-ops/internal/httpx"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Retry   httpx.RetryConfig

	// PageSize caps members per list call. The API maximum is 200.
	PageSize int
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Token:    token,
		HTTP:     &http.Client{Timeout: time.Minute},
		Retry:    httpx.DefaultRetryConfig(),
		PageSize: 200,
	}
}

type listResponse struct {
	Members []struct {
		Email string `json:"email"`
	} `json:"members"`
	NextPageToken string `json:"nextPageToken"`
}

// ListMembers walks all pages of the group's membership.
func (c *Client) ListMembers(ctx context.Context, group string) ([]string, error) {
	var out []string
	pageToken := ""
	for {
		u := fmt.Sprintf("%s/v1/groups/%s/members?maxResults=%d", c.BaseURL, url.PathEscape(group), c.PageSize)
		if pageToken != "" {
			u += "&pageToken=" + url.QueryEscape(pageToken)
		}

		var page listResponse
		if err := httpx.DoJSON(ctx, c.HTTP, c.getRequest(u), &page, c.Retry); err != nil {
			return nil, fmt.Errorf("directory: list %s: %w", group, err)
		}
		for _, m := range page.Members {
			out = append(out, m.Email)
		}
		if page.NextPageToken == "" {
			return out, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) InsertMember(ctx context.Context, group, email string) error {
	body, _ := json.Marshal(map[string]string{"email": email, "role": "MEMBER"})
	u := fmt.Sprintf("%s/v1/groups/%s/members", c.BaseURL, url.PathEscape(group))

	build := func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+c.Token)
		return r, nil
	}
	if _, err := httpx.Do(ctx, c.HTTP, build, c.Retry); err != nil {
		return fmt.Errorf("directory: insert %s into %s: %w", email, group, err)
	}
	return nil
}

func (c *Client) RemoveMember(ctx context.Context, group, email string) error {
	u := fmt.Sprintf("%s/v1/groups/%s/members/%s", c.BaseURL, url.PathEscape(group), url.PathEscape(email))

	build := func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
		if err != nil {
			return nil, err
		}
		r.Header.Set("Authorization", "Bearer "+c.Token)
		return r, nil
	}
	if _, err := httpx.Do(ctx, c.HTTP, build, c.Retry); err != nil {
		return fmt.Errorf("directory: remove %s from %s: %w", email, group, err)
	}
	return nil
}

func (c *Client) getRequest(u string) func(context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		r.Header.Set("Authorization", "Bearer "+c.Token)
		return r, nil
	}
}
