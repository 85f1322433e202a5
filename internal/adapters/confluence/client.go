/* Copyright (c) 2025 PMO-MCP Authors
 * SPDX-License-Identifier: BSD-3-Clause */
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonbondani/PMO-MCP/internal/config"
	"github.com/jonbondani/PMO-MCP/internal/domain"
	"github.com/rs/zerolog"
)

type Client struct {
	baseURL string
	user    string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.ConfluenceBaseURL,
		user:    cfg.ConfluenceUsername,
		token:   cfg.ConfluenceAPIToken,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		log:     log,
	}
}

func (c *Client) contentURL(pageID string) string {
	return strings.TrimRight(c.baseURL, "/") + "/rest/api/content/" + url.PathEscape(pageID)
}

func (c *Client) do(ctx context.Context, method, u string, body any) (map[string]any, error) {
	if c.baseURL == "" { return nil, errors.New("confluence: empty baseURL") }
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil { return nil, err }
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil { return nil, err }
	req.Header.Set("Accept", "application/json")
	if body != nil { req.Header.Set("Content-Type", "application/json") }
	if c.user != "" || c.token != "" { req.SetBasicAuth(c.user, c.token) }
	resp, err := c.http.Do(req)
	if err != nil { return nil, err }
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("confluence api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return nil, err }
	return out, nil
}

// Page fetches the current title and version number of a page.
func (c *Client) Page(ctx context.Context, pageID string) (*domain.Page, error) {
	if pageID == "" { return nil, errors.New("confluence: empty page id") }
	m, err := c.do(ctx, http.MethodGet, c.contentURL(pageID), nil)
	if err != nil { return nil, err }
	p := &domain.Page{ID: pageID}
	if t, ok := m["title"].(string); ok { p.Title = t }
	if v, ok := m["version"].(map[string]any); ok {
		if n, ok := v["number"].(float64); ok { p.Version = int(n) }
	}
	return p, nil
}

// UpdatePage writes a new body at upd.Version. The version is whatever the
// caller read plus one; there is no compare-and-swap, so a concurrent writer
// wins by being last.
func (c *Client) UpdatePage(ctx context.Context, pageID string, upd domain.PageUpdate) error {
	if pageID == "" { return errors.New("confluence: empty page id") }
	payload := map[string]any{
		"type":    "page",
		"title":   upd.Title,
		"version": map[string]any{"number": upd.Version},
		"body": map[string]any{
			"storage": map[string]any{
				"value":          upd.Body,
				"representation": "storage",
			},
		},
	}
	_, err := c.do(ctx, http.MethodPut, c.contentURL(pageID), payload)
	return err
}
