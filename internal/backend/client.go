/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stagescript/internal/storage"
)

// Client is a minimal HTTP client for the sync API.
type Client struct {
	BaseURL string
	Token   string // bearer token
	client  *http.Client
}

// NewClient creates a new sync client. baseURL may include a trailing slash; it will be normalized.
func NewClient(baseURL string, token string) *Client {
	b := strings.TrimRight(baseURL, "/")
	return &Client{
		BaseURL: b,
		Token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, dest any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server %s %s: %s", method, u.Path, resp.Status)
	}
	if dest == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(dest)
}

// ScriptInfo is a minimal projection for listing.
type ScriptInfo struct {
	ID        int64     `json:"id"`
	StableID  string    `json:"stable_id"`
	Name      string    `json:"name"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScriptEnvelope carries one stored script with its manifest document.
type ScriptEnvelope struct {
	ID        int64           `json:"id"`
	StableID  string          `json:"stable_id"`
	Name      string          `json:"name"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Doc       json.RawMessage `json:"doc"`
}

// FetchToken obtains a bearer token from the server and stores it on the client.
func (c *Client) FetchToken(ctx context.Context, subject string) (string, error) {
	body, err := json.Marshal(map[string]any{"subject": subject})
	if err != nil {
		return "", err
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/token", bytes.NewReader(body), &resp); err != nil {
		return "", err
	}
	c.Token = resp.Token
	return resp.Token, nil
}

// ListScripts returns available scripts (read-only).
func (c *Client) ListScripts(ctx context.Context) ([]ScriptInfo, error) {
	var list []ScriptInfo
	if err := c.doJSON(ctx, http.MethodGet, "/api/scripts", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetScript fetches the stored script for a stable id.
func (c *Client) GetScript(ctx context.Context, stableID string) (*ScriptEnvelope, error) {
	var env ScriptEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/api/scripts/"+url.PathEscape(stableID), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// PushScript uploads the manifest document under the stable id and returns
// the server-side version after the write.
func (c *Client) PushScript(ctx context.Context, stableID string, doc storage.Document) (int64, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}
	var resp struct {
		Version int64 `json:"version"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/scripts/"+url.PathEscape(stableID), bytes.NewReader(body), &resp); err != nil {
		return 0, err
	}
	return resp.Version, nil
}

// PullScript fetches the stored script and decodes its manifest document.
func (c *Client) PullScript(ctx context.Context, stableID string) (storage.Document, int64, error) {
	env, err := c.GetScript(ctx, stableID)
	if err != nil {
		return storage.Document{}, 0, err
	}
	var doc storage.Document
	if err := json.Unmarshal(env.Doc, &doc); err != nil {
		return storage.Document{}, 0, fmt.Errorf("decode script %q: %w", stableID, err)
	}
	return doc, env.Version, nil
}
