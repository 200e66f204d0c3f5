// Package openrouter is a minimal client for the OpenRouter key provisioning API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/imamik/rosterkeys/internal/config"
	"github.com/imamik/rosterkeys/internal/util/naming"
)

// Client creates API keys on behalf of a provisioning key.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// CreateKeyRequest describes one key to create.
type CreateKeyRequest struct {
	ProvisioningKey string
	Email           string
	Limit           float64
	Tags            []string
	Date            string
}

// CreatedKey is the result of a successful key creation.
type CreatedKey struct {
	KeyName string
	APIKey  string
	Hash    string
}

type createKeyBody struct {
	Name  string  `json:"name"`
	Limit float64 `json:"limit"`
}

type createKeyResponse struct {
	Key  string  `json:"key"`
	Data keyData `json:"data"`
}

type keyData struct {
	Hash  string  `json:"hash"`
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Limit float64 `json:"limit"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a client for the given API root, e.g. https://openrouter.ai/api/v1.
// An empty baseURL selects the public endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = config.DefaultOpenRouterBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// CreateKey creates a key named "{email} {date} {tags...}" with the given spending limit.
func (c *Client) CreateKey(ctx context.Context, in CreateKeyRequest) (*CreatedKey, error) {
	if in.ProvisioningKey == "" {
		return nil, fmt.Errorf("provisioning key is required")
	}

	name := naming.KeyName(in.Email, in.Date, in.Tags)
	payload, err := json.Marshal(createKeyBody{Name: name, Limit: in.Limit})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/keys", in.ProvisioningKey, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var resp createKeyResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("create key %q: %w", name, err)
	}

	if resp.Key == "" || resp.Data.Hash == "" {
		return nil, fmt.Errorf("create key %q: response is missing key or hash", name)
	}

	keyName := resp.Data.Name
	if keyName == "" {
		keyName = name
	}

	return &CreatedKey{
		KeyName: keyName,
		APIKey:  resp.Key,
		Hash:    resp.Data.Hash,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w (status %d)", err, resp.StatusCode)
	}

	return nil
}
