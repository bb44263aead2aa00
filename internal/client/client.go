// Package client submits confirmed transaction candidates to the FinShare
// backend as expenses. Everything before submission (extraction, review) is
// local; this is the only component that talks to the network.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/finshare/finx/internal/model"
	"github.com/finshare/finx/internal/util"
)

// Client is the FinShare backend API client
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// New creates a backend client from configuration
func New(cfg model.BackendConfig) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
	}
}

// expenseRequest is the POST /api/expenses body
type expenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	GroupID     string  `json:"group_id,omitempty"`
}

// expenseResponse is the backend's create-expense reply
type expenseResponse struct {
	Expense struct {
		ID string `json:"id"`
	} `json:"expense"`
	Message string `json:"message"`
}

// SubmitCandidate creates an expense from a confirmed candidate and returns
// the backend expense id.
func (c *Client) SubmitCandidate(ctx context.Context, cand *model.TransactionCandidate, groupID string) (string, error) {
	body, err := json.Marshal(expenseRequest{
		Description: cand.Merchant,
		Amount:      cand.Amount,
		Category:    cand.Category,
		GroupID:     groupID,
	})
	if err != nil {
		return "", fmt.Errorf("marshal expense: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/expenses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit expense: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("backend status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var expResp expenseResponse
	if err := json.NewDecoder(resp.Body).Decode(&expResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return expResp.Expense.ID, nil
}

// Health checks the backend health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
