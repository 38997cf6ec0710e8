package aisearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client handles communication with the AI-assisted search service. The
// service is a black box: one attempt per query, failures surface to the
// caller.
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewClient creates a new client instance
// apiKey should be loaded securely (e.g., from environment variable)
func NewClient(baseURL, apiKey string) *Client {
	if apiKey == "" {
		log.Println("Warning: AI search API Key is empty.")
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Search Structures ---

type SearchRequest struct {
	Query        string   `json:"query"`
	ProfileTypes []string `json:"profile_types,omitempty"`
	Limit        int      `json:"limit,omitempty"`
}

// SearchResponse represents the top-level response from the search service
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Status  string         `json:"status"` // "ok", "empty", "error"
}

type SearchResult struct {
	ProfileID   string  `json:"profile_id"`
	DisplayName string  `json:"display_name"`
	ProfileType string  `json:"profile_type"`
	Score       float64 `json:"score"`
	Snippet     string  `json:"snippet,omitempty"`
}

// Search runs a semantic query against the profile directory.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai search error: status %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(respBytes, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &searchResp, nil
}
