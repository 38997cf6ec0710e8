package presskit

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

// Client handles communication with the press-kit PDF generation service.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// NewClient creates a new press-kit client instance
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		log.Println("Warning: press-kit service URL is empty.")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type GenerateRequest struct {
	ProfileID string `json:"profile_id"`
	Locale    string `json:"locale,omitempty"`
}

// GenerateResponse carries the hosted URL of the rendered PDF.
type GenerateResponse struct {
	URL    string `json:"url"`
	Status string `json:"status"` // "ok", "error"
}

// Generate renders a press-kit PDF for the given profile. Single attempt,
// no retry policy.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("press-kit service error: status %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(respBytes, &genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &genResp, nil
}
