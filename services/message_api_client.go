package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"lostfound/models"
)

// MessageAPIClient talks to the remote admin-messages API. Calls are a
// single attempt; callers degrade to local persistence on failure.
type MessageAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMessageAPIClient(baseURL string) *MessageAPIClient {
	return &MessageAPIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

func (c *MessageAPIClient) List(ctx context.Context) ([]models.AdminMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/admin/messages", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create message list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("messages API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("messages API responded with status: %s", resp.Status)
	}

	var messages []models.AdminMessage
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("failed to decode message list: %w", err)
	}
	return messages, nil
}

func (c *MessageAPIClient) Create(ctx context.Context, msg models.AdminMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create message create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("messages API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("messages API responded with status: %s", resp.Status)
	}
	return nil
}

func (c *MessageAPIClient) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/admin/messages/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("failed to create message delete request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("messages API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("messages API responded with status: %s", resp.Status)
	}
	return nil
}
