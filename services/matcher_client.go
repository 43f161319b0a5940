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

// MatcherClient talks to the external matching/notification service.
// Every call is a single attempt: no retry, no backoff, and no client
// timeout is configured, matching the behavior the web client had.
type MatcherClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMatcherClient(baseURL string) *MatcherClient {
	return &MatcherClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// FindMatches fetches the text/image match list.
func (m *MatcherClient) FindMatches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := m.getJSON(ctx, "/find_matches", &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// AIFindMatches fetches the AI match list, which additionally carries
// urgency and image-match fields.
func (m *MatcherClient) AIFindMatches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := m.getJSON(ctx, "/ai_find_matches", &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// AdminReports fetches all reports with the admin-visible urgency fields.
func (m *MatcherClient) AdminReports(ctx context.Context) ([]models.AdminReport, error) {
	var reports []models.AdminReport
	if err := m.getJSON(ctx, "/admin_reports", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

type sendNotificationRequest struct {
	LostItem  models.MatchItem `json:"lost_item"`
	FoundItem models.MatchItem `json:"found_item"`
}

type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SendNotification asks the service to materialize notification records
// for the two parties of a match.
func (m *MatcherClient) SendNotification(ctx context.Context, lost, found models.MatchItem) error {
	var ack ackResponse
	err := m.postJSON(ctx, "/send_notification", sendNotificationRequest{LostItem: lost, FoundItem: found}, &ack)
	if err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("matching service declined notification: %s", ack.Message)
	}
	return nil
}

// MarkNotificationRead reports a read acknowledgement for a
// service-side notification record.
func (m *MatcherClient) MarkNotificationRead(ctx context.Context, id string) error {
	var ack ackResponse
	return m.postJSON(ctx, "/mark_notification_read/"+url.PathEscape(id), nil, &ack)
}

type checkRewardRequest struct {
	FinderEmail string `json:"finder_email"`
	ItemName    string `json:"item_name"`
}

type checkRewardResponse struct {
	AlreadyGiven bool `json:"already_given"`
}

// CheckRewardGiven reports whether the calling giver already rewarded
// this finder for this item.
func (m *MatcherClient) CheckRewardGiven(ctx context.Context, finderEmail, itemName string) (bool, error) {
	var resp checkRewardResponse
	err := m.postJSON(ctx, "/check_reward_given", checkRewardRequest{FinderEmail: finderEmail, ItemName: itemName}, &resp)
	if err != nil {
		return false, err
	}
	return resp.AlreadyGiven, nil
}

// GiveReward submits a token grant. A false ack means the service
// rejected it as a duplicate.
func (m *MatcherClient) GiveReward(ctx context.Context, reward models.Reward) (bool, error) {
	var ack ackResponse
	if err := m.postJSON(ctx, "/give_reward", reward, &ack); err != nil {
		return false, err
	}
	return ack.Success, nil
}

func (m *MatcherClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("matching service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("matching service responded with status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func (m *MatcherClient) postJSON(ctx context.Context, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("matching service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("matching service responded with status: %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
