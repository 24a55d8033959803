package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pklbhq/courtside/internal/rotation"
)

// APIClient is the HTTP client for the recording backend.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a new recorder client for the given base URL.
func NewClient(baseURL string) RecorderClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
	}
}

// Ensure APIClient implements the RecorderClient interface.
var _ RecorderClient = (*APIClient)(nil)

// RecordGame submits one finished game. The backend answers 201 when the game
// was inserted, 409 when it flagged a possible duplicate, and 422 when
// validation failed; all three decode into the same outcome shape.
func (c *APIClient) RecordGame(submission *GameSubmission) (*RecordOutcome, error) {
	url := fmt.Sprintf("%s/v1/sessions/%s/games", c.BaseURL, submission.SessionID)

	body, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug("Submitting game to recording backend", "url", url, "force", submission.Force)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusConflict, http.StatusUnprocessableEntity:
		var outcome RecordOutcome
		if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
			return nil, fmt.Errorf("failed to decode outcome: %w", err)
		}
		log.Info("Game submission answered", "status", outcome.Status, "gameID", outcome.GameID)
		return &outcome, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from recording backend", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}
}

func (c *APIClient) InitCourts(sessionID string, courtCount int) error {
	payload := map[string]int{"court_count": courtCount}
	return c.post(fmt.Sprintf("/v1/sessions/%s/courts/init", sessionID), payload)
}

func (c *APIClient) PersistAssignment(sessionID string, assignment rotation.CourtAssignment) error {
	return c.post(fmt.Sprintf("/v1/sessions/%s/courts/%d/assignment", sessionID, assignment.CourtIndex), assignment)
}

func (c *APIClient) StartCourt(sessionID string, courtIndex int) error {
	return c.post(fmt.Sprintf("/v1/sessions/%s/courts/%d/start", sessionID, courtIndex), nil)
}

func (c *APIClient) SetPlayerOut(sessionID, playerID string, out bool) error {
	payload := map[string]any{"player_id": playerID, "out": out}
	return c.post(fmt.Sprintf("/v1/sessions/%s/players/out", sessionID), payload)
}

func (c *APIClient) post(path string, payload any) error {
	url := c.BaseURL + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from recording backend", "status", resp.StatusCode, "url", url, "body", string(respBody))
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}
	return nil
}
