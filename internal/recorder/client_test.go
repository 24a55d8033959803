package recorder

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(server *httptest.Server) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 2 * time.Second},
		BaseURL:    server.URL,
	}
}

func TestRecordGameRecorded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sessions/sess-1/games", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var submission GameSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submission))
		assert.Equal(t, []string{"p1", "p2"}, submission.TeamAIDs)
		assert.False(t, submission.Force)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintln(w, `{"status": "RECORDED", "game_id": "game-42"}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	outcome, err := client.RecordGame(&GameSubmission{
		SessionID: "sess-1",
		TeamAIDs:  []string{"p1", "p2"},
		TeamBIDs:  []string{"p3", "p4"},
		ScoreA:    11,
		ScoreB:    9,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusRecorded, outcome.Status)
	assert.Equal(t, "game-42", outcome.GameID)
}

func TestRecordGamePossibleDuplicate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintln(w, `{"status": "POSSIBLE_DUPLICATE", "duplicate_of": "game-41"}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	outcome, err := client.RecordGame(&GameSubmission{SessionID: "sess-1"})

	require.NoError(t, err, "a duplicate verdict is a structured outcome, not a transport error")
	assert.Equal(t, StatusPossibleDuplicate, outcome.Status)
	assert.Equal(t, "game-41", outcome.DuplicateOf)
}

func TestRecordGameValidationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprintln(w, `{"status": "INVALID", "field_errors": {"score_a": "scores may not be equal"}}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	outcome, err := client.RecordGame(&GameSubmission{SessionID: "sess-1"})

	require.NoError(t, err)
	assert.Equal(t, StatusInvalid, outcome.Status)
	assert.Equal(t, "scores may not be equal", outcome.FieldErrors["score_a"])
}

func TestRecordGameServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server)
	outcome, err := client.RecordGame(&GameSubmission{SessionID: "sess-1"})

	assert.Error(t, err)
	assert.Nil(t, outcome)
}

func TestInitCourts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sessions/sess-1/courts/init", r.URL.Path)
		var payload map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 3, payload["court_count"])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server)
	assert.NoError(t, client.InitCourts("sess-1", 3))
}
