package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/config"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/server"
)

// TestGoldenPath walks one lifter through the whole product: first login,
// max entry, program activation, schedule compilation, a live session, and
// finally history and sync.
func TestGoldenPath(t *testing.T) {
	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	mockAuth := NewMockAuthClient()
	mockAuth.AddMockUser("token_lifter", "uid_lifter", "lifter@example.com", "Test Lifter")

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-123"

	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
		AuthClient:  mockAuth,
	})

	request := func(method, path, token string, body interface{}) *http.Response {
		var bodyReader io.Reader
		if body != nil {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(jsonBytes)
		}
		req, _ := http.NewRequest(method, path, bodyReader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	decode := func(resp *http.Response) map[string]interface{} {
		var data map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		return data
	}

	// First login creates the account.
	resp := request("POST", "/v1/auth/login", "token_lifter", nil)
	require.Equal(t, 200, resp.StatusCode)

	loginData := decode(resp)
	token := loginData["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, true, loginData["is_new_user"])

	// Profile comes back with defaults before anything is saved.
	resp = request("GET", "/v1/profile", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	profileData := decode(resp)
	assert.EqualValues(t, 5, profileData["rounding_increment"])
	assert.EqualValues(t, 45, profileData["bar_weight"])

	// Record maxes for three lifts.
	maxes := []map[string]interface{}{
		{"lift": "squat", "weight": 285, "reps": 5},
		{"lift": "bench", "weight": 225, "reps": 3},
		{"lift": "pullup", "weight": 45, "reps": 5},
	}
	for _, m := range maxes {
		resp = request("POST", "/v1/maxes", token, m)
		require.Equal(t, 201, resp.StatusCode, "recording %v", m["lift"])
	}

	// Lift detail shows derived maxes for tested lifts, none for the rest.
	resp = request("GET", "/v1/lifts", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	liftData := decode(resp)
	lifts := liftData["lifts"].([]interface{})
	assert.Len(t, lifts, 5)

	// No schedule without a program.
	resp = request("GET", "/v1/schedule", token, nil)
	assert.Equal(t, 404, resp.StatusCode)

	// Activate Operator with the default cluster.
	resp = request("POST", "/v1/program", token, map[string]interface{}{
		"template_id": "operator",
		"selections": map[string][]string{
			"cluster": {"squat", "bench", "pullup"},
		},
	})
	require.Equal(t, 201, resp.StatusCode)

	// The compiled schedule covers all six weeks and carries a source hash.
	resp = request("GET", "/v1/schedule", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	scheduleData := decode(resp)
	weeks := scheduleData["weeks"].([]interface{})
	assert.Len(t, weeks, 6)
	sourceHash := scheduleData["source_hash"].(string)
	require.NotEmpty(t, sourceHash)

	// A stale hash refuses the start.
	resp = request("POST", "/v1/session/start", token, map[string]string{
		"schedule_hash": "bogus",
	})
	assert.Equal(t, 409, resp.StatusCode)

	// Start for real.
	resp = request("POST", "/v1/session/start", token, map[string]string{
		"schedule_hash": sourceHash,
	})
	require.Equal(t, 201, resp.StatusCode)
	sessionData := decode(resp)
	assert.EqualValues(t, 1, sessionData["week"])
	assert.EqualValues(t, 1, sessionData["session"])
	exercises := sessionData["exercises"].([]interface{})
	require.Len(t, exercises, 3)

	// Starting twice is refused while one is live.
	resp = request("POST", "/v1/session/start", token, map[string]string{
		"schedule_hash": sourceHash,
	})
	assert.Equal(t, 409, resp.StatusCode)

	// Complete two sets of the first exercise.
	resp = request("POST", "/v1/session/complete-set", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	resp = request("POST", "/v1/session/complete-set", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	// Undo takes the second one back.
	resp = request("POST", "/v1/session/undo", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	stateData := decode(resp)
	completed := 0
	for _, raw := range stateData["sets"].([]interface{}) {
		set := raw.(map[string]interface{})
		if set["completed"].(bool) {
			completed++
		}
	}
	assert.Equal(t, 1, completed)

	// A second undo has nothing left to take back.
	resp = request("POST", "/v1/session/undo", token, nil)
	assert.Equal(t, 409, resp.StatusCode)

	// Jump to the bench and log a set there too.
	resp = request("POST", "/v1/session/navigate", token, map[string]int{
		"exercise_index": 1,
	})
	require.Equal(t, 200, resp.StatusCode)
	resp = request("POST", "/v1/session/complete-set", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	// The companion snapshot reflects the current exercise.
	resp = request("GET", "/v1/session/snapshot", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	snapData := decode(resp)
	assert.EqualValues(t, 1, snapData["exercise_index"])
	assert.EqualValues(t, 1, snapData["completed_sets"])

	// Finish early; partial work still produces a log.
	resp = request("POST", "/v1/session/finish", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	logData := decode(resp)
	assert.Equal(t, "partial", logData["status"])
	require.NotEmpty(t, logData["id"])

	// The program advanced to session 2.
	resp = request("GET", "/v1/program", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	programData := decode(resp)
	assert.EqualValues(t, 1, programData["week"])
	assert.EqualValues(t, 2, programData["session"])

	// No active session remains.
	resp = request("GET", "/v1/session", token, nil)
	assert.Equal(t, 404, resp.StatusCode)

	// History holds the one log.
	resp = request("GET", "/v1/history", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	historyData := decode(resp)
	logs := historyData["session_logs"].([]interface{})
	assert.Len(t, logs, 1)

	// Sync from the epoch returns everything.
	resp = request("GET", "/v1/sync/changes", token, nil)
	require.Equal(t, 200, resp.StatusCode)
	changeData := decode(resp)
	assert.Len(t, changeData["max_tests"].([]interface{}), 3)
	assert.Len(t, changeData["session_logs"].([]interface{}), 1)
	require.NotEmpty(t, changeData["server_time"])
}

// TestIdempotentSetCompletion verifies that a retried mutation with the same
// correlation id replays the first response instead of completing a second
// set.
func TestIdempotentSetCompletion(t *testing.T) {
	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	mockAuth := NewMockAuthClient()
	mockAuth.AddMockUser("token_lifter", "uid_lifter", "lifter@example.com", "Test Lifter")

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-123"

	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
		AuthClient:  mockAuth,
	})

	request := func(method, path, token, correlationID string, body interface{}) *http.Response {
		var bodyReader io.Reader
		if body != nil {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(jsonBytes)
		}
		req, _ := http.NewRequest(method, path, bodyReader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if correlationID != "" {
			req.Header.Set("X-Correlation-ID", correlationID)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := request("POST", "/v1/auth/login", "token_lifter", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	var loginData map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginData))
	token := loginData["token"].(string)

	resp = request("POST", "/v1/maxes", token, "", map[string]interface{}{
		"lift": "squat", "weight": 285, "reps": 5,
	})
	require.Equal(t, 201, resp.StatusCode)

	resp = request("POST", "/v1/program", token, "", map[string]interface{}{
		"template_id": "operator",
	})
	require.Equal(t, 201, resp.StatusCode)

	resp = request("POST", "/v1/session/start", token, "start-1", map[string]string{})
	require.Equal(t, 201, resp.StatusCode)

	countCompleted := func(resp *http.Response) int {
		var state map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
		n := 0
		for _, raw := range state["sets"].([]interface{}) {
			if raw.(map[string]interface{})["completed"].(bool) {
				n++
			}
		}
		return n
	}

	resp = request("POST", "/v1/session/complete-set", token, "tap-1", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1, countCompleted(resp))

	// Same tap retried on flaky wifi: replayed, not re-applied.
	resp = request("POST", "/v1/session/complete-set", token, "tap-1", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Idempotent-Replay"))
	assert.Equal(t, 1, countCompleted(resp))

	// A genuinely new tap advances.
	resp = request("POST", "/v1/session/complete-set", token, "tap-2", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 2, countCompleted(resp))
}
