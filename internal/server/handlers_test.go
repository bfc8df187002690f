// internal/server/handlers_test.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) http.Handler {
	seed, err := registry.LoadSeed()
	require.NoError(t, err)

	reg := registry.New(
		&registry.Config{EnforceCapacity: true},
		seed,
		logger.NewTestLogger(t),
	)

	srv := New(
		&Config{
			Address:         ":0",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
			MetricsEnabled:  false,
		},
		reg,
		&observability.Observability{},
		logger.NewTestLogger(t),
	)
	return srv.Handler()
}

func doRequest(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeActivities(t *testing.T, rr *httptest.ResponseRecorder) map[string]registry.Activity {
	t.Helper()
	var out map[string]registry.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

type apiResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var out apiResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

// ==========================
// List Tests
// ==========================

func TestHandleListActivities(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	activities := decodeActivities(t, rr)
	require.NotEmpty(t, activities)
	assert.Contains(t, activities, "Chess Club")
	assert.Contains(t, activities, "Programming Class")

	chess := activities["Chess Club"]
	assert.NotEmpty(t, chess.Description)
	assert.NotEmpty(t, chess.Schedule)
	assert.Greater(t, chess.MaxParticipants, 0)
	assert.NotNil(t, chess.Participants)
}

func TestHandleListActivities_DataIntegrity(t *testing.T) {
	h := newTestHandler(t)

	activities := decodeActivities(t, doRequest(t, h, http.MethodGet, "/activities"))
	for name, act := range activities {
		assert.NotEmpty(t, act.Description, "activity %q", name)
		assert.NotEmpty(t, act.Schedule, "activity %q", name)
		assert.Greater(t, act.MaxParticipants, 0, "activity %q", name)
		for _, p := range act.Participants {
			assert.Contains(t, p, "@", "activity %q participant %q", name, p)
		}
	}
}

// ==========================
// Signup Tests
// ==========================

func TestHandleSignup_Success(t *testing.T) {
	h := newTestHandler(t)

	before := decodeActivities(t, doRequest(t, h, http.MethodGet, "/activities"))
	initial := len(before["Chess Club"].Participants)

	rr := doRequest(t, h, http.MethodPost, "/activities/Chess%20Club/signup?email=test%40student.edu")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, decodeResponse(t, rr).Message, "Signed up test@student.edu for Chess Club")

	after := decodeActivities(t, doRequest(t, h, http.MethodGet, "/activities"))
	updated := after["Chess Club"].Participants
	assert.Len(t, updated, initial+1)
	assert.Contains(t, updated, "test@student.edu")
}

func TestHandleSignup_AlreadyRegistered(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/activities/Chess%20Club/signup?email=duplicate%40student.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, h, http.MethodPost, "/activities/Chess%20Club/signup?email=duplicate%40student.edu")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeResponse(t, rr).Detail, "already signed up")
}

func TestHandleSignup_UnknownActivity(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/activities/NonExistent%20Activity/signup?email=test%40student.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Activity not found", decodeResponse(t, rr).Detail)
}

func TestHandleSignup_InvalidEmail(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "missing email", target: "/activities/Chess%20Club/signup"},
		{name: "empty email", target: "/activities/Chess%20Club/signup?email="},
		{name: "malformed email", target: "/activities/Chess%20Club/signup?email=not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			rr := doRequest(t, h, http.MethodPost, tt.target)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, decodeResponse(t, rr).Detail, "valid email")
		})
	}
}

func TestHandleSignup_ActivityFull(t *testing.T) {
	h := newTestHandler(t)

	// Math Club seeds 2 of 10 spots; fill the rest, then overflow.
	for i := 0; i < 8; i++ {
		target := fmt.Sprintf("/activities/Math%%20Club/signup?email=filler%d%%40student.edu", i)
		rr := doRequest(t, h, http.MethodPost, target)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doRequest(t, h, http.MethodPost, "/activities/Math%20Club/signup?email=overflow%40student.edu")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Activity is full", decodeResponse(t, rr).Detail)
}

// ==========================
// Unregister Tests
// ==========================

func TestHandleUnregister_Success(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/activities/Tennis%20Club/signup?email=unregister%40student.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	before := decodeActivities(t, doRequest(t, h, http.MethodGet, "/activities"))
	initial := len(before["Tennis Club"].Participants)

	rr = doRequest(t, h, http.MethodDelete, "/activities/Tennis%20Club/unregister?email=unregister%40student.edu")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, decodeResponse(t, rr).Message, "Unregistered unregister@student.edu from Tennis Club")

	after := decodeActivities(t, doRequest(t, h, http.MethodGet, "/activities"))
	updated := after["Tennis Club"].Participants
	assert.Len(t, updated, initial-1)
	assert.NotContains(t, updated, "unregister@student.edu")
}

func TestHandleUnregister_NotRegistered(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodDelete, "/activities/Chess%20Club/unregister?email=notregistered%40student.edu")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeResponse(t, rr).Detail, "not signed up")
}

func TestHandleUnregister_UnknownActivity(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodDelete, "/activities/NonExistent%20Activity/unregister?email=test%40student.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Activity not found", decodeResponse(t, rr).Detail)
}

// ==========================
// Static & Operational Endpoints
// ==========================

func TestHandleIndex_ServesLandingPage(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Mergington High School")
}

func TestStaticAssets(t *testing.T) {
	h := newTestHandler(t)

	for _, target := range []string{"/static/styles.css", "/static/app.js"} {
		rr := doRequest(t, h, http.MethodGet, target)
		assert.Equal(t, http.StatusOK, rr.Code, "asset %s", target)
		assert.NotEmpty(t, rr.Body.String(), "asset %s", target)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	rr = doRequest(t, h, http.MethodGet, "/ready")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodGet, "/activities/Chess%20Club/signup?email=test%40student.edu")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
