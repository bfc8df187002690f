// internal/server/handlers.go
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	apierrors "mergington-activities/internal/common/errors"
)

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// handleListActivities returns the full activity mapping.
func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

// handleSignup adds a student to an activity's participant list.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("activity")

	email, err := emailParam(r)
	if err != nil {
		s.recordOutcome(r, "signup", err)
		s.errs.WriteError(w, r, err)
		return
	}

	start := time.Now()
	msg, err := s.registry.Signup(activityName, email)
	s.obs.RecordOperationDuration(r.Context(), "signup", time.Since(start))
	s.recordOutcome(r, "signup", err)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Message: msg})
}

// handleUnregister removes a student from an activity's participant list.
func (s *Server) handleUnregister(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("activity")

	email, err := emailParam(r)
	if err != nil {
		s.recordOutcome(r, "unregister", err)
		s.errs.WriteError(w, r, err)
		return
	}

	start := time.Now()
	msg, err := s.registry.Unregister(activityName, email)
	s.obs.RecordOperationDuration(r.Context(), "unregister", time.Since(start))
	s.recordOutcome(r, "unregister", err)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Message: msg})
}

// handleIndex serves the landing page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, staticFS, "static/index.html")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// emailParam extracts and validates the email query parameter.
func emailParam(r *http.Request) (string, error) {
	email := r.URL.Query().Get("email")
	if email == "" || !govalidator.IsEmail(email) {
		return "", apierrors.NewInvalidEmailError(email)
	}
	return email, nil
}

// recordOutcome counts the operation result for the OTel meter.
func (s *Server) recordOutcome(r *http.Request, op string, err error) {
	outcome := "ok"
	if err != nil {
		if apiErr, ok := err.(*apierrors.APIError); ok {
			outcome = strings.ToLower(string(apiErr.Code))
		} else {
			outcome = "error"
		}
	}
	s.obs.RecordOperation(r.Context(), op, outcome)
}
