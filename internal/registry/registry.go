// internal/registry/registry.go
package registry

import (
	"fmt"
	"sync"

	"mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
)

// Config holds the registry behavior settings.
type Config struct {
	// EnforceCapacity rejects signups once an activity reaches
	// max_participants.
	EnforceCapacity bool
}

// Registry is the in-memory store of all activities. Mutations are
// serialized by the mutex; reads copy out under the read lock.
type Registry struct {
	config *Config
	logger logger.Logger

	mu         sync.RWMutex
	activities map[string]*Activity
}

// New builds a registry from a seed document. The document is copied, so
// the caller may keep modifying it.
func New(config *Config, doc *SeedDocument, log logger.Logger) *Registry {
	activities := make(map[string]*Activity, len(doc.Activities))
	for name, act := range doc.Activities {
		a := act.clone()
		activities[name] = &a
	}
	return &Registry{
		config:     config,
		logger:     log.WithFields(map[string]interface{}{"component": "registry"}),
		activities: activities,
	}
}

// List returns a snapshot of the full activity mapping.
func (r *Registry) List() map[string]Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Activity, len(r.activities))
	for name, act := range r.activities {
		out[name] = act.clone()
	}
	return out
}

// Signup adds email to the activity's participant list and returns the
// confirmation message. Precondition order: activity exists, email not
// already present, capacity available (when enforced). A failed
// precondition leaves the registry untouched.
func (r *Registry) Signup(activityName, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[activityName]
	if !ok {
		return "", errors.NewActivityNotFoundError(activityName)
	}

	for _, p := range act.Participants {
		if p == email {
			return "", errors.NewAlreadySignedUpError(email)
		}
	}

	if r.config.EnforceCapacity && len(act.Participants) >= act.MaxParticipants {
		return "", errors.NewActivityFullError(activityName)
	}

	act.Participants = append(act.Participants, email)

	r.logger.Info("student signed up", map[string]interface{}{
		"activity":     activityName,
		"email":        email,
		"participants": len(act.Participants),
	})

	return fmt.Sprintf("Signed up %s for %s", email, activityName), nil
}

// Unregister removes email from the activity's participant list and returns
// the confirmation message.
func (r *Registry) Unregister(activityName, email string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[activityName]
	if !ok {
		return "", errors.NewActivityNotFoundError(activityName)
	}

	idx := -1
	for i, p := range act.Participants {
		if p == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", errors.NewNotSignedUpError(email)
	}

	act.Participants = append(act.Participants[:idx], act.Participants[idx+1:]...)

	r.logger.Info("student unregistered", map[string]interface{}{
		"activity":     activityName,
		"email":        email,
		"participants": len(act.Participants),
	})

	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}
