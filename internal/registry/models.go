// internal/registry/models.go
package registry

// Activity is a named extracurricular offering with a capacity and a
// participant list. Participants keep signup order.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SeedDocument is the on-disk shape of the activity catalogue the service
// is seeded with at startup.
type SeedDocument struct {
	Version     string              `json:"version"`
	LastUpdated string              `json:"lastUpdated"`
	Activities  map[string]Activity `json:"activities"`
}

// clone returns a deep copy so callers never alias registry state.
func (a Activity) clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}
