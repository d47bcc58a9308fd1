package entity

import (
	"time"
)

// DefaultJourneyId scopes the single journey each identity owns today.
// Multi-journey support would key additional documents here.
const DefaultJourneyId = "default"

// Journey is the persisted unit: the full notes map for one identity. Writes
// always carry the whole map, never a per-stage diff.
type Journey struct {
	UserId    string
	JourneyId string
	Notes     map[string]string
	UpdatedAt *time.Time
}
