package events

import "time"

// Event types published on the journey bus.
const (
	TypeJourneySaved      = "JOURNEY_SAVED"
	TypeGuidanceGenerated = "GUIDANCE_GENERATED"
)

// JourneyEvent is the wire shape for everything that flows over the journey
// event bus. Consumers persist these as activity-log rows.
type JourneyEvent struct {
	Type       string                 `json:"type"`
	UserId     string                 `json:"user_id"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
