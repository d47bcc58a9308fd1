package dto

import (
	"time"

	"hustle-mentor-be/pkg/checklist"
	"hustle-mentor-be/pkg/journey"
)

type SetNoteRequest struct {
	StageId string `json:"stage_id" validate:"required"`
	Text    string `json:"text"`
}

// JumpRequest targets a stage by index. Pointer so index 0 satisfies the
// required check.
type JumpRequest struct {
	Index *int `json:"index" validate:"required"`
}

// SummaryItem is one entry of the journey snapshot panel.
type SummaryItem struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Value string `json:"value"`
}

// TimelineItem is one stage with its derived progress status.
type TimelineItem struct {
	StageId string `json:"stage_id"`
	Title   string `json:"title"`
	Status  string `json:"status"` // "Done" | "In progress" | "Pending"
	HasNote bool   `json:"has_note"`
}

// JourneyView is the full rendered session state.
type JourneyView struct {
	ActiveIndex int               `json:"active_index"`
	ActiveStage journey.Stage     `json:"active_stage"`
	Progress    int               `json:"progress"` // percent, 0-100
	Notes       map[string]string `json:"notes"`
	IsSaving    bool              `json:"is_saving"`
	IsLoading   bool              `json:"is_loading"`
	Status      string            `json:"status,omitempty"`
	Response    string            `json:"response"`
	Error       string            `json:"error,omitempty"`
	Thinking    bool              `json:"thinking"`
	Checklist   []checklist.Item  `json:"checklist"`
	Summary     []SummaryItem     `json:"summary"`
	Timeline    []TimelineItem    `json:"timeline"`
}

type ActivityResponse struct {
	Id        string                 `json:"id"`
	Type      string                 `json:"type"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"created_at"`
}
