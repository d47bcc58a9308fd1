package dto

// GuidanceRequest is the POST /api/ai payload. Field names are part of the
// public contract and stay camelCase. Note is a pointer so a missing or
// non-string value is distinguishable from a legitimately empty note.
type GuidanceRequest struct {
	StageId       string  `json:"stageId" validate:"required"`
	StageTitle    string  `json:"stageTitle"`
	Prompt        string  `json:"prompt"`
	Note          *string `json:"note" validate:"required"`
	PreviousNotes string  `json:"previousNotes"`
}

type GuidanceResponse struct {
	Message string `json:"message"`
}
