package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	Id        uuid.UUID
	UserId    string
	Type      string
	Details   map[string]interface{} // JSONB
	CreatedAt time.Time
}
