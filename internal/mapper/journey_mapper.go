package mapper

import (
	"time"

	"hustle-mentor-be/internal/entity"
	"hustle-mentor-be/internal/model"

	"gorm.io/datatypes"
)

type JourneyMapper struct{}

func NewJourneyMapper() *JourneyMapper {
	return &JourneyMapper{}
}

func (m *JourneyMapper) ToEntity(j *model.Journey) *entity.Journey {
	if j == nil {
		return nil
	}

	notes := make(map[string]string, len(j.Notes))
	for k, v := range j.Notes {
		// The writer only ever stores strings; anything else is skipped.
		if s, ok := v.(string); ok {
			notes[k] = s
		}
	}

	var updatedAt *time.Time
	if !j.UpdatedAt.IsZero() {
		t := j.UpdatedAt
		updatedAt = &t
	}

	return &entity.Journey{
		UserId:    j.UserId,
		JourneyId: j.JourneyId,
		Notes:     notes,
		UpdatedAt: updatedAt,
	}
}

func (m *JourneyMapper) ToModel(j *entity.Journey) *model.Journey {
	if j == nil {
		return nil
	}

	notes := make(datatypes.JSONMap, len(j.Notes))
	for k, v := range j.Notes {
		notes[k] = v
	}

	return &model.Journey{
		UserId:    j.UserId,
		JourneyId: j.JourneyId,
		Notes:     notes,
	}
}
