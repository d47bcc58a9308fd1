package mapper

import (
	"hustle-mentor-be/internal/entity"
	"hustle-mentor-be/internal/model"

	"gorm.io/datatypes"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToEntity(a *model.ActivityLog) *entity.ActivityLog {
	if a == nil {
		return nil
	}
	return &entity.ActivityLog{
		Id:        a.Id,
		UserId:    a.UserId,
		Type:      a.Type,
		Details:   a.Details,
		CreatedAt: a.CreatedAt,
	}
}

func (m *ActivityMapper) ToEntities(models []*model.ActivityLog) []*entity.ActivityLog {
	out := make([]*entity.ActivityLog, len(models))
	for i, a := range models {
		out[i] = m.ToEntity(a)
	}
	return out
}

func (m *ActivityMapper) ToModel(a *entity.ActivityLog) *model.ActivityLog {
	if a == nil {
		return nil
	}
	return &model.ActivityLog{
		Id:        a.Id,
		UserId:    a.UserId,
		Type:      a.Type,
		Details:   datatypes.JSONMap(a.Details),
		CreatedAt: a.CreatedAt,
	}
}
