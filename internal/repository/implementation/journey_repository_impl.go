package implementation

import (
	"context"
	"errors"

	"hustle-mentor-be/internal/entity"
	"hustle-mentor-be/internal/mapper"
	"hustle-mentor-be/internal/model"
	"hustle-mentor-be/internal/repository/contract"
	"hustle-mentor-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JourneyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JourneyMapper
}

func NewJourneyRepository(db *gorm.DB) contract.JourneyRepository {
	return &JourneyRepositoryImpl{
		db:     db,
		mapper: mapper.NewJourneyMapper(),
	}
}

func (r *JourneyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *JourneyRepositoryImpl) Upsert(ctx context.Context, journey *entity.Journey) error {
	m := r.mapper.ToModel(journey)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "journey_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"notes", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*journey = *r.mapper.ToEntity(m)
	return nil
}

func (r *JourneyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Journey, error) {
	var m model.Journey
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *JourneyRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Journey{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
