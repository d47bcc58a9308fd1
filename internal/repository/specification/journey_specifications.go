package specification

import "gorm.io/gorm"

// ByUserId filters by the opaque client identity
type ByUserId struct {
	UserId string
}

func (s ByUserId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// ByJourneyId filters by journey identifier within an identity
type ByJourneyId struct {
	JourneyId string
}

func (s ByJourneyId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("journey_id = ?", s.JourneyId)
}

// ByType filters activity logs by event type
type ByType struct {
	Type string
}

func (s ByType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}
