package unitofwork

import (
	"hustle-mentor-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one request. Every write in this
// domain is a single-row upsert or insert, so there is no cross-repository
// transaction to coordinate.
type UnitOfWork interface {
	JourneyRepository() contract.JourneyRepository
	ActivityLogRepository() contract.ActivityLogRepository
}
