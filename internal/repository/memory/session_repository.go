package memory

import (
	"time"

	"hustle-mentor-be/pkg/journey"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps the live journey session per identity. Sessions are
// rebuilt from the persisted notes after expiry, so eviction only costs a
// re-hydration.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 24 hours, purging expired sessions every hour
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *journey.Session) {
	r.cache.Set(session.UserId, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userId string) (*journey.Session, bool) {
	if x, found := r.cache.Get(userId); found {
		return x.(*journey.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userId string) {
	r.cache.Delete(userId)
}
