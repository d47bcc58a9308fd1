package contract

import (
	"context"

	"hustle-mentor-be/internal/entity"
	"hustle-mentor-be/internal/repository/specification"
)

type JourneyRepository interface {
	// Upsert merge-writes the journey row, replacing the whole notes field
	// and refreshing the server-assigned update timestamp.
	Upsert(ctx context.Context, journey *entity.Journey) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Journey, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
