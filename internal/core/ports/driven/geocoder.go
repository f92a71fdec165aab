package driven

import (
	"context"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// Geocoder resolves a place name to coordinates.
// It never fails: unresolved places return domain.FallbackCoordinates().
type Geocoder interface {
	Resolve(ctx context.Context, place string) domain.Coordinates
}
