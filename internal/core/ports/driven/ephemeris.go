package driven

import (
	"context"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// EphemerisProvider computes planet longitudes, houses and cusps for a birth.
// Per-planet failures are reported inside the result; a returned error means
// the provider could not answer at all.
type EphemerisProvider interface {
	Compute(ctx context.Context, req domain.EphemerisRequest) (*domain.EphemerisResult, error)
}
