package domain

// EphemerisRequest asks a provider for planet and cusp positions.
type EphemerisRequest struct {
	Birth       BirthData
	Coordinates Coordinates

	// Source is provider specific, e.g. a positions file path.
	Source string
}

// EphemerisEntry is one planet as reported by a provider.
// Err set means the planet failed; Longitude and House are then ignored.
type EphemerisEntry struct {
	Longitude float64
	House     int
	Err       error
}

// CuspEntry is one house cusp as reported by a provider.
type CuspEntry struct {
	Degree float64
	Err    error
}

// EphemerisResult carries per-planet and per-cusp outcomes.
// Planets missing from the map are treated as failed.
type EphemerisResult struct {
	Planets map[Planet]EphemerisEntry
	Cusps   map[int]CuspEntry
}
