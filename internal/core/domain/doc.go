// Package domain defines the core entities for graha chart analysis.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Planet and Sign: the closed sets of grahas and rasis with lordship
//   - Chart: placements, cusps and houses of one birth chart
//   - DivisionalChart: a derived varga chart
//   - RuleSet, YogaDefinition: immutable reference data
//   - DashaTimeline: the Vimshottari mahadasha sequence
//   - Report: the aggregated, immutable analysis result
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
