// Package services implements the driving port interfaces.
// Services contain the core analysis logic and orchestrate
// calls to driven ports (adapters).
//
// The chart computations (positions, divisional charts, aspects, rules,
// yogas, dashas) are pure and synchronous. Only ChartService and
// NarrativeService call out to collaborators that may block.
package services
