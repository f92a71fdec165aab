// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RuleStore: Immutable reference data snapshot (rules, meanings, yogas)
//   - ConditionEvaluator: One evaluator per yoga condition kind
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EphemerisProvider: Planet longitudes and cusps. Without it only manual charts work.
//   - Geocoder: Place name resolution. Without it places resolve to the (0,0) fallback.
//   - ReportStore: Report history. Without it reports are not persisted.
//   - LLMService: Language model operations. Without it narrative answers are disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
