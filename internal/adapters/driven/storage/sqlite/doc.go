// Package sqlite provides a SQLite-based implementation of the report store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files; applied
// versions are recorded in schema_migrations.
//
// Reports are stored whole as JSON next to the columns used for listing.
//
// # Data Location
//
// By default, the database is stored at ~/.graha/data/reports.db
package sqlite
