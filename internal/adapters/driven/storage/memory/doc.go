// Package memory provides in-memory implementations of driven port interfaces.
// Nothing survives the process; the stores back tests and the --ephemeral CLI mode.
package memory
