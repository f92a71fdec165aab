// Package file loads chart reference data from YAML files.
//
// A rules directory looks like:
//
//	houses/career.yaml        house -> planets_positive / planets_negative
//	houses/marriage.yaml
//	houses/wealth.yaml
//	houses/spirituality.yaml
//	houses/meanings.yaml      house -> meaning (optional)
//	planets/meanings.yaml     planet -> meaning (optional)
//	yogas.yaml                ordered list of yoga definitions
//
// The same layout is embedded in the binary and used when no directory is
// configured. Store serves immutable snapshots and can watch the directory
// for edits.
package file
