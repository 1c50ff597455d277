// Package internaldefs is the shared name table for the metrics exporters.
// Both exporters read the same definitions so a counter carries one name
// everywhere.
//
// Not intended for use outside the credgate module.
package internaldefs
