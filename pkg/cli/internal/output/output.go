// Package output renders command results: indented JSON for --json,
// tabwriter tables otherwise.
package output

import (
	"encoding/json"
	"os"
	"text/tabwriter"
)

// JSON writes v to stdout as indented JSON.
func JSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table returns an aligned table writer over stdout. Callers flush it after
// the last row.
func Table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}
