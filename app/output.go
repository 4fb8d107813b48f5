package app

import (
	"encoding/json"
	"os"
)

// Print writes v as indented JSON to stdout.
func Print(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
