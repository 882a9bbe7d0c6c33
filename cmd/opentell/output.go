package main

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// writeStructured renders v per the --output flag (table falls back to a
// caller-supplied table renderer since there's no one generic table shape).
func writeStructured(v interface{}, tableFn func() error) error {
	switch getOutput() {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close() //nolint:errcheck // best-effort flush on defer
		return enc.Encode(v)
	default:
		return tableFn()
	}
}
