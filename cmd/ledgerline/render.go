package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// outputFlag registers the shared -o flag, defaulting to the configured
// output format.
func (a *app) outputFlag(fs *flag.FlagSet) *string {
	return fs.String("o", a.cfg.GetOutputFormat(), "output format: json or yaml")
}

// render writes v to stdout in the requested format.
func (a *app) render(format string, v any) error {
	switch format {
	case "yaml":
		// YAML round-trips through JSON so struct json tags drive the
		// field names in both formats.
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("render marshal: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("render unmarshal: %w", err)
		}
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(generic)
	case "json", "":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
