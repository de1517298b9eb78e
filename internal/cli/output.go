package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeOutput encodes v to the command's stdout in the --output format.
func writeOutput(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	switch format {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	case formatYAML:
		plain, err := toPlain(v)
		if err != nil {
			return err
		}
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(plain); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

// toPlain round-trips v through JSON so YAML sees plain maps, slices and
// numbers instead of host wrapper types.
func toPlain(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	var plain any
	if err := yaml.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("decode JSON as YAML: %w", err)
	}
	return plain, nil
}
