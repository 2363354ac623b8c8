// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// AddOutputFlags registers --format and --template on cmd.
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "Output format. Accepts 'text', 'json' or 'yaml' (default from config, else text)")
	cmd.Flags().String("template", "", "Template for output format. Accepts Go template format (e.g. --template='{{.crc}}')")
}

// Format returns the output format chosen for cmd: the --format flag, then
// the "format" config key, then text.
func Format(cmd *cobra.Command) string {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return f
	}
	if f := viper.GetString("format"); f != "" {
		return f
	}
	return FormatText
}

// HandleOutput writes result according to the --template and --format flags.
// For the text format the caller renders result itself through text.
func HandleOutput(cmd *cobra.Command, result any, text func(w io.Writer) error) error {
	out := cmd.OutOrStdout()

	templateFlag, _ := cmd.Flags().GetString("template")
	if templateFlag != "" {
		tmpl, err := template.New("output").Parse(templateFlag)
		if err != nil {
			return fmt.Errorf("failed to parse template: %w", err)
		}

		// Round-trip through JSON so templates address fields by their
		// JSON names.
		data, err := toGeneric(result)
		if err != nil {
			return err
		}
		if err := tmpl.Execute(out, data); err != nil {
			return fmt.Errorf("failed to execute template: %w", err)
		}
		fmt.Fprintln(out)
		return nil
	}

	switch format := Format(cmd); format {
	case FormatText:
		return text(out)
	case FormatJSON:
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		fmt.Fprintln(out, string(output))
	case FormatYAML:
		output, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		fmt.Fprint(out, string(output))
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

func toGeneric(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return out, nil
}
