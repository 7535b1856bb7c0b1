// Package normalize provides the normalize command, which prints a source's
// records in normalized form without reconciling them.
package normalize

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/pkgsync/internal/appcontext"
	"github.com/agentstation/pkgsync/internal/cmd/output"
	"github.com/agentstation/pkgsync/internal/sources/registry"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// NewCommand creates the normalize command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var records string

	cmd := &cobra.Command{
		Use:     "normalize <source>",
		GroupID: "core",
		Short:   "Print the normalized packages of a record file",
		Args:    cobra.ExactArgs(1),
		Example: `  pkgsync normalize crates --records crates.json
  pkgsync normalize debian --records Sources.yaml.xz -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteNormalize(app, sources.ID(args[0]), records, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&records, "records", "r", "", "record file (json, yaml or toml; optionally .gz, .zst or .xz)")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

// ExecuteNormalize reads and normalizes the records at path.
func ExecuteNormalize(app appcontext.Interface, id sources.ID, path string, out io.Writer) error {
	src, err := registry.Get(id)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.NewValidationError("records", path, "a record file is required")
	}
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	pkgs, err := src.Normalize(path)
	if err != nil {
		return err
	}
	app.Logger().Debug().Str("source", id.String()).Int("packages", len(pkgs)).Msg("Normalized records")

	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(out, pkgs)
	default:
		return output.NewFormatter(format).Format(out, dependencyData(pkgs))
	}
}

// dependencyData lists one row per declared dependency, and one row for
// each package that declares none.
func dependencyData(pkgs []packages.NormalizedPackage) output.Data {
	data := output.Data{Headers: []string{"Package", "Dependency", "Type"}}
	for _, p := range pkgs {
		if len(p.Dependencies) == 0 {
			data.Rows = append(data.Rows, []string{p.Identifier, "", ""})
			continue
		}
		for _, d := range p.Dependencies {
			data.Rows = append(data.Rows, []string{p.Identifier, d.Name, d.Type.String()})
		}
	}
	return data
}
