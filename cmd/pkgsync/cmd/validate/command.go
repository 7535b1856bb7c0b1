// Package validate provides the validate command, which checks the
// configured identity tables before any run depends on them.
package validate

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/pkgsync/internal/appcontext"
	"github.com/agentstation/pkgsync/internal/cmd/output"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// Row is one checked identity.
type Row struct {
	Table  string `json:"table" yaml:"table"`
	Name   string `json:"name" yaml:"name"`
	ID     string `json:"id" yaml:"id"`
	Status string `json:"status" yaml:"status"`
}

// NewCommand creates the validate command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Validate the configured identity tables",
		Long: `Validate loads the dependency type, URL type and package manager
identities from configuration and checks that every dependency type and URL
type is configured with a distinct id. Sources without a package manager id
are reported but cannot be synced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteValidate(app, cmd.OutOrStdout())
		},
	}
}

// ExecuteValidate checks the identity tables and prints one row per identity.
func ExecuteValidate(app appcontext.Interface, out io.Writer) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	ids, err := app.Identities()
	if err != nil {
		return err
	}
	if ids == nil {
		return errors.NewConfigError("identities", "no identity tables configured", nil)
	}
	if err := ids.Validate(); err != nil {
		return err
	}

	var rows []Row
	for _, t := range packages.DependencyTypes() {
		rows = append(rows, Row{Table: "dependency_types", Name: t.String(), ID: ids.DependencyTypes[t].String(), Status: "ok"})
	}
	for _, t := range packages.URLTypes() {
		rows = append(rows, Row{Table: "url_types", Name: t.String(), ID: ids.URLTypes[t].String(), Status: "ok"})
	}

	configured := 0
	for _, s := range sources.IDs() {
		row := Row{Table: "package_managers", Name: s.String(), Status: "ok"}
		if _, err := ids.For(s); err != nil {
			row.Status = "not configured"
		} else {
			row.ID = ids.PackageManagers[s].String()
			configured++
		}
		rows = append(rows, row)
	}

	app.Logger().Info().Int("sources", configured).Msg("Identity tables valid")
	return output.NewFormatter(format).Format(out, rows)
}
