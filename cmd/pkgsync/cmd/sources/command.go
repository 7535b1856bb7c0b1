// Package sources provides the sources command.
package sources

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/pkgsync/internal/appcontext"
	"github.com/agentstation/pkgsync/internal/cmd/output"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// NewCommand creates the sources command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "sources",
		GroupID: "management",
		Short:   "List supported package sources",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteSources(app, cmd.OutOrStdout())
		},
	}
}

// ExecuteSources prints every supported source.
func ExecuteSources(app appcontext.Interface, out io.Writer) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(out, sources.Infos())
}
