package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/pkgsync/cmd/pkgsync/cmd/normalize"
	"github.com/agentstation/pkgsync/cmd/pkgsync/cmd/sources"
	"github.com/agentstation/pkgsync/cmd/pkgsync/cmd/sync"
	"github.com/agentstation/pkgsync/cmd/pkgsync/cmd/validate"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(sync.NewCommand(a))
	rootCmd.AddCommand(normalize.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(sources.NewCommand(a))

	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("pkgsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
