// Package sync provides the sync command: one reconciliation run of a
// source's records against a cache snapshot, optionally repeated on a
// cron schedule.
package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/pkgsync/internal/appcontext"
	"github.com/agentstation/pkgsync/pkg/constants"
	"github.com/agentstation/pkgsync/pkg/reconcile"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// Flags holds the sync command flags.
type Flags struct {
	Records      string
	Snapshot     string
	Out          string
	KafkaBrokers []string
	KafkaTopic   string
	Strategy     string
	DryRun       bool
	Schedule     string
	Progress     bool
}

// NewCommand creates the sync command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:       "sync <source>",
		GroupID:   "core",
		Short:     "Reconcile a source's records against the package store",
		Args:      cobra.ExactArgs(1),
		ValidArgs: validArgs(),
		Long: `Sync reads the records exported by a package manager and reconciles
them against a snapshot of the persisted package graph:

• Packages are created, or updated when a tracked readme changed
• URLs are resolved per type, reusing URLs minted earlier in the run
• Package-URL links are created or touched
• Dependency edges are added and removed

The resulting change-set is printed and handed to the configured writers
(--out file, Kafka topic) unless --dry-run is set. With --schedule the run
repeats on a cron schedule until interrupted, reloading the snapshot each time.`,
		Example: `  pkgsync sync homebrew --records formulae.json --snapshot cache.json
  pkgsync sync crates --records crates.json.zst --snapshot cache.yaml --out changes.json.gz
  pkgsync sync debian --records Sources.yaml.xz --dry-run -o markdown
  pkgsync sync pkgx --records pantry.yaml --kafka-brokers localhost:9092
  pkgsync sync homebrew --records formulae.json --schedule "@every 6h" --progress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteSync(cmd.Context(), app, sources.ID(args[0]), flags, cmd.OutOrStdout())
		},
	}

	flags = addFlags(cmd)

	return cmd
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().StringVarP(&flags.Records, "records", "r", "", "record file (json, yaml or toml; optionally .gz, .zst or .xz)")
	cmd.Flags().StringVarP(&flags.Snapshot, "snapshot", "s", "", "cache snapshot file (empty cache when unset)")
	cmd.Flags().StringVar(&flags.Out, "out", "", "write the change-set to this file (.json or .yaml, optionally .gz or .zst)")
	cmd.Flags().StringSliceVar(&flags.KafkaBrokers, "kafka-brokers", nil, "publish the change-set to these Kafka brokers")
	cmd.Flags().StringVar(&flags.KafkaTopic, "kafka-topic", "", "Kafka topic (default "+constants.DefaultKafkaTopic+")")
	cmd.Flags().StringVar(&flags.Strategy, "strategy", string(reconcile.ApplyAll), "changes to apply: all, additive, updates-only, additions-only")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "report changes without writing them")
	cmd.Flags().StringVar(&flags.Schedule, "schedule", "", "repeat on a cron schedule (e.g. \"0 */6 * * *\", \"@daily\")")
	cmd.Flags().Lookup("schedule").NoOptDefVal = constants.DefaultSchedule
	cmd.Flags().BoolVar(&flags.Progress, "progress", false, "show a progress bar")
	_ = cmd.MarkFlagRequired("records")
	return flags
}

func validArgs() []string {
	ids := sources.IDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
