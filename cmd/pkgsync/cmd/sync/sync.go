package sync

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/pkgsync"
	"github.com/agentstation/pkgsync/internal/appcontext"
	"github.com/agentstation/pkgsync/internal/cmd/output"
	"github.com/agentstation/pkgsync/internal/sources/registry"
	"github.com/agentstation/pkgsync/internal/writer"
	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/constants"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/logging"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/reconcile"
	"github.com/agentstation/pkgsync/pkg/sources"
	syncer "github.com/agentstation/pkgsync/pkg/sync"
)

// job is one configured reconciliation, runnable any number of times.
type job struct {
	client   pkgsync.Client
	source   sources.ID
	flags    *Flags
	strategy reconcile.ApplyStrategy
	format   output.Format
	out      io.Writer
	logger   *zerolog.Logger
}

// ExecuteSync resolves the source, configuration and writers, then runs
// once or on the configured schedule.
func ExecuteSync(ctx context.Context, app appcontext.Interface, id sources.ID, flags *Flags, out io.Writer) error {
	if !registry.Has(id) {
		return errors.NewValidationError("source", id, "unknown source")
	}
	if flags.Records == "" {
		return errors.NewValidationError("records", flags.Records, "a record file is required")
	}
	strategy, err := reconcile.ParseApplyStrategy(flags.Strategy)
	if err != nil {
		return err
	}
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
	if _, err := ids.For(id); err != nil {
		return err
	}

	sinks, closeSinks, err := buildWriters(app, flags)
	if err != nil {
		return err
	}
	defer closeSinks()

	opts := []pkgsync.Option{pkgsync.WithIdentities(ids), pkgsync.WithWriters(sinks...)}
	if flags.Snapshot != "" {
		opts = append(opts, pkgsync.WithSnapshotLoader(cache.FileLoader{Path: flags.Snapshot}))
	} else {
		app.Logger().Warn().Msg("No snapshot given, reconciling against an empty cache")
	}

	client, err := pkgsync.New(opts...)
	if err != nil {
		return err
	}
	logger := app.Logger()
	client.OnPackageAdded(func(p packages.Package) {
		logger.Debug().Str("package", p.DerivedID).Msg("Package added")
	})
	client.OnDependencyRemoved(func(d packages.LegacyDependency) {
		logger.Debug().Stringer("package", d.PackageID).Stringer("dependency", d.DependencyID).Msg("Dependency removed")
	})

	j := &job{
		client:   client,
		source:   id,
		flags:    flags,
		strategy: strategy,
		format:   format,
		out:      out,
		logger:   logger,
	}

	if flags.Schedule != "" {
		return j.schedule(ctx, flags.Schedule)
	}
	_, err = j.run(ctx)
	return err
}

// run performs one reconciliation and prints its result.
func (j *job) run(ctx context.Context) (*reconcile.Result, error) {
	ctx = logging.WithLogger(ctx, j.logger)

	opts := []syncer.Option{
		syncer.WithStrategy(j.strategy),
		syncer.WithDryRun(j.flags.DryRun),
		syncer.WithLogger(j.logger),
		syncer.WithTimeout(constants.SyncTimeout),
	}
	if j.flags.Progress {
		bar := newProgress()
		defer bar.finish()
		opts = append(opts, syncer.WithOnStart(bar.start), syncer.WithProgress(bar.increment))
	}

	result, err := j.client.Sync(ctx, j.source, j.flags.Records, opts...)
	if err != nil {
		return nil, err
	}
	if err := output.FormatResult(j.out, j.format, result); err != nil {
		return nil, err
	}
	return result, nil
}

// buildWriters assembles the change-set writers selected by flags and
// configuration. The returned func closes any broker connections.
func buildWriters(app appcontext.Interface, flags *Flags) ([]writer.Writer, func(), error) {
	var sinks []writer.Writer
	var closers []func() error

	if flags.Out != "" {
		fw, err := writer.NewFileWriter(flags.Out)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, fw)
	}

	brokers := flags.KafkaBrokers
	if len(brokers) == 0 {
		brokers = app.KafkaBrokers()
	}
	if len(brokers) > 0 {
		topic := flags.KafkaTopic
		if topic == "" {
			topic = app.KafkaTopic()
		}
		kw, err := writer.NewKafkaWriter(brokers, topic)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, kw)
		closers = append(closers, kw.Close)
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				app.Logger().Warn().Err(err).Msg("Failed to close writer")
			}
		}
	}
	return sinks, closeAll, nil
}
