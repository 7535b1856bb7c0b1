package sync

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/agentstation/pkgsync/pkg/errors"
)

// schedule repeats the job on spec until ctx is canceled. Runs never
// overlap; a tick arriving while a run is in progress is skipped.
func (j *job) schedule(ctx context.Context, spec string) error {
	logger := cronLogger{j.logger}
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return errors.NewValidationError("schedule", spec, err.Error())
	}
	c.Schedule(sched, cron.FuncJob(func() {
		j.logger.Info().Str("schedule", spec).Msg("Scheduled sync triggered")
		if _, err := j.run(ctx); err != nil {
			j.logger.Error().Err(err).Msg("Scheduled sync failed")
		}
	}))

	c.Start()
	j.logger.Info().
		Str("schedule", spec).
		Time("next", sched.Next(time.Now())).
		Msg("Sync scheduled")

	<-ctx.Done()
	<-c.Stop().Done()
	j.logger.Info().Msg("Scheduler stopped")
	return nil
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger *zerolog.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
