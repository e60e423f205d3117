package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context, limit int) (*Metrics, error)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler triggers a Runner on a cron expression. A run still in progress
// when the next tick fires causes that tick to be skipped.
type Scheduler struct {
	cron    *cron.Cron
	entryID cron.EntryID
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewScheduler accepts standard five-field expressions and descriptors such
// as "@hourly" or "@every 6h".
func NewScheduler(spec string, limit int, runner Runner) (*Scheduler, error) {
	schedule, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	cronLogger := cron.PrintfLogger(logger.Std())
	c := cron.New(
		cron.WithParser(cronParser),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{cron: c, ctx: ctx, cancel: cancel}

	s.entryID = c.Schedule(schedule, cron.FuncJob(func() {
		if _, err := runner.Run(s.ctx, limit); err != nil {
			logger.Error("[Scheduler] scheduled run failed: %v", err)
		}
	}))
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("[Scheduler] started, next run at %s", s.Next().Format(time.RFC3339))
}

// Next returns the next activation time, or zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// Stop halts new runs, cancels the one in progress and waits for it to return
// or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
