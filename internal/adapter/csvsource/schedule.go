package csvsource

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron"
)

// Scheduler reloads the dataset file on a cron schedule. It complements the
// Watcher for files replaced on a timetable or kept on filesystems that do
// not deliver change events.
type Scheduler struct {
	cron    *cron.Cron
	path    string
	logger  *slog.Logger
	fn      ReloadFunc
	onError func(error)
}

// NewScheduler validates spec (six-field cron syntax or a descriptor such as
// "@every 5m") and prepares the job. Nothing runs until Start. onError may
// be nil.
func NewScheduler(path, spec string, logger *slog.Logger, fn ReloadFunc, onError func(error)) (*Scheduler, error) {
	if onError == nil {
		onError = func(error) {}
	}
	s := &Scheduler{
		cron:    cron.New(),
		path:    path,
		logger:  logger,
		fn:      fn,
		onError: onError,
	}
	if err := s.cron.AddFunc(spec, s.Reload); err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the schedule in the background.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts future reloads. A reload already in flight still completes.
func (s *Scheduler) Stop() { s.cron.Stop() }

// Reload loads the file once and hands the dataset to the callback. Failures
// keep the previous dataset in place.
func (s *Scheduler) Reload() {
	ds, err := Load(s.path)
	if err != nil {
		s.logger.Warn("scheduled dataset reload failed, keeping previous data", "path", s.path, "error", err)
		s.onError(err)
		return
	}
	s.logger.Info("dataset reloaded on schedule", "path", s.path, "records", ds.Len())
	s.fn(ds)
}
