// Package worklog ties the record store, session reconstruction, status
// calculation and validation together behind the operations the CLI needs.
package worklog

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Tiliavir/worklog/internal/doctor"
	"github.com/Tiliavir/worklog/internal/logging"
	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/session"
	"github.com/Tiliavir/worklog/internal/status"
	"github.com/Tiliavir/worklog/internal/storage"
)

// ErrNotTracking is returned when stopping without a running session.
var ErrNotTracking = errors.New("no active session to stop")

// Store is the persistence the engine needs.
type Store interface {
	Load() ([]model.Record, error)
	Append(model.Record) error
}

// Engine is the entry point for committing records and deriving status.
type Engine struct {
	store   Store
	workday model.Workday
	now     func() time.Time
	logger  *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger for warnings about unusual commits.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an Engine over store using the given workday settings.
func New(store Store, workday model.Workday, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		workday: workday,
		now:     time.Now,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine clock truncated to whole seconds.
func (e *Engine) Now() time.Time {
	return e.now().Truncate(time.Second)
}

// Workday returns the configured target and maximum.
func (e *Engine) Workday() model.Workday {
	return e.workday
}

// CommitStart records a start at now + offset.
func (e *Engine) CommitStart(offset time.Duration) (model.Record, error) {
	return e.CommitAt(model.Start, e.Now().Add(offset), false)
}

// CommitStop records a stop at now + offset. It fails with ErrNotTracking
// when no session is running.
func (e *Engine) CommitStop(offset time.Duration) (model.Record, error) {
	return e.CommitAt(model.Stop, e.Now().Add(offset), false)
}

// CommitAt appends a record of kind at ts. Starting while a session is
// running is allowed and leaves the earlier start dangling. Stopping while
// idle is refused unless force is set.
func (e *Engine) CommitAt(kind model.Kind, ts time.Time, force bool) (model.Record, error) {
	records, err := e.store.Load()
	if err != nil {
		return model.Record{}, err
	}
	res := session.Reconstruct(records)
	rec := model.Record{Kind: kind, Timestamp: ts.Truncate(time.Second)}

	switch kind {
	case model.Start:
		if res.Open != nil {
			e.logger.Warn("session already running, previous start is left without stop",
				"since", res.Open.Start.Format(model.DateTimeLayout))
		}
	case model.Stop:
		if res.Open == nil {
			if !force {
				return model.Record{}, ErrNotTracking
			}
			e.logger.Warn("committing stop without a running session")
		}
	default:
		return model.Record{}, fmt.Errorf("unknown record kind %q", kind)
	}

	if n := len(records); n > 0 && rec.Timestamp.Before(records[n-1].Timestamp) {
		e.logger.Warn("entry is earlier than the last logged entry",
			"entry", rec.Timestamp.Format(model.DateTimeLayout),
			"last", records[n-1].Timestamp.Format(model.DateTimeLayout))
	}

	if err := e.store.Append(rec); err != nil {
		return model.Record{}, err
	}
	e.logger.Debug("committed", "kind", rec.Kind, "at", rec.Timestamp.Format(model.DateTimeLayout))
	return rec, nil
}

// Status returns the status of today.
func (e *Engine) Status() (status.Snapshot, error) {
	return e.StatusOn(e.Now())
}

// StatusOn returns the status of the calendar day containing day.
func (e *Engine) StatusOn(day time.Time) (status.Snapshot, error) {
	records, err := e.store.Load()
	if err != nil {
		return status.Snapshot{}, err
	}
	res := session.Reconstruct(records)
	for _, d := range res.Defects {
		e.logger.Debug("tolerating defect", "kind", d.Kind, "date", d.Date)
	}
	return status.Calculate(res.OnDay(day), e.workday, day, e.Now()), nil
}

// Log returns up to limit sessions, most recent first; limit <= 0 means all.
func (e *Engine) Log(limit int) ([]model.Session, error) {
	records, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	return session.Reconstruct(records).Latest(limit), nil
}

// Sessions returns every session, oldest first.
func (e *Engine) Sessions() ([]model.Session, error) {
	records, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	return session.Reconstruct(records).All(), nil
}

// Doctor validates the whole log.
func (e *Engine) Doctor() ([]model.Defect, error) {
	records, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	return doctor.Validate(records), nil
}

var _ Store = (*storage.Store)(nil)
