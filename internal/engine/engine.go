package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ytget/timetable-viewer/internal/client"
	"github.com/ytget/timetable-viewer/internal/model"
	"github.com/ytget/timetable-viewer/internal/pivot"
)

const refreshKey = "timetable"

// Engine is the refresh and mutation controller shared by every front end
type Engine struct {
	api     client.API
	logger  *zap.Logger
	machine *Machine

	viewMu sync.RWMutex
	view   View

	seq      atomic.Uint64
	renderMu sync.Mutex
	rendered uint64
	current  *pivot.Timetable
	snapshot *model.Snapshot

	flight singleflight.Group
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures an Engine
type Option func(*engineOptions)

type engineOptions struct {
	logger   *zap.Logger
	interval time.Duration
	view     View
}

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithInterval sets the polling period used while solving
func WithInterval(interval time.Duration) Option {
	return func(o *engineOptions) {
		o.interval = interval
	}
}

// WithView sets the initial view
func WithView(view View) Option {
	return func(o *engineOptions) {
		o.view = view
	}
}

// New creates an engine talking to api. Call Start to render the first
// snapshot and Close to release the polling timer.
func New(api client.API, opts ...Option) *Engine {
	o := engineOptions{interval: DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.view == nil {
		o.view = nopView{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		api:    api,
		logger: o.logger,
		view:   o.view,
		ctx:    ctx,
		cancel: cancel,
	}
	e.machine = NewMachine(o.interval, e.poll, func(solving bool) {
		e.logger.Info("solver state changed", zap.Bool("solving", solving))
		e.currentView().ShowSolving(solving)
	})
	return e
}

// SetView replaces the view receiving updates. Nil restores a no-op view.
func (e *Engine) SetView(view View) {
	if view == nil {
		view = nopView{}
	}
	e.viewMu.Lock()
	e.view = view
	e.viewMu.Unlock()
}

func (e *Engine) currentView() View {
	e.viewMu.RLock()
	defer e.viewMu.RUnlock()
	return e.view
}

// Start performs the initial fetch and render
func (e *Engine) Start(ctx context.Context) error {
	return e.fetch(ctx, "start")
}

// Close cancels in-flight work and stops the polling timer
func (e *Engine) Close() {
	e.cancel()
	e.machine.Close()
}

// Solving reports whether the engine currently polls an active solver
func (e *Engine) Solving() bool {
	return e.machine.Solving()
}

// Timetable returns the last rendered timetable, or nil before the first render
func (e *Engine) Timetable() *pivot.Timetable {
	e.renderMu.Lock()
	defer e.renderMu.Unlock()
	return e.current
}

// Snapshot returns the snapshot behind the last render
func (e *Engine) Snapshot() *model.Snapshot {
	e.renderMu.Lock()
	defer e.renderMu.Unlock()
	return e.snapshot
}

// Refresh fetches and renders the timetable. Calls made while a refresh is
// in flight join it instead of issuing another request.
func (e *Engine) Refresh(ctx context.Context) error {
	ch := e.flight.DoChan(refreshKey, func() (any, error) {
		return nil, e.fetch(e.ctx, "refresh")
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) poll() {
	_ = e.Refresh(e.ctx)
}

// fetch always issues a new request. Results older than the last render are dropped.
func (e *Engine) fetch(ctx context.Context, op string) error {
	seq := e.seq.Add(1)

	snapshot, err := e.api.FetchSnapshot(ctx)
	if err != nil {
		err = fmt.Errorf("fetch timetable: %w", err)
		if errors.Is(err, context.Canceled) {
			e.logger.Debug("fetch canceled", zap.String("op", op), zap.Uint64("seq", seq))
			return err
		}
		e.logger.Warn("fetch failed", zap.String("op", op), zap.Uint64("seq", seq), zap.Error(err))
		if e.stale(seq) {
			e.logger.Debug("stale fetch error dropped", zap.String("op", op), zap.Uint64("seq", seq))
			return err
		}
		e.currentView().ShowError(err)
		return err
	}

	e.apply(op, seq, snapshot)
	return nil
}

// stale reports whether a newer result has been rendered since seq was taken
func (e *Engine) stale(seq uint64) bool {
	e.renderMu.Lock()
	defer e.renderMu.Unlock()
	return seq < e.rendered
}

// supersede marks every fetch started so far as stale
func (e *Engine) supersede() {
	e.renderMu.Lock()
	defer e.renderMu.Unlock()
	e.rendered = e.seq.Add(1)
}

func (e *Engine) apply(op string, seq uint64, snapshot *model.Snapshot) {
	e.renderMu.Lock()
	defer e.renderMu.Unlock()

	if seq < e.rendered {
		e.logger.Debug("stale snapshot dropped",
			zap.String("op", op),
			zap.Uint64("seq", seq),
			zap.Uint64("rendered", e.rendered))
		return
	}

	timetable := pivot.Build(snapshot)
	e.rendered = seq
	e.current = timetable
	e.snapshot = snapshot

	view := e.currentView()
	view.ShowTimetable(timetable)
	view.ShowScore(snapshot.ScoreText())
	e.machine.Observe(snapshot.SolverStatus)

	e.logger.Debug("timetable rendered",
		zap.String("op", op),
		zap.Uint64("seq", seq),
		zap.String("status", snapshot.SolverStatus.String()),
		zap.Int("lessons", len(snapshot.Lessons)))
}

// StartSolving asks the server to solve and switches to polling
func (e *Engine) StartSolving(ctx context.Context) error {
	if err := e.mutate(ctx, ActionStartSolving, "", "", e.api.StartSolving); err != nil {
		return err
	}
	// A snapshot requested before the solve call may still report NOT_SOLVING.
	e.supersede()
	e.machine.MarkSolving()
	return nil
}

// DeleteRoom deletes a room and re-renders
func (e *Engine) DeleteRoom(ctx context.Context, room model.Room) error {
	return e.deleteAndRefresh(ctx, EntityRoom, room.ID, e.api.DeleteRoom)
}

// DeleteTimeslot deletes a timeslot and re-renders
func (e *Engine) DeleteTimeslot(ctx context.Context, timeslot model.Timeslot) error {
	return e.deleteAndRefresh(ctx, EntityTimeslot, timeslot.ID, e.api.DeleteTimeslot)
}

// DeleteLesson deletes a lesson and re-renders
func (e *Engine) DeleteLesson(ctx context.Context, lesson model.Lesson) error {
	return e.deleteAndRefresh(ctx, EntityLesson, lesson.ID, e.api.DeleteLesson)
}

func (e *Engine) deleteAndRefresh(ctx context.Context, entity string, id model.ID, call func(context.Context, model.ID) error) error {
	err := e.mutate(ctx, ActionDelete, entity, id, func(ctx context.Context) error {
		return call(ctx, id)
	})
	if err != nil {
		return err
	}
	return e.fetch(ctx, ActionDelete+" "+entity)
}

func (e *Engine) mutate(ctx context.Context, action, entity string, id model.ID, call func(context.Context) error) error {
	if err := call(ctx); err != nil {
		merr := &MutationError{Action: action, Entity: entity, ID: id, Err: err}
		e.logger.Warn("mutation failed",
			zap.String("op", action),
			zap.String("entity", entity),
			zap.String("id", id.String()),
			zap.Error(err))
		e.currentView().ShowError(merr)
		return merr
	}

	e.logger.Info("mutation done",
		zap.String("op", action),
		zap.String("entity", entity),
		zap.String("id", id.String()))
	return nil
}
