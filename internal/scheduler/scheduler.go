package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
	"github.com/SuFxGIT/scoutarr-sub000/internal/schedule"
)

// GlobalKey is the scheduling key of the single global trigger.
const GlobalKey = "global"

// ErrAlreadyRunning is returned by RunNow when a run for the requested key
// is already in flight.
var ErrAlreadyRunning = errors.New("run already in flight")

// TargetSource supplies target definitions. The core reads them fresh on
// every reload and never writes them back.
type TargetSource interface {
	FindEnabled(ctx context.Context) ([]models.Target, error)
	FindByID(ctx context.Context, id uint) (*models.Target, error)
}

// Reporter persists run outcomes and per-target aggregate search counts.
type Reporter interface {
	RecordRun(ctx context.Context, rec models.RunRecord) error
	RecordSearch(ctx context.Context, service string, targetID uint, res models.SearchResult) error
}

// Notifier dispatches a summary after global and manual runs. A nil
// Notifier disables dispatch.
type Notifier interface {
	NotifyRun(ctx context.Context, rec models.RunRecord) error
}

// Settings is the scheduler slice of the application configuration.
type Settings struct {
	Enabled     bool
	Schedule    string
	HistorySize int
}

// scheduledTask is one armed timer: the global trigger or one per-instance
// trigger. Its goroutine re-arms strictly after each run completes logging.
type scheduledTask struct {
	key    string
	handle *schedule.Handle
	target *models.Target // nil for the global task

	mu   sync.Mutex
	next time.Time
	stop chan struct{}
}

func (t *scheduledTask) setNext(at time.Time) {
	t.mu.Lock()
	t.next = at
	t.mu.Unlock()
}

func (t *scheduledTask) nextRun() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}

// TaskStatus is one row of the status query surface.
type TaskStatus struct {
	Key     string    `json:"key"`
	Expr    string    `json:"expr"`
	Running bool      `json:"running"`
	Next    time.Time `json:"next"`
}

// Core owns the timers, the run guard and the history ledger. All timer
// state lives in an explicit registry so the whole core can be built and
// torn down in tests without process-wide singletons.
type Core struct {
	mu    sync.Mutex
	tasks map[string]*scheduledTask

	guard    *RunGuard
	history  *HistoryLedger
	orch     *Orchestrator
	source   TargetSource
	reporter Reporter
	notifier Notifier
	settings Settings
	log      *zap.Logger
}

func NewCore(source TargetSource, orch *Orchestrator, reporter Reporter, notifier Notifier, settings Settings, log *zap.Logger) *Core {
	return &Core{
		tasks:    make(map[string]*scheduledTask),
		guard:    NewRunGuard(),
		history:  NewHistoryLedger(settings.HistorySize),
		orch:     orch,
		source:   source,
		reporter: reporter,
		notifier: notifier,
		settings: settings,
		log:      log,
	}
}

// Reload tears down every live timer and rebuilds the registry from the
// current configuration. Partial updates are deliberately not attempted: a
// stale timer referencing a deleted target must never fire. A schedule
// that fails to resolve leaves only its own key unarmed.
func (c *Core) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()

	if c.settings.Enabled && c.settings.Schedule != "" {
		c.armLocked(GlobalKey, c.settings.Schedule, nil)
	}

	targets, err := c.source.FindEnabled(ctx)
	if err != nil {
		c.log.Error("listing targets failed, per-instance timers unarmed", zap.Error(err))
		return err
	}
	for i := range targets {
		t := targets[i]
		if !t.ScheduleEnabled || t.Schedule == "" {
			continue
		}
		c.armLocked(t.Key(), t.Schedule, &t)
	}
	return nil
}

// Stop tears down every live timer. In-flight runs complete; they are
// never cancelled mid-orchestration.
func (c *Core) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Core) stopLocked() {
	for _, task := range c.tasks {
		close(task.stop)
	}
	c.tasks = make(map[string]*scheduledTask)
}

func (c *Core) armLocked(key, expr string, target *models.Target) {
	handle, err := schedule.Resolve(expr)
	if err != nil {
		c.log.Error("schedule rejected, timer unarmed",
			zap.String("key", key),
			zap.String("expr", expr),
			zap.Error(err),
		)
		return
	}

	task := &scheduledTask{
		key:    key,
		handle: handle,
		target: target,
		stop:   make(chan struct{}),
	}
	c.tasks[key] = task
	go c.runLoop(task)

	c.log.Info("timer armed",
		zap.String("key", key),
		zap.String("expr", handle.Expr),
	)
}

func (c *Core) runLoop(task *scheduledTask) {
	for {
		next := task.handle.Next(time.Now())
		task.setNext(next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-task.stop:
			timer.Stop()
			return
		case <-timer.C:
			c.fire(task)
		}
	}
}

// fire runs one trigger. The next fire is re-armed by runLoop only after
// this returns, so a slow run delays its own successor instead of
// stacking; the tentative next time is published up front so status
// queries made mid-run already show the upcoming fire.
func (c *Core) fire(task *scheduledTask) {
	if !c.guard.TryAcquire(task.key) {
		c.log.Warn("previous run still in flight, skipping trigger",
			zap.String("key", task.key),
		)
		return
	}
	defer c.guard.Release(task.key)

	task.setNext(task.handle.Next(time.Now()))

	ctx := context.Background()
	if task.target == nil {
		c.runGlobal(ctx)
		return
	}
	c.runTarget(ctx, task.target, task.key, false)
}

// RunNow triggers a manual run: global when targetID is zero, otherwise
// for the one target. It shares the scheduled runs' guard keys, so a
// manual run cannot double-process a target mid-scheduled-run.
func (c *Core) RunNow(ctx context.Context, targetID uint) (models.RunRecord, error) {
	if targetID == 0 {
		if !c.guard.TryAcquire(GlobalKey) {
			return models.RunRecord{}, ErrAlreadyRunning
		}
		defer c.guard.Release(GlobalKey)
		return c.runGlobal(ctx), nil
	}

	target, err := c.source.FindByID(ctx, targetID)
	if err != nil {
		return models.RunRecord{}, err
	}
	key := target.Key()
	if !c.guard.TryAcquire(key) {
		return models.RunRecord{}, ErrAlreadyRunning
	}
	defer c.guard.Release(key)
	return c.runTarget(ctx, target, key, true), nil
}

// runGlobal fans out over every enabled target that does not own a
// per-instance schedule. Targets run sequentially to bound burst load on
// the external services; one target's failure never aborts its siblings.
func (c *Core) runGlobal(ctx context.Context) models.RunRecord {
	rec := models.RunRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Success:   true,
		Results:   make(map[string]models.SearchResult),
	}

	targets, err := c.source.FindEnabled(ctx)
	if err != nil {
		rec.Success = false
		rec.Error = err.Error()
		c.finish(ctx, rec, true)
		return rec
	}

	eligible := make([]models.Target, 0, len(targets))
	perService := make(map[string]int)
	for _, t := range targets {
		if t.ScheduleEnabled && t.Schedule != "" {
			continue
		}
		eligible = append(eligible, t)
		perService[t.Service]++
	}

	for i := range eligible {
		t := &eligible[i]
		res := c.orch.Run(ctx, t)

		key := t.Service
		if perService[t.Service] > 1 {
			key = t.Key()
		}
		rec.Results[key] = res

		if !res.Success {
			rec.Success = false
		}
		c.recordSearch(ctx, t, res)
	}

	c.finish(ctx, rec, true)
	return rec
}

func (c *Core) runTarget(ctx context.Context, t *models.Target, key string, manual bool) models.RunRecord {
	res := c.orch.Run(ctx, t)

	rec := models.RunRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Success:   res.Success,
		Key:       key,
		Results:   map[string]models.SearchResult{t.Key(): res},
		Error:     res.Error,
	}
	c.recordSearch(ctx, t, res)
	c.finish(ctx, rec, manual)
	return rec
}

// finish appends the record to the ledger, persists it, and dispatches a
// notification for global and manual runs.
func (c *Core) finish(ctx context.Context, rec models.RunRecord, notify bool) {
	c.history.Append(rec)

	if c.reporter != nil {
		if err := c.reporter.RecordRun(ctx, rec); err != nil {
			c.log.Error("persisting run record failed", zap.Error(err))
		}
	}
	if notify && c.notifier != nil {
		if err := c.notifier.NotifyRun(ctx, rec); err != nil {
			c.log.Error("run notification failed", zap.Error(err))
		}
	}
}

func (c *Core) recordSearch(ctx context.Context, t *models.Target, res models.SearchResult) {
	if c.reporter == nil || !res.Success || res.Searched == 0 {
		return
	}
	if err := c.reporter.RecordSearch(ctx, t.Service, t.ID, res); err != nil {
		c.log.Error("persisting search stats failed",
			zap.String("target", t.Key()),
			zap.Error(err),
		)
	}
}

// Status lists every armed key with its schedule, in-flight flag and next
// fire time, sorted by key for stable output.
func (c *Core) Status() []TaskStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]TaskStatus, 0, len(c.tasks))
	for key, task := range c.tasks {
		out = append(out, TaskStatus{
			Key:     key,
			Expr:    task.handle.Expr,
			Running: c.guard.Running(key),
			Next:    task.nextRun(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// History returns the in-memory ledger, newest first.
func (c *Core) History() []models.RunRecord {
	return c.history.List()
}

// ClearHistory empties the in-memory ledger.
func (c *Core) ClearHistory() {
	c.history.Clear()
}
