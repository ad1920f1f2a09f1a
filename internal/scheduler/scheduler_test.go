package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/arr"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
	"github.com/SuFxGIT/scoutarr-sub000/internal/schedule"
)

type fakeSource struct {
	targets []models.Target
	err     error
}

func (s *fakeSource) FindEnabled(_ context.Context) ([]models.Target, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Target, len(s.targets))
	copy(out, s.targets)
	return out, nil
}

func (s *fakeSource) FindByID(_ context.Context, id uint) (*models.Target, error) {
	for i := range s.targets {
		if s.targets[i].ID == id {
			t := s.targets[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("target %d not found", id)
}

type fakeReporter struct {
	mu       sync.Mutex
	runs     []models.RunRecord
	searches []string
}

func (r *fakeReporter) RecordRun(_ context.Context, rec models.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, rec)
	return nil
}

func (r *fakeReporter) RecordSearch(_ context.Context, service string, targetID uint, _ models.SearchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches = append(r.searches, fmt.Sprintf("%s-%d", service, targetID))
	return nil
}

// blockingSearcher parks FetchCandidates until released, so tests can hold
// a run mid-flight.
type blockingSearcher struct {
	fakeSearcher
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingSearcher) FetchCandidates(ctx context.Context, t *models.Target) ([]models.Candidate, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.fakeSearcher.FetchCandidates(ctx, t)
}

func newCoreWith(source TargetSource, factory AdapterFactory, reporter Reporter) *Core {
	orch := NewOrchestrator(factory, false, zap.NewNop())
	return NewCore(source, orch, reporter, nil, Settings{HistorySize: 10}, zap.NewNop())
}

func TestRunNowOverlapGuarded(t *testing.T) {
	blocker := &blockingSearcher{
		fakeSearcher: fakeSearcher{fetches: [][]models.Candidate{candidateSet(2)}, tagID: 1},
		started:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	source := &fakeSource{targets: []models.Target{
		{ID: 1, Service: "radarr", Count: "all", TagName: "searched", Enabled: true},
	}}
	core := newCoreWith(source, func(_ *models.Target) (arr.Searcher, error) { return blocker, nil }, &fakeReporter{})

	done := make(chan models.RunRecord, 1)
	go func() {
		rec, _ := core.RunNow(context.Background(), 1)
		done <- rec
	}()
	<-blocker.started

	if _, err := core.RunNow(context.Background(), 1); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second trigger mid-run should be rejected, got %v", err)
	}

	close(blocker.release)
	rec := <-done
	if !rec.Success {
		t.Fatalf("first run should complete successfully, got %+v", rec)
	}
	if got := core.history.Len(); got != 1 {
		t.Fatalf("the rejected trigger must leave no ledger entry, ledger has %d", got)
	}
}

func TestFireSkipsWhenRunning(t *testing.T) {
	source := &fakeSource{targets: []models.Target{
		{ID: 1, Service: "radarr", Count: "all", TagName: "searched", Enabled: true},
	}}
	f := &fakeSearcher{fetches: [][]models.Candidate{candidateSet(1)}, tagID: 1}
	core := newCoreWith(source, func(_ *models.Target) (arr.Searcher, error) { return f, nil }, &fakeReporter{})

	handle, err := schedule.Resolve("0 * * * *")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	task := &scheduledTask{key: "radarr-1", handle: handle, target: &source.targets[0], stop: make(chan struct{})}

	core.guard.TryAcquire("radarr-1")
	core.fire(task)
	core.guard.Release("radarr-1")

	if core.history.Len() != 0 {
		t.Fatal("a skipped fire must not append to the ledger")
	}
	if f.fetchCalls != 0 {
		t.Fatal("a skipped fire must not reach the adapter")
	}
}

func TestGlobalFanOutIsolatesFailures(t *testing.T) {
	source := &fakeSource{targets: []models.Target{
		{ID: 1, Service: "radarr", Count: "all", TagName: "searched", Enabled: true},
		{ID: 2, Service: "sonarr", Count: "all", TagName: "searched", Enabled: true},
	}}
	factory := func(target *models.Target) (arr.Searcher, error) {
		if target.Service == "radarr" {
			return &fakeSearcher{fetchErr: errors.New("connection refused")}, nil
		}
		return &fakeSearcher{fetches: [][]models.Candidate{candidateSet(2)}, tagID: 1}, nil
	}
	reporter := &fakeReporter{}
	core := newCoreWith(source, factory, reporter)

	rec, err := core.RunNow(context.Background(), 0)
	if err != nil {
		t.Fatalf("global run: %v", err)
	}
	if rec.Success {
		t.Fatal("a failed sibling must mark the whole record failed")
	}
	if res := rec.Results["radarr"]; res.Success || res.Error == "" {
		t.Fatalf("radarr should have failed, got %+v", res)
	}
	if res := rec.Results["sonarr"]; !res.Success || res.Searched != 2 {
		t.Fatalf("sonarr should still run and succeed, got %+v", res)
	}
	if len(reporter.searches) != 1 || reporter.searches[0] != "sonarr-2" {
		t.Fatalf("only the successful target should record stats, got %v", reporter.searches)
	}
}

func TestGlobalFanOutExcludesSelfScheduled(t *testing.T) {
	source := &fakeSource{targets: []models.Target{
		{ID: 1, Service: "radarr", Count: "all", TagName: "searched", Enabled: true},
		{ID: 2, Service: "sonarr", Count: "all", TagName: "searched", Enabled: true,
			Schedule: "0 * * * *", ScheduleEnabled: true},
	}}
	var ran []string
	factory := func(target *models.Target) (arr.Searcher, error) {
		ran = append(ran, target.Key())
		return &fakeSearcher{fetches: [][]models.Candidate{candidateSet(1)}, tagID: 1}, nil
	}
	core := newCoreWith(source, factory, &fakeReporter{})

	rec, err := core.RunNow(context.Background(), 0)
	if err != nil {
		t.Fatalf("global run: %v", err)
	}
	if len(ran) != 1 || ran[0] != "radarr-1" {
		t.Fatalf("self-scheduled target must not be double-processed, ran %v", ran)
	}
	if _, ok := rec.Results["sonarr-2"]; ok {
		t.Fatal("excluded target must not appear in the result map")
	}
}

func TestGlobalResultKeys(t *testing.T) {
	source := &fakeSource{targets: []models.Target{
		{ID: 1, Service: "radarr", Count: "all", TagName: "searched", Enabled: true},
		{ID: 2, Service: "radarr", Count: "all", TagName: "searched", Enabled: true},
		{ID: 3, Service: "sonarr", Count: "all", TagName: "searched", Enabled: true},
	}}
	factory := func(_ *models.Target) (arr.Searcher, error) {
		return &fakeSearcher{fetches: [][]models.Candidate{candidateSet(1)}, tagID: 1}, nil
	}
	core := newCoreWith(source, factory, &fakeReporter{})

	rec, err := core.RunNow(context.Background(), 0)
	if err != nil {
		t.Fatalf("global run: %v", err)
	}
	for _, key := range []string{"radarr-1", "radarr-2", "sonarr"} {
		if _, ok := rec.Results[key]; !ok {
			t.Fatalf("expected result key %q, got %v", key, rec.Results)
		}
	}
}

func TestReloadRebuildsRegistry(t *testing.T) {
	source := &fakeSource{targets: []models.Target{
		{ID: 1, Service: "radarr", Count: "all", TagName: "searched", Enabled: true,
			Schedule: "0 */6 * * *", ScheduleEnabled: true},
		{ID: 2, Service: "sonarr", Count: "all", TagName: "searched", Enabled: true,
			Schedule: "not a schedule", ScheduleEnabled: true},
	}}
	factory := func(_ *models.Target) (arr.Searcher, error) {
		return &fakeSearcher{fetches: [][]models.Candidate{nil}}, nil
	}
	orch := NewOrchestrator(factory, false, zap.NewNop())
	core := NewCore(source, orch, &fakeReporter{}, nil,
		Settings{Enabled: true, Schedule: "0 * * * *", HistorySize: 10}, zap.NewNop())
	defer core.Stop()

	if err := core.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	status := core.Status()
	if len(status) != 2 {
		t.Fatalf("expected global + one valid per-instance timer, got %+v", status)
	}
	if status[0].Key != GlobalKey || status[1].Key != "radarr-1" {
		t.Fatalf("unexpected keys: %+v", status)
	}
	for _, s := range status {
		if s.Next.IsZero() || !s.Next.After(time.Now().Add(-time.Second)) {
			t.Fatalf("armed task %q should publish a future next-run time, got %v", s.Key, s.Next)
		}
	}

	// A second reload replaces, never duplicates, the timers.
	if err := core.Reload(context.Background()); err != nil {
		t.Fatalf("second reload: %v", err)
	}
	if got := len(core.Status()); got != 2 {
		t.Fatalf("reload must rebuild in place, got %d tasks", got)
	}

	core.Stop()
	if got := len(core.Status()); got != 0 {
		t.Fatalf("stop must clear the registry, got %d tasks", got)
	}
}

func TestRunNowUnknownTarget(t *testing.T) {
	core := newCoreWith(&fakeSource{}, func(_ *models.Target) (arr.Searcher, error) {
		return &fakeSearcher{}, nil
	}, &fakeReporter{})

	if _, err := core.RunNow(context.Background(), 42); err == nil {
		t.Fatal("unknown target id should error")
	}
	if core.history.Len() != 0 {
		t.Fatal("a failed lookup must not append to the ledger")
	}
}
