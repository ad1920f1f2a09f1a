package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

func TestHistoryLedgerNewestFirst(t *testing.T) {
	l := NewHistoryLedger(10)
	for i := 0; i < 3; i++ {
		l.Append(models.RunRecord{ID: fmt.Sprintf("run-%d", i), Timestamp: time.Now()})
	}

	got := l.List()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != "run-2" || got[2].ID != "run-0" {
		t.Errorf("order = [%s %s %s], want newest first", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestHistoryLedgerCapacity(t *testing.T) {
	const capacity = 5
	l := NewHistoryLedger(capacity)

	for i := 0; i < capacity+1; i++ {
		l.Append(models.RunRecord{ID: fmt.Sprintf("run-%d", i)})
	}

	got := l.List()
	if len(got) != capacity {
		t.Fatalf("len = %d, want %d", len(got), capacity)
	}
	if got[0].ID != fmt.Sprintf("run-%d", capacity) {
		t.Errorf("newest = %s, want run-%d", got[0].ID, capacity)
	}
	for _, rec := range got {
		if rec.ID == "run-0" {
			t.Error("oldest entry still present after eviction")
		}
	}
}

func TestHistoryLedgerDefensiveCopy(t *testing.T) {
	l := NewHistoryLedger(10)
	l.Append(models.RunRecord{ID: "a"})

	out := l.List()
	out[0].ID = "mutated"

	if l.List()[0].ID != "a" {
		t.Error("caller mutation leaked into ledger")
	}
}

func TestHistoryLedgerClear(t *testing.T) {
	l := NewHistoryLedger(0) // zero capacity falls back to default
	l.Append(models.RunRecord{ID: "a"})
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", l.Len())
	}
}
