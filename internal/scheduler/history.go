package scheduler

import (
	"sync"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// DefaultHistorySize bounds the in-memory run ledger.
const DefaultHistorySize = 100

// HistoryLedger is a fixed-capacity, newest-first log of run outcomes.
// All mutation goes through Append/Clear; readers get a copy.
type HistoryLedger struct {
	mu       sync.Mutex
	capacity int
	records  []models.RunRecord
}

func NewHistoryLedger(capacity int) *HistoryLedger {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &HistoryLedger{capacity: capacity}
}

// Append prepends rec and drops the oldest entries past capacity.
func (l *HistoryLedger) Append(rec models.RunRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append([]models.RunRecord{rec}, l.records...)
	if len(l.records) > l.capacity {
		l.records = l.records[:l.capacity]
	}
}

// List returns a defensive copy, newest first.
func (l *HistoryLedger) List() []models.RunRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.RunRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Clear empties the ledger.
func (l *HistoryLedger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}

// Len reports the current entry count.
func (l *HistoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
