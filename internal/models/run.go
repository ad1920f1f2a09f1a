package models

import "time"

// SearchedItem identifies one media item a search was triggered for.
type SearchedItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// SearchResult is the outcome of one orchestration pass for one target.
// A failed result always carries Searched == 0.
type SearchResult struct {
	Success  bool           `json:"success"`
	Searched int            `json:"searched"`
	Items    []SearchedItem `json:"items,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// RunRecord is one entry in the run-history ledger. Key is empty for a
// global or manual multi-target run and set to the scheduling key for a
// single-instance run.
type RunRecord struct {
	ID        string                  `json:"id"`
	Timestamp time.Time               `json:"timestamp"`
	Success   bool                    `json:"success"`
	Key       string                  `json:"key,omitempty"`
	Results   map[string]SearchResult `json:"results"`
	Error     string                  `json:"error,omitempty"`
}

// RunLog maps to the `run_logs` table: the durable copy of a RunRecord.
// Results holds the per-target result map as JSON.
type RunLog struct {
	ID       string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Time     time.Time `gorm:"column:time;index" json:"time"`
	Success  bool      `gorm:"column:success" json:"success"`
	SchedKey string    `gorm:"column:sched_key;size:200" json:"sched_key"`
	Results  string    `gorm:"column:results;type:text" json:"results"`
	Error    string    `gorm:"column:error;type:text" json:"error"`
}

func (RunLog) TableName() string {
	return "run_logs"
}
