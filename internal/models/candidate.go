package models

import "time"

// Candidate is one media item fetched from a target, eligible for
// filtering and selection. It lives only for the duration of a single
// orchestration pass. Tags carry tag names, not numeric ids: filtering
// compares by name.
type Candidate struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Monitored      bool       `json:"monitored"`
	Tags           []string   `json:"tags"`
	QualityProfile string     `json:"quality_profile"`
	Status         string     `json:"status"`
	LastSearched   *time.Time `json:"last_searched,omitempty"`
}
