package models

import "time"

// SearchStat maps to the `search_stats` table: aggregate searched counts
// per service type and target, updated after every successful run with
// searched > 0. LastItems holds the most recent acted-upon items as JSON.
type SearchStat struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Service   string    `gorm:"column:service;size:50;uniqueIndex:idx_service_target" json:"service"`
	TargetID  uint      `gorm:"column:target_id;uniqueIndex:idx_service_target" json:"target_id"`
	Searched  int64     `gorm:"column:searched" json:"searched"`
	LastItems string    `gorm:"column:last_items;type:text" json:"last_items"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (SearchStat) TableName() string {
	return "search_stats"
}
