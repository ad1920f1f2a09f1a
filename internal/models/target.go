package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CountAll is the literal Count value meaning "search everything that
// passed the filters" instead of a bounded random sample.
const CountAll = "all"

// Target maps to the `targets` table. One row is one configured instance
// of one *arr service that scheduled search passes run against.
type Target struct {
	ID              uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name            string `gorm:"column:name;size:200" json:"name"`
	Service         string `gorm:"column:service;size:50;index" json:"service"`
	URL             string `gorm:"column:url;size:2000" json:"url"`
	APIKey          string `gorm:"column:api_key;size:200" json:"api_key"`
	SkipTLSVerify   bool   `gorm:"column:skip_tls_verify" json:"skip_tls_verify"`
	Count           string `gorm:"column:count;size:20" json:"count"`
	TagName         string `gorm:"column:tag_name;size:200" json:"tag_name"`
	IgnoreTag       string `gorm:"column:ignore_tag;size:200" json:"ignore_tag"`
	Monitored       *bool  `gorm:"column:monitored" json:"monitored"`
	Status          string `gorm:"column:status;size:100" json:"status"`
	QualityProfile  string `gorm:"column:quality_profile;size:200" json:"quality_profile"`
	Enabled         bool   `gorm:"column:enabled" json:"enabled"`
	Unattended      *bool  `gorm:"column:unattended" json:"unattended"`
	Schedule        string `gorm:"column:schedule;size:100" json:"schedule"`
	ScheduleEnabled bool   `gorm:"column:schedule_enabled" json:"schedule_enabled"`
}

func (Target) TableName() string {
	return "targets"
}

// Key returns the scheduling key for this target's own trigger.
func (t *Target) Key() string {
	return fmt.Sprintf("%s-%d", t.Service, t.ID)
}

// WantsAll reports whether the target searches the whole filtered set.
func (t *Target) WantsAll() bool {
	return strings.EqualFold(strings.TrimSpace(t.Count), CountAll)
}

// CountLimit returns the sample size for a bounded run. Zero or negative
// values (including unparsable ones) disable the target's run entirely,
// mirroring how an unset count behaves in the settings form.
func (t *Target) CountLimit() int {
	n, err := strconv.Atoi(strings.TrimSpace(t.Count))
	if err != nil {
		return 0
	}
	return n
}

// UnattendedOr resolves the per-target unattended flag against the
// application default used when the column is NULL.
func (t *Target) UnattendedOr(def bool) bool {
	if t.Unattended != nil {
		return *t.Unattended
	}
	return def
}
