package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// RunRepository persists the durable copy of run records.
type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save stores one run record with its result map serialized to JSON.
func (r *RunRepository) Save(ctx context.Context, rec models.RunRecord) error {
	raw, err := json.Marshal(rec.Results)
	if err != nil {
		return err
	}
	row := models.RunLog{
		ID:       rec.ID,
		Time:     rec.Timestamp,
		Success:  rec.Success,
		SchedKey: rec.Key,
		Results:  string(raw),
		Error:    rec.Error,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// FindRecent returns the newest rows first, bounded by limit.
func (r *RunRepository) FindRecent(ctx context.Context, limit int) ([]models.RunLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.RunLog
	if err := r.db.WithContext(ctx).Order("time DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteOlderThan prunes rows past the retention window.
func (r *RunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) error {
	return r.db.WithContext(ctx).Where("time < ?", cutoff).Delete(&models.RunLog{}).Error
}
