package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// StatRepository maintains per-target aggregate search counters.
type StatRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) *StatRepository {
	return &StatRepository{db: db}
}

// Record adds a run's searched count to the target's running total and
// replaces the last-items snapshot. The (service, target) pair is upserted.
func (r *StatRepository) Record(ctx context.Context, service string, targetID uint, res models.SearchResult) error {
	raw, err := json.Marshal(res.Items)
	if err != nil {
		return err
	}
	row := models.SearchStat{
		Service:   service,
		TargetID:  targetID,
		Searched:  int64(res.Searched),
		LastItems: string(raw),
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "service"}, {Name: "target_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"searched":   gorm.Expr("searched + ?", res.Searched),
			"last_items": string(raw),
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
}

// FindAll returns every counter row.
func (r *StatRepository) FindAll(ctx context.Context) ([]models.SearchStat, error) {
	var stats []models.SearchStat
	if err := r.db.WithContext(ctx).Order("service, target_id").Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// Reset zeroes all counters.
func (r *StatRepository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.SearchStat{}).Error
}
