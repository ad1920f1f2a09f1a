package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// TargetRepository handles target database operations.
type TargetRepository struct {
	db *gorm.DB
}

func NewTargetRepository(db *gorm.DB) *TargetRepository {
	return &TargetRepository{db: db}
}

// FindAll returns every configured target.
func (r *TargetRepository) FindAll(ctx context.Context) ([]models.Target, error) {
	var targets []models.Target
	if err := r.db.WithContext(ctx).Order("id").Find(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

// FindEnabled returns the targets eligible for scheduled runs.
func (r *TargetRepository) FindEnabled(ctx context.Context) ([]models.Target, error) {
	var targets []models.Target
	if err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("id").Find(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

// FindByID returns one target by primary key.
func (r *TargetRepository) FindByID(ctx context.Context, id uint) (*models.Target, error) {
	var target models.Target
	if err := r.db.WithContext(ctx).First(&target, id).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

// Create inserts a new target.
func (r *TargetRepository) Create(ctx context.Context, target *models.Target) error {
	return r.db.WithContext(ctx).Create(target).Error
}

// Update saves every field of an existing target.
func (r *TargetRepository) Update(ctx context.Context, target *models.Target) error {
	return r.db.WithContext(ctx).Save(target).Error
}

// Delete removes a target by primary key.
func (r *TargetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Target{}, id).Error
}
