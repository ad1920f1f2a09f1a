package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// Migrate ensures the schema for all persisted entities exists.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

func allModels() []interface{} {
	return []interface{}{
		&models.Target{},
		&models.RunLog{},
		&models.SearchStat{},
	}
}
