package migrations

import (
	"github.com/kruetzmann2110/demandas/internal/domain/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Demand{},
		&entities.TimelineEntry{},
		&entities.Tema{},
	)
}
