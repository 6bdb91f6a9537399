package migrations

import (
	"gorm.io/gorm"
)

// AddIndexes adds indexes to the database to improve query performance
func AddIndexes(db *gorm.DB) error {
	// Add indexes to the demands table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_demands_created_at ON demands (created_at)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_demands_responsible ON demands (responsible)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_demands_status ON demands (status)").Error; err != nil {
		return err
	}

	// Add indexes to the demand_timeline table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_demand_timeline_demand_event ON demand_timeline (demand_id, event_date, id)").Error; err != nil {
		return err
	}

	// Add indexes to the usuarios_demanda table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_usuarios_demanda_name ON usuarios_demanda (name)").Error; err != nil {
		return err
	}

	return nil
}
