package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OptimizePerformanceIndexes adiciona índices otimizados para as buscas sem diferenciar maiúsculas
func OptimizePerformanceIndexes(db *gorm.DB) error {
	zap.L().Debug("Adicionando índices de performance otimizados...")

	indexes := []string{
		// Resolução de usuário por nome (case-insensitive) no join da timeline e no /current-user
		"CREATE INDEX IF NOT EXISTS idx_usuarios_demanda_lower_name ON usuarios_demanda (LOWER(name))",
		// Exportação e listagem filtram quase sempre demandas em aberto
		"CREATE INDEX IF NOT EXISTS idx_demands_open ON demands (created_at) WHERE status NOT IN ('Concluido', 'Cancelado')",
	}

	// Índice BRIN só existe no PostgreSQL
	if db.Dialector.Name() == "postgres" {
		indexes = append(indexes, "CREATE INDEX IF NOT EXISTS idx_demand_timeline_event_date_brin ON demand_timeline USING BRIN (event_date)")
	}

	// Executar cada índice
	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return err
		}
	}

	zap.L().Debug("Índices de performance criados com sucesso!")
	return nil
}
