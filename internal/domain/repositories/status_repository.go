package repositories

import (
	"context"
	"fmt"
	"regexp"

	"gorm.io/gorm"
)

// StatusRepository lê a definição da CHECK constraint da coluna demands.status.
type StatusRepository interface {
	ConstraintDefinition(ctx context.Context) (string, error)
}

type statusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db}
}

var sqliteStatusCheck = regexp.MustCompile(`(?i)CHECK\s*\(\s*[\x60"]?status[\x60"]?\s+IN\s*\([^)]*\)\s*\)`)

// ConstraintDefinition retorna "" quando não há constraint.
func (r *statusRepository) ConstraintDefinition(ctx context.Context) (string, error) {
	switch dialect(r.db) {
	case "postgres":
		var definitions []string
		err := r.db.WithContext(ctx).Raw(`
			SELECT pg_get_constraintdef(c.oid)
			FROM pg_constraint c
			JOIN pg_class t ON c.conrelid = t.oid
			JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY (c.conkey)
			WHERE t.relname = ? AND a.attname = ? AND c.contype = 'c'
		`, "demands", "status").Scan(&definitions).Error
		if err != nil {
			return "", err
		}
		if len(definitions) == 0 {
			return "", nil
		}
		return definitions[0], nil

	case "sqlite":
		var ddl []string
		err := r.db.WithContext(ctx).Raw(
			"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", "demands",
		).Scan(&ddl).Error
		if err != nil {
			return "", err
		}
		if len(ddl) == 0 {
			return "", nil
		}
		// O DDL inteiro tem outros literais (DEFAULT 'Novo'); só a CHECK interessa.
		return sqliteStatusCheck.FindString(ddl[0]), nil

	default:
		return "", fmt.Errorf("leitura de constraint não suportada para o dialeto %q", dialect(r.db))
	}
}
