package repositories

import (
	"context"
	"time"

	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"gorm.io/gorm"
)

type DemandRepository interface {
	List(ctx context.Context) ([]entities.Demand, error)
	Create(ctx context.Context, demand *entities.Demand, initial *entities.TimelineEntry) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}, expectedRevision *int64, at time.Time) (int64, error)
	Export(ctx context.Context) ([]entities.Demand, error)
}

type demandRepository struct {
	db *gorm.DB
}

func NewDemandRepository(db *gorm.DB) DemandRepository {
	return &demandRepository{db}
}

// List retorna todas as demandas, mais recentes primeiro, com o nome do responsável resolvido.
func (r *demandRepository) List(ctx context.Context) ([]entities.Demand, error) {
	var demands []entities.Demand

	err := r.db.WithContext(ctx).
		Table("demands AS d").
		Select("d.*, u.name AS responsible_name").
		Joins("LEFT JOIN usuarios_demanda u ON d.responsible = u.name").
		Order("d.created_at DESC, d.id DESC").
		Scan(&demands).Error
	if err != nil {
		return nil, err
	}

	demands = dedupeDemands(demands)
	for i := range demands {
		demands[i].Normalize()
	}

	return demands, nil
}

// Create grava a demanda e a entrada sintética de criação na mesma transação.
func (r *demandRepository) Create(ctx context.Context, demand *entities.Demand, initial *entities.TimelineEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(demand).Error; err != nil {
			return err
		}

		if initial == nil {
			return nil
		}

		initial.DemandID = demand.ID
		return tx.Create(initial).Error
	})
}

// UpdateFields aplica um UPDATE esparso. Sempre avança updated_at e revision.
// Com expectedRevision o UPDATE vira compare-and-swap; zero linhas afetadas em
// uma demanda existente significa revisão desatualizada (ErrConflict).
// Sem expectedRevision um id inexistente não é erro: retorna 0 linhas.
func (r *demandRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}, expectedRevision *int64, at time.Time) (int64, error) {
	updates := make(map[string]interface{}, len(fields)+2)
	for column, value := range fields {
		updates[column] = value
	}
	updates["updated_at"] = at
	updates["revision"] = gorm.Expr("revision + 1")

	query := r.db.WithContext(ctx).Model(&entities.Demand{}).Where("id = ?", id)
	if expectedRevision != nil {
		query = query.Where("revision = ?", *expectedRevision)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 && expectedRevision != nil {
		var count int64
		if err := r.db.WithContext(ctx).Model(&entities.Demand{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		if count > 0 {
			return 0, ErrConflict
		}
	}

	return result.RowsAffected, nil
}

// Export lê as colunas usadas na planilha, sem join e sem timeline.
func (r *demandRepository) Export(ctx context.Context) ([]entities.Demand, error) {
	var demands []entities.Demand

	err := r.db.WithContext(ctx).
		Model(&entities.Demand{}).
		Order("created_at DESC, id DESC").
		Find(&demands).Error
	if err != nil {
		return nil, err
	}

	return demands, nil
}

// Nomes duplicados em usuarios_demanda multiplicam linhas no LEFT JOIN.
func dedupeDemands(demands []entities.Demand) []entities.Demand {
	seen := make(map[int64]struct{}, len(demands))
	out := demands[:0]
	for _, d := range demands {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	return out
}
