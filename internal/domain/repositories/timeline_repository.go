package repositories

import (
	"context"
	"sort"

	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"gorm.io/gorm"
)

type TimelineRepository interface {
	AggregateByDemandIDs(ctx context.Context, demandIDs []int64) (map[int64][]entities.TimelineView, error)
	ListByDemand(ctx context.Context, demandID int64) ([]entities.TimelineRow, error)
	ListLegacy(ctx context.Context, demandID int64) ([]entities.TimelineEntry, error)
	Append(ctx context.Context, entry *entities.TimelineEntry) error
}

type timelineRepository struct {
	db *gorm.DB
}

func NewTimelineRepository(db *gorm.DB) TimelineRepository {
	return &timelineRepository{db}
}

const timelineUserJoin = "LEFT JOIN usuarios_demanda u ON t.user_id = u.name OR LOWER(t.user_id) = LOWER(u.name)"

func (r *timelineRepository) rowsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("demand_timeline AS t").
		Select("t.id, t.demand_id, t.event_date, t.event_text, t.created_at, t.user_id, COALESCE(u.name, t.user_id, ?) AS user_name", entities.SystemUserLabel).
		Joins(timelineUserJoin)
}

// AggregateByDemandIDs busca a timeline de todas as demandas em uma única
// consulta (IN parametrizado) e agrupa por demanda. Toda demanda pedida aparece
// no resultado; sem eventos, com sequência vazia.
func (r *timelineRepository) AggregateByDemandIDs(ctx context.Context, demandIDs []int64) (map[int64][]entities.TimelineView, error) {
	result := make(map[int64][]entities.TimelineView, len(demandIDs))
	if len(demandIDs) == 0 {
		return result, nil
	}

	for _, id := range demandIDs {
		result[id] = []entities.TimelineView{}
	}

	var rows []entities.TimelineRow
	err := r.rowsQuery(ctx).
		Where("t.demand_id IN ?", demandIDs).
		Order("t.demand_id, t.event_date ASC, t.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range sortRows(dedupeRows(rows)) {
		if _, ok := result[row.DemandID]; !ok {
			continue
		}
		result[row.DemandID] = append(result[row.DemandID], row.View())
	}

	return result, nil
}

func (r *timelineRepository) ListByDemand(ctx context.Context, demandID int64) ([]entities.TimelineRow, error) {
	var rows []entities.TimelineRow

	err := r.rowsQuery(ctx).
		Where("t.demand_id = ?", demandID).
		Order("t.event_date ASC, t.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rows = sortRows(dedupeRows(rows))
	for i := range rows {
		if rows[i].UserName == "" {
			rows[i].UserName = entities.SystemUserLabel
		}
	}
	return rows, nil
}

// ListLegacy atende o formato antigo: linhas cruas, mais recentes primeiro.
func (r *timelineRepository) ListLegacy(ctx context.Context, demandID int64) ([]entities.TimelineEntry, error) {
	entries := []entities.TimelineEntry{}

	err := r.db.WithContext(ctx).
		Where("demand_id = ?", demandID).
		Order("event_date DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *timelineRepository) Append(ctx context.Context, entry *entities.TimelineEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// O join por nome (exato ou case-insensitive) pode casar mais de um usuário.
func dedupeRows(rows []entities.TimelineRow) []entities.TimelineRow {
	seen := make(map[int64]struct{}, len(rows))
	out := rows[:0]
	for _, row := range rows {
		if _, ok := seen[row.ID]; ok {
			continue
		}
		seen[row.ID] = struct{}{}
		out = append(out, row)
	}
	return out
}

func sortRows(rows []entities.TimelineRow) []entities.TimelineRow {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].EventDate.Equal(rows[j].EventDate) {
			return rows[i].EventDate.Before(rows[j].EventDate)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}
