package usecases

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/kruetzmann2110/demandas/internal/config"
	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"github.com/kruetzmann2110/demandas/internal/domain/repositories"
	"github.com/kruetzmann2110/demandas/internal/infrastructure/database"
	"github.com/kruetzmann2110/demandas/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.SetupDatabase(config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "demandas.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxIdleTime: time.Minute,
		Timezone:        "America/Sao_Paulo",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newDemandUseCase(db *gorm.DB) DemandUseCase {
	return NewDemandUseCase(repositories.NewDemandRepository(db), repositories.NewTimelineRepository(db))
}

func TestDemandUseCaseCreateNormalizes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uc := newDemandUseCase(db)

	id, err := uc.Create(ctx, map[string]interface{}{
		"requester":        "Ana",
		"scenario":         "Login fails",
		"tdna":             "não numérico",
		"nps":              json.Number("8"),
		"demand_open_date": "2025-02-10",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	var stored entities.Demand
	require.NoError(t, db.First(&stored, id).Error)
	assert.Equal(t, entities.DefaultStatus, stored.Status)
	assert.Equal(t, entities.DefaultPriority, *stored.Priority)
	assert.Equal(t, entities.DefaultPriorityScore, *stored.PriorityScore)
	assert.Equal(t, entities.DefaultPriorityClassification, *stored.PriorityClassification)
	assert.Nil(t, stored.TDNA)
	assert.Equal(t, 8, *stored.NPS)

	require.NotNil(t, stored.OpenDate)
	openDate := stored.OpenDate.In(time.FixedZone("BRT", -3*60*60))
	assert.Equal(t, 2025, openDate.Year())
	assert.Equal(t, time.February, openDate.Month())
	assert.Equal(t, 10, openDate.Day())
	assert.Equal(t, 12, openDate.Hour())

	list, err := uc.ListWithTimeline(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Timeline, 1)
	assert.Equal(t, `Demanda "Login fails" foi criada`, list[0].Timeline[0].Acao)
	assert.Equal(t, "Ana", list[0].Timeline[0].Usuario)
}

func TestDemandUseCaseCreateAnalytics(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uc := newDemandUseCase(db)

	id, err := uc.Create(ctx, map[string]interface{}{
		"scenario":          "Relatório",
		"priority":          "1",
		"analyticsScore":    json.Number("87"),
		"analyticsPriority": "Alta",
	})
	require.NoError(t, err)

	var stored entities.Demand
	require.NoError(t, db.First(&stored, id).Error)
	assert.Equal(t, 1, *stored.Priority)
	assert.Equal(t, 87, *stored.PriorityScore)
	assert.Equal(t, "Alta", *stored.PriorityClassification)
}

func TestDemandUseCaseListEmpty(t *testing.T) {
	uc := newDemandUseCase(newTestDB(t))

	list, err := uc.ListWithTimeline(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDemandUseCaseUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uc := newDemandUseCase(db)

	id, err := uc.Create(ctx, map[string]interface{}{"requester": "Ana", "scenario": "Login fails"})
	require.NoError(t, err)

	t.Run("rejected before write", func(t *testing.T) {
		err := uc.Update(ctx, id, map[string]interface{}{"bogus": "x", "title": "y"})
		assert.True(t, IsValidationError(err))

		var stored entities.Demand
		require.NoError(t, db.First(&stored, id).Error)
		assert.Nil(t, stored.UpdatedAt)
		assert.Nil(t, stored.Title)
		assert.Zero(t, stored.Revision)
	})

	t.Run("only supplied columns change", func(t *testing.T) {
		require.NoError(t, uc.Update(ctx, id, map[string]interface{}{"title": "Novo título", "priority": json.Number("1")}))

		var stored entities.Demand
		require.NoError(t, db.First(&stored, id).Error)
		assert.Equal(t, "Novo título", *stored.Title)
		assert.Equal(t, 1, *stored.Priority)
		assert.Equal(t, "Login fails", *stored.Scenario)
		assert.Equal(t, "Ana", *stored.Requester)
		assert.NotNil(t, stored.UpdatedAt)
		assert.EqualValues(t, 1, stored.Revision)
	})

	t.Run("stale revision conflicts", func(t *testing.T) {
		err := uc.Update(ctx, id, map[string]interface{}{"title": "x", "revision": json.Number("0")})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("missing demand is silent", func(t *testing.T) {
		assert.NoError(t, uc.UpdateField(ctx, 424242, map[string]interface{}{"real_demand_id": "X"}))
	})
}

func TestDemandUseCaseTimelineEdit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uc := newDemandUseCase(db)

	id, err := uc.Create(ctx, map[string]interface{}{"requester": "Ana", "scenario": "Login fails"})
	require.NoError(t, err)

	fields, err := uc.TimelineEdit(ctx, id, map[string]interface{}{
		"real_demand_id": "X123",
		"open_date":      "2025-05-02",
		"user_id":        "G0040925",
		"scenario":       "ignorado",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"open_date", "real_demand_id"}, fields)

	list, err := uc.ListWithTimeline(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "X123", *list[0].RealDemandID)
	assert.Equal(t, "Login fails", *list[0].Scenario)

	require.Len(t, list[0].Timeline, 2)
	last := list[0].Timeline[1]
	assert.True(t, strings.HasPrefix(last.Acao, "Campos editados via timeline: "))
	assert.Contains(t, last.Acao, `ID da demanda real: "X123"`)
	assert.Contains(t, last.Acao, `Data de abertura: "2025-05-02"`)
	assert.Equal(t, "G0040925", last.Usuario)

	_, err = uc.TimelineEdit(ctx, id, map[string]interface{}{"user_id": "x"})
	assert.True(t, IsValidationError(err))
}

func TestDemandUseCaseExport(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uc := newDemandUseCase(db)

	require.NoError(t, db.Create(&entities.Demand{Scenario: strPtr("antiga"), Status: entities.DefaultStatus, CreatedAt: utils.NowSaoPaulo().Add(-time.Hour)}).Error)
	_, err := uc.Create(ctx, map[string]interface{}{"scenario": "nova"})
	require.NoError(t, err)

	rows, err := uc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "nova", *rows[0].Scenario)
	assert.Equal(t, entities.DefaultPriority, *rows[1].Priority)
}

func strPtr(s string) *string { return &s }
