package usecases

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/kruetzmann2110/demandas/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineAppendAliasesAndUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	demands := newDemandUseCase(db)
	uc := NewTimelineUseCase(repositories.NewTimelineRepository(db), "G0040925")

	id, err := demands.Create(ctx, map[string]interface{}{"requester": "Ana", "scenario": "A"})
	require.NoError(t, err)

	entry, err := uc.Append(ctx, id, map[string]interface{}{"message": "via alias", "userId": "Caio"}, Identity{ForwardedUser: "ignorado"})
	require.NoError(t, err)
	assert.Equal(t, "via alias", entry.EventText)
	assert.Equal(t, "Caio", *entry.UserID)

	entry, err = uc.Append(ctx, id, map[string]interface{}{"text": "do cabeçalho"}, Identity{ForwardedUser: `CORP\bruno`})
	require.NoError(t, err)
	assert.Equal(t, "bruno", *entry.UserID)

	entry, err = uc.Append(ctx, id, map[string]interface{}{"observation": "padrão"}, Identity{})
	require.NoError(t, err)
	assert.Equal(t, "G0040925", *entry.UserID)

	_, err = uc.Append(ctx, id, map[string]interface{}{"user_id": "x"}, Identity{})
	assert.True(t, IsValidationError(err))

	rows, err := uc.ListByDemand(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Ana", rows[0].UserName)
	assert.Equal(t, "padrão", rows[3].EventText)
}

func TestTimelineLegacy(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uc := NewTimelineUseCase(repositories.NewTimelineRepository(db), "")

	id, err := newDemandUseCase(db).Create(ctx, map[string]interface{}{"scenario": "A"})
	require.NoError(t, err)

	entry, err := uc.AppendLegacy(ctx, map[string]interface{}{"demandId": json.Number(jsonID(id)), "event_text": "legado"})
	require.NoError(t, err)
	assert.Equal(t, id, entry.DemandID)
	assert.Nil(t, entry.UserID)

	list, err := uc.ListLegacy(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "legado", list[0].EventText)

	_, err = uc.AppendLegacy(ctx, map[string]interface{}{"event_text": "sem demanda"})
	assert.True(t, IsValidationError(err))
	_, err = uc.AppendLegacy(ctx, map[string]interface{}{"id": json.Number("1")})
	assert.True(t, IsValidationError(err))
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
