package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"github.com/kruetzmann2110/demandas/internal/domain/repositories"
	"github.com/kruetzmann2110/demandas/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatusRepo struct {
	def   string
	err   error
	calls int
}

func (f *fakeStatusRepo) ConstraintDefinition(ctx context.Context) (string, error) {
	f.calls++
	return f.def, f.err
}

func TestParseStatusValues(t *testing.T) {
	pg := `CHECK (((status)::text = ANY ((ARRAY['Novo'::character varying, 'Em andamento'::character varying, 'Concluido'::character varying])::text[])))`
	assert.Equal(t, []string{"Novo", "Em andamento", "Concluido"}, ParseStatusValues(pg))

	lite := `CHECK (status IN ('Novo','Em analise','Novo'))`
	assert.Equal(t, []string{"Novo", "Em analise"}, ParseStatusValues(lite))

	assert.Empty(t, ParseStatusValues(""))
}

func TestStatusValuesCachedAndFallback(t *testing.T) {
	ctx := context.Background()

	repo := &fakeStatusRepo{def: `CHECK (status IN ('A','B'))`}
	uc := NewCatalogUseCase(nil, repo, cache.New(time.Minute), time.Minute)
	assert.Equal(t, []string{"A", "B"}, uc.StatusValues(ctx))
	assert.Equal(t, []string{"A", "B"}, uc.StatusValues(ctx))
	assert.Equal(t, 1, repo.calls)

	failing := &fakeStatusRepo{err: errors.New("permission denied")}
	uc = NewCatalogUseCase(nil, failing, cache.New(time.Minute), time.Minute)
	assert.Equal(t, entities.FallbackStatuses, uc.StatusValues(ctx))

	empty := &fakeStatusRepo{}
	uc = NewCatalogUseCase(nil, empty, cache.New(time.Minute), time.Minute)
	assert.Equal(t, entities.FallbackStatuses, uc.StatusValues(ctx))
}

func TestCatalogTemas(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&entities.Tema{Tema: "Faturamento", FocalNome: strPtr("Bruno")}).Error)

	uc := NewCatalogUseCase(repositories.NewTemaRepository(db), repositories.NewStatusRepository(db), cache.New(time.Minute), time.Minute)

	temas, err := uc.ListTemas(ctx)
	require.NoError(t, err)
	require.Len(t, temas, 1)

	found, err := uc.FindTema(ctx, "Faturamento")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Bruno", *found.FocalNome)

	missing, err := uc.FindTema(ctx, "Nada")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// a CHECK criada pela migração é lida de volta
	assert.Equal(t, entities.FallbackStatuses, uc.StatusValues(ctx))
}
