package usecases

import (
	"context"
	"regexp"
	"time"

	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"github.com/kruetzmann2110/demandas/internal/domain/repositories"
	"go.uber.org/zap"
)

const (
	statusCacheKey = "status-values"
	temasCacheKey  = "temas"
)

// Cache é o subconjunto do cache em memória usado pelos catálogos.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, duration time.Duration)
}

// CatalogUseCase atende as listas de apoio do frontend: temas e valores de status.
type CatalogUseCase interface {
	ListTemas(ctx context.Context) ([]entities.Tema, error)
	FindTema(ctx context.Context, tema string) (*entities.Tema, error)
	StatusValues(ctx context.Context) []string
}

type catalogUseCase struct {
	temaRepo   repositories.TemaRepository
	statusRepo repositories.StatusRepository
	cache      Cache
	ttl        time.Duration
}

func NewCatalogUseCase(temaRepo repositories.TemaRepository, statusRepo repositories.StatusRepository, cache Cache, ttl time.Duration) CatalogUseCase {
	return &catalogUseCase{temaRepo, statusRepo, cache, ttl}
}

func (uc *catalogUseCase) ListTemas(ctx context.Context) ([]entities.Tema, error) {
	if cached, ok := uc.cache.Get(temasCacheKey); ok {
		return cached.([]entities.Tema), nil
	}

	temas, err := uc.temaRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(temasCacheKey, temas, uc.ttl)
	return temas, nil
}

// FindTema devolve (nil, nil) quando o tema não existe.
func (uc *catalogUseCase) FindTema(ctx context.Context, tema string) (*entities.Tema, error) {
	return uc.temaRepo.FindByTema(ctx, tema)
}

// StatusValues nunca falha: sem constraint legível, devolve a lista fixa.
func (uc *catalogUseCase) StatusValues(ctx context.Context) []string {
	if cached, ok := uc.cache.Get(statusCacheKey); ok {
		return cached.([]string)
	}

	def, err := uc.statusRepo.ConstraintDefinition(ctx)
	if err != nil {
		zap.L().Warn("❌ Erro ao buscar status válidos, usando lista padrão", zap.Error(err))
		return fallbackStatuses()
	}

	values := ParseStatusValues(def)
	if len(values) == 0 {
		values = fallbackStatuses()
	}

	uc.cache.Set(statusCacheKey, values, uc.ttl)
	return values
}

var quotedLiteral = regexp.MustCompile(`'([^']+)'`)

// ParseStatusValues extrai os literais entre aspas simples da definição da
// constraint, na ordem em que aparecem e sem repetição.
func ParseStatusValues(definition string) []string {
	matches := quotedLiteral.FindAllStringSubmatch(definition, -1)
	seen := make(map[string]struct{}, len(matches))
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		values = append(values, m[1])
	}
	return values
}

func fallbackStatuses() []string {
	return append([]string(nil), entities.FallbackStatuses...)
}
