package usecases

import (
	"time"

	"gorm.io/gorm"

	"github.com/kruetzmann2110/demandas/internal/domain/repositories"
)

// UseCases agrupa os casos de uso montados uma única vez na inicialização.
type UseCases struct {
	Demand   DemandUseCase
	Timeline TimelineUseCase
	User     UserUseCase
	Catalog  CatalogUseCase
}

type Options struct {
	DefaultUser        string
	AdminFallbackUsers []string
	LookupTimeout      time.Duration
	CatalogTTL         time.Duration
}

func NewUseCases(db *gorm.DB, localUsers LocalUsers, cache Cache, opts Options) *UseCases {
	demandRepo := repositories.NewDemandRepository(db)
	timelineRepo := repositories.NewTimelineRepository(db)
	userRepo := repositories.NewUserRepository(db)

	return &UseCases{
		Demand:   NewDemandUseCase(demandRepo, timelineRepo),
		Timeline: NewTimelineUseCase(timelineRepo, opts.DefaultUser),
		User: NewUserUseCase(userRepo, localUsers, UserOptions{
			LookupTimeout:      opts.LookupTimeout,
			DefaultUser:        opts.DefaultUser,
			AdminFallbackUsers: opts.AdminFallbackUsers,
		}),
		Catalog: NewCatalogUseCase(
			repositories.NewTemaRepository(db),
			repositories.NewStatusRepository(db),
			cache,
			opts.CatalogTTL,
		),
	}
}
