package repositories

import (
	"context"

	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"gorm.io/gorm"
)

type TemaRepository interface {
	List(ctx context.Context) ([]entities.Tema, error)
	FindByTema(ctx context.Context, tema string) (*entities.Tema, error)
}

type temaRepository struct {
	db *gorm.DB
}

func NewTemaRepository(db *gorm.DB) TemaRepository {
	return &temaRepository{db}
}

func (r *temaRepository) List(ctx context.Context) ([]entities.Tema, error) {
	temas := []entities.Tema{}

	if err := r.db.WithContext(ctx).Order("tema ASC").Find(&temas).Error; err != nil {
		return nil, err
	}

	return temas, nil
}

func (r *temaRepository) FindByTema(ctx context.Context, tema string) (*entities.Tema, error) {
	var found entities.Tema

	err := r.db.WithContext(ctx).Where("tema = ?", tema).First(&found).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &found, nil
}
