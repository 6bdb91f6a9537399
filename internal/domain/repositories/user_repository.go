package repositories

import (
	"context"

	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"gorm.io/gorm"
)

type UserRepository interface {
	List(ctx context.Context) ([]entities.User, error)
	FindByName(ctx context.Context, name string) (*entities.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) List(ctx context.Context) ([]entities.User, error) {
	users := []entities.User{}

	if err := r.db.WithContext(ctx).Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// FindByName compara sem diferenciar maiúsculas (usa o índice LOWER(name)).
// Usuário inexistente retorna (nil, nil).
func (r *userRepository) FindByName(ctx context.Context, name string) (*entities.User, error) {
	var user entities.User

	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id ASC").
		First(&user).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
