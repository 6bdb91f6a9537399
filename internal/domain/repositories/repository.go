package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrConflict indica que a revisão enviada pelo cliente não é mais a atual.
var ErrConflict = errors.New("a demanda foi alterada por outro usuário; recarregue e tente novamente")

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func dialect(db *gorm.DB) string {
	return db.Dialector.Name()
}
