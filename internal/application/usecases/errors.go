package usecases

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kruetzmann2110/demandas/internal/domain/repositories"
)

// ErrConflict é devolvido quando a revisão enviada está desatualizada (HTTP 409).
var ErrConflict = repositories.ErrConflict

// ValidationError é rejeitado antes de qualquer I/O (HTTP 400).
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func newValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
