package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound — сущность не найдена при update/delete.
// Транспортный слой транслирует её в пользовательский ответ (404).
var ErrNotFound = errors.New("not found")

// NotFoundf — обёртка ErrNotFound с указанием сущности и id.
func NotFoundf(entity string, id int64) error {
	return fmt.Errorf("%w: %s id=%d", ErrNotFound, entity, id)
}
