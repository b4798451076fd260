package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
)

// IsExclusionViolation нарушение EXCLUDE ограничения (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return hasCode(err, codeExclusionViolation)
}

// IsUniqueViolation нарушение уникальности
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// Constraint имя нарушенного ограничения, пустая строка если ошибка не от PostgreSQL
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
