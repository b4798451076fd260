package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service a bookable salon service
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the service length
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
