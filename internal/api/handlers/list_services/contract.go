package list_services

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type ServiceRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
