package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, staffID *int64, weekday time.Weekday) (*domain.ScheduleConfig, error)
	GetAll(ctx context.Context) ([]*domain.ScheduleConfig, error)
	Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
