package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Defaults значения расписания из файла конфигурации
// Применяются, когда в БД нет ни одной подходящей записи
type Defaults struct {
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	SlotGranularityMinutes  int
	AdvanceBookingDays      int
	MinBookingNoticeMinutes int
}

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo ConfigRepository
	defaults   Defaults
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, defaults Defaults, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		defaults:   defaults,
		logger:     logger,
	}
}

// Resolve возвращает действующую конфигурацию мастера на день недели
// Приоритет: staff+weekday > staff > weekday > global > значения по умолчанию
func (s *Service) Resolve(ctx context.Context, staffID int64, weekday time.Weekday) (*domain.ScheduleConfig, error) {
	config, err := s.configRepo.GetConfigWithHierarchy(ctx, &staffID, weekday)
	if errors.Is(err, configRepo.ErrConfigNotFound) {
		return s.defaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - repository error: %w", ErrInternal, err)
	}
	return config, nil
}

func (s *Service) defaultConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		OpenTime:                s.defaults.OpenTime,
		CloseTime:               s.defaults.CloseTime,
		IsOpen:                  true,
		SlotGranularityMinutes:  s.defaults.SlotGranularityMinutes,
		AdvanceBookingDays:      s.defaults.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.defaults.MinBookingNoticeMinutes,
	}
}

// Create создает новую конфигурацию расписания
func (s *Service) Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Create: creating schedule config for staff=%v, weekday=%v", req.StaffID, req.Weekday)

	if req.Weekday != nil && (*req.Weekday < 0 || *req.Weekday > 6) {
		return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	config := req.ToDomainConfig()
	if err := validateConfig(config); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.configRepo.Create(ctx, config)
	if err != nil {
		if errors.Is(err, configRepo.ErrDuplicateConfig) {
			s.logger.Warn("Create: config already exists for staff=%v, weekday=%v", req.StaffID, req.Weekday)
			return nil, ErrConfigAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created config id=%d (level: %s)", created.ID, models.Level(created))
	return models.FromDomainConfig(created), nil
}

// GetWithHierarchy возвращает действующую конфигурацию с учетом иерархии
// Без staffID ищется только среди общих конфигураций
func (s *Service) GetWithHierarchy(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetWithHierarchy: fetching config for staff=%v, weekday=%s", req.StaffID, req.Weekday)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.StaffID, req.Weekday)
	if errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Info("GetWithHierarchy: no config stored, returning defaults")
		return models.FromDomainConfig(s.defaultConfig()), nil
	}
	if err != nil {
		s.logger.Error("GetWithHierarchy: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWithHierarchy - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetWithHierarchy: successfully fetched config id=%d (level: %s)", config.ID, models.Level(config))
	return models.FromDomainConfig(config), nil
}

// GetAll возвращает все сохраненные конфигурации
func (s *Service) GetAll(ctx context.Context) (*models.ConfigListResponse, error) {
	configs, err := s.configRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetAll: successfully fetched %d configs", len(configs))
	return models.FromDomainConfigList(configs), nil
}

// Update обновляет существующую конфигурацию
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config id=%d", id)

	// 1. Получаем существующую конфигурацию
	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	// 2. Применяем и валидируем обновления
	req.ApplyToConfig(config)
	if err := validateConfig(config); err != nil {
		s.logger.Warn("Update: validation failed for config id=%d: %v", id, err)
		return nil, err
	}

	// 3. Сохраняем
	updated, err := s.configRepo.Update(ctx, id, config)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config id=%d not found during update", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config id=%d", id)
	return models.FromDomainConfig(updated), nil
}

// Delete удаляет конфигурацию по ID
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting config id=%d", id)

	if err := s.configRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found", id)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config id=%d", id)
	return nil
}

// validateConfig валидирует параметры конфигурации
func validateConfig(c *domain.ScheduleConfig) error {
	if err := c.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}
	if err := c.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}
	if !c.OpenTime.IsBefore(c.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	if c.SlotGranularityMinutes < domain.MinSlotGranularityMinutes || c.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if c.AdvanceBookingDays < domain.MinAdvanceBookingDays || c.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if c.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || c.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	return nil
}
