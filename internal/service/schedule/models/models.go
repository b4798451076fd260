package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модели

// CreateConfigRequest запрос на создание конфигурации расписания
type CreateConfigRequest struct {
	StaffID                 *int64 `json:"staffId,omitempty"` // NULL = для всех мастеров
	Weekday                 *int   `json:"weekday,omitempty"` // 0 = воскресенье ... 6 = суббота, NULL = все дни
	OpenTime                string `json:"openTime"`
	CloseTime               string `json:"closeTime"`
	IsOpen                  *bool  `json:"isOpen,omitempty"` // по умолчанию true
	SlotGranularityMinutes  int    `json:"slotGranularityMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"` // 0 = без ограничений
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
}

// UpdateConfigRequest запрос на обновление конфигурации
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	OpenTime                *string `json:"openTime,omitempty"`
	CloseTime               *string `json:"closeTime,omitempty"`
	IsOpen                  *bool   `json:"isOpen,omitempty"`
	SlotGranularityMinutes  *int    `json:"slotGranularityMinutes,omitempty"`
	AdvanceBookingDays      *int    `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int    `json:"minBookingNoticeMinutes,omitempty"`
}

// GetConfigRequest запрос действующей конфигурации мастера на день недели
type GetConfigRequest struct {
	StaffID *int64
	Weekday time.Weekday
}

// Response модели

// ConfigResponse ответ с данными конфигурации
type ConfigResponse struct {
	ID                      int64     `json:"id"` // 0 для значений по умолчанию
	StaffID                 *int64    `json:"staffId,omitempty"`
	Weekday                 *int      `json:"weekday,omitempty"`
	Level                   string    `json:"level"`
	OpenTime                string    `json:"openTime"`
	CloseTime               string    `json:"closeTime"`
	IsOpen                  bool      `json:"isOpen"`
	SlotGranularityMinutes  int       `json:"slotGranularityMinutes"`
	AdvanceBookingDays      int       `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int       `json:"minBookingNoticeMinutes"`
	CreatedAt               time.Time `json:"createdAt,omitempty"`
	UpdatedAt               time.Time `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// ToDomainConfig конвертирует запрос создания в domain модель
// Время должно быть уже провалидировано
func (r *CreateConfigRequest) ToDomainConfig() *domain.ScheduleConfig {
	config := &domain.ScheduleConfig{
		StaffID:                 r.StaffID,
		OpenTime:                types.TimeString(r.OpenTime),
		CloseTime:               types.TimeString(r.CloseTime),
		IsOpen:                  true,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
	if r.Weekday != nil {
		wd := time.Weekday(*r.Weekday)
		config.Weekday = &wd
	}
	if r.IsOpen != nil {
		config.IsOpen = *r.IsOpen
	}
	return config
}

// ApplyToConfig применяет переданные поля к конфигурации
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.ScheduleConfig) {
	if r.OpenTime != nil {
		config.OpenTime = types.TimeString(*r.OpenTime)
	}
	if r.CloseTime != nil {
		config.CloseTime = types.TimeString(*r.CloseTime)
	}
	if r.IsOpen != nil {
		config.IsOpen = *r.IsOpen
	}
	if r.SlotGranularityMinutes != nil {
		config.SlotGranularityMinutes = *r.SlotGranularityMinutes
	}
	if r.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		config.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ID:                      c.ID,
		StaffID:                 c.StaffID,
		Level:                   Level(c),
		OpenTime:                c.OpenTime.String(),
		CloseTime:               c.CloseTime.String(),
		IsOpen:                  c.IsOpen,
		SlotGranularityMinutes:  c.SlotGranularityMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
	if c.Weekday != nil {
		wd := int(*c.Weekday)
		resp.Weekday = &wd
	}
	if c.ID == 0 {
		resp.Level = "default"
	}
	return resp
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	result := make([]ConfigResponse, 0, len(configs))
	for _, c := range configs {
		result = append(result, *FromDomainConfig(c))
	}
	return &ConfigListResponse{Configs: result}
}

// Level строковое представление уровня иерархии (для логов и ответа)
func Level(c *domain.ScheduleConfig) string {
	switch {
	case c.IsStaffOnWeekday():
		return "staff+weekday"
	case c.IsStaffSpecific():
		return "staff"
	case c.IsWeekdaySpecific():
		return "weekday"
	default:
		return "global"
	}
}
