package manage_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

const (
	msgInvalidConfigID    = "некорректный ID конфигурации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "конфигурация не найдена"
	msgAlreadyExists      = "конфигурация для этого мастера и дня недели уже существует"
	msgInvalidData        = "некорректные данные конфигурации"
)

// Handler управление конфигурациями расписания (только для администраторов)
type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/schedule-configs
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule-configs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /schedule-configs", err)
		return
	}

	h.logger.Info("POST /schedule-configs - Config created successfully: config_id=%d, level=%s", result.ID, result.Level)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PUT /api/v1/schedule-configs/{configId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	configID, err := handlers.PathInt64(r, "configId")
	if err != nil {
		h.logger.Warn("PUT /schedule-configs/{id} - Invalid config ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule-configs/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), configID, &req)
	if err != nil {
		h.respondError(w, "PUT /schedule-configs/{id}", err)
		return
	}

	h.logger.Info("PUT /schedule-configs/{id} - Config updated successfully: config_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/schedule-configs/{configId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	configID, err := handlers.PathInt64(r, "configId")
	if err != nil {
		h.logger.Warn("DELETE /schedule-configs/{id} - Invalid config ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	if err := h.service.Delete(r.Context(), configID); err != nil {
		h.respondError(w, "DELETE /schedule-configs/{id}", err)
		return
	}

	h.logger.Info("DELETE /schedule-configs/{id} - Config deleted successfully: config_id=%d", configID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, schedule.ErrConfigNotFound):
		h.logger.Warn("%s - Config not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, schedule.ErrConfigAlreadyExists):
		h.logger.Warn("%s - Config already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
