package get_schedule_config

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service  ScheduleService
	location *time.Location
	logger   Logger
}

func NewHandler(service ScheduleService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/schedule
// Query params: staffId (опционально), weekday (0-6) или date (YYYY-MM-DD)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(query.Get("staffId"), query.Get("weekday"), query.Get("date"), h.location)
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис вернет значения по умолчанию, если подходящей конфигурации нет
	result, err := h.service.GetWithHierarchy(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /schedule - Failed to get config: staff_id=%v, weekday=%s, error=%v",
			serviceReq.StaffID, serviceReq.Weekday, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule - Config retrieved successfully: config_id=%d, level=%s", result.ID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/schedule-configs
// Только для администраторов
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule-configs - Failed to list configs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule-configs - Configs retrieved successfully: count=%d", len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
