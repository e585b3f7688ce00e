package get_salon_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/config"
	"github.com/m04kA/SMC-SalonService/internal/service/config/models"
)

const (
	msgInvalidSalonID    = "некорректный ID салона"
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgConfigNotFound    = "конфигурация не найдена"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/config
// Query params: employeeId (optional, с ним возвращается конфигурация
// мастера с учётом иерархии)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем salonId из URL
	vars := mux.Vars(r)
	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/config - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Извлекаем employeeId из query параметров (опционально)
	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/config - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	// Получаем конфигурацию с учетом иерархии
	result, err := h.service.GetWithHierarchy(r.Context(), &models.GetConfigRequest{
		SalonID:    salonID,
		EmployeeID: employeeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			h.logger.Warn("GET /salons/{id}/config - Config not found: salon_id=%d, employee_id=%v",
				salonID, employeeID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("GET /salons/{id}/config - Failed to get config: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/config - Config retrieved successfully: salon_id=%d, config_id=%d",
		salonID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
