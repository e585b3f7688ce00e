package create_salon_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/config"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgEmployeeNotFound   = "мастер не найден"
	msgForbidden          = "доступ запрещен"
	msgAlreadyExists      = "конфигурация уже существует"
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

// Handle POST /api/v1/salons/{salonId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем salonId из URL
	vars := mux.Vars(r)
	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/config - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем конфигурацию (сервис сам проверит права менеджера)
	result, err := h.service.Create(r.Context(), req.ToServiceRequest(salonID, userID))
	if err != nil {
		switch {
		case errors.Is(err, config.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/config - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, config.ErrEmployeeNotFound):
			h.logger.Warn("POST /salons/{id}/config - Employee not found: salon_id=%d, employee_id=%v",
				salonID, req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("POST /salons/{id}/config - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrConfigAlreadyExists):
			h.logger.Warn("POST /salons/{id}/config - Config already exists: salon_id=%d, employee_id=%v",
				salonID, req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /salons/{id}/config - Failed to create config: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/config - Config created successfully: salon_id=%d, config_id=%d",
		salonID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
