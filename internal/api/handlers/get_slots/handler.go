package get_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_slots"
)

const (
	msgInvalidSalonID    = "некорректный ID салона"
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingServiceID  = "ID услуги обязателен"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSalonNotFound     = "салон не найден"
	msgEmployeeNotFound  = "мастер не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgDateTooFar        = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/employees/{employeeId}/slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем salonId из URL
	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Извлекаем employeeId из URL
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(salonID, employeeID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Employee not found: salon_id=%d, employee_id=%d",
				salonID, employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getSlots.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Service not found: salon_id=%d, service_id=%d",
				salonID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Date too far in future: salon_id=%d, date=%s",
				salonID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/employees/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /salons/{id}/employees/{id}/slots - Failed to get slots: salon_id=%d, employee_id=%d, service_id=%d, error=%v",
				salonID, employeeID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/employees/{id}/slots - Slots retrieved successfully: salon_id=%d, employee_id=%d, service_id=%d, slots_count=%d",
		salonID, employeeID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
