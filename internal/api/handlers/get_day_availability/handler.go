package get_day_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getDayAvailability "github.com/m04kA/SMC-SalonService/internal/usecase/get_day_availability"
)

const (
	msgInvalidSalonID    = "некорректный ID салона"
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingServiceID  = "ID услуги обязателен"
	msgMissingDates      = "параметры startDate и endDate обязательны"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange  = "некорректный диапазон дат"
	msgRangeTooLong      = "слишком длинный диапазон дат"
	msgSalonNotFound     = "салон не найден"
	msgEmployeeNotFound  = "мастер не найден"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase GetDayAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetDayAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/availability
// Query params: serviceId (required), startDate, endDate (required, YYYY-MM-DD),
// employeeId (optional, без него - режим "любой мастер")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем salonId из URL
	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/availability - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /salons/{id}/availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем employeeId из query параметров (опционально)
	var employeeID *int64
	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/availability - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	// Извлекаем период из query параметров
	startDateStr := r.URL.Query().Get("startDate")
	endDateStr := r.URL.Query().Get("endDate")
	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /salons/{id}/availability - Missing date range")
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(salonID, employeeID, serviceID, startDateStr, endDateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDayAvailability.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/availability - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getDayAvailability.ErrEmployeeNotFound):
			h.logger.Warn("GET /salons/{id}/availability - Employee not found: salon_id=%d, employee_id=%v",
				salonID, employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getDayAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/availability - Service not found: salon_id=%d, service_id=%d",
				salonID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getDayAvailability.ErrInvalidDateRange):
			h.logger.Warn("GET /salons/{id}/availability - Invalid date range: %s..%s", startDateStr, endDateStr)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getDayAvailability.ErrRangeTooLong):
			h.logger.Warn("GET /salons/{id}/availability - Range too long: %s..%s", startDateStr, endDateStr)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getDayAvailability.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /salons/{id}/availability - Failed to get availability: salon_id=%d, service_id=%d, error=%v",
				salonID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/availability - Availability retrieved successfully: salon_id=%d, service_id=%d, days_count=%d",
		salonID, serviceID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
