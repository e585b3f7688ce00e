package validate_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	validateBooking "github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSalonNotFound      = "салон не найден"
	msgEmployeeNotFound   = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/validate
//
// Бизнес-исходы (занято, вне рабочих часов, слишком рано) возвращаются
// со статусом 200 и valid=false - ошибками HTTP являются только проблемы
// с входными данными или внешними системами
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateBooking.ErrSalonNotFound):
			h.logger.Warn("POST /bookings/validate - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, validateBooking.ErrEmployeeNotFound):
			h.logger.Warn("POST /bookings/validate - Employee not found: salon_id=%d, employee_id=%d",
				req.SalonID, req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, validateBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/validate - Service not found: salon_id=%d, service_id=%d",
				req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, validateBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/validate - Failed to validate booking: salon_id=%d, employee_id=%d, error=%v",
				req.SalonID, req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/validate - Validation completed: salon_id=%d, employee_id=%d, valid=%t",
		req.SalonID, req.EmployeeID, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, response)
}
