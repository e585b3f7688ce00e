package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgEmployeeNotFound   = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSalonClosed        = "салон закрыт в выбранную дату"
	msgOutsideHours       = "выбранное время вне рабочих часов"
	msgTooLateToBook      = "слишком поздно для записи на это время"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgConflictOnCommit   = "выбранное время только что заняли, обновите доступность и повторите запрос"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createAppointment.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			// Конфликт найден до вставки - отдаем альтернативы того же дня
			h.logger.Warn("POST /appointments - Slot not available: customer_id=%d, salon_id=%d, suggestions=%d",
				customerID, req.SalonID, len(conflictErr.Suggestions))
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Code:        http.StatusConflict,
				Message:     msgSlotNotAvailable,
				Suggestions: SuggestionsFromSlots(conflictErr.Suggestions),
			})

		case errors.Is(err, createAppointment.ErrConflictOnCommit):
			// Гонка проиграна на вставке - клиент должен обновить доступность
			h.logger.Warn("POST /appointments - Lost insert race: customer_id=%d, salon_id=%d, employee_id=%d",
				customerID, req.SalonID, req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgConflictOnCommit)

		case errors.Is(err, createAppointment.ErrSalonNotFound):
			h.logger.Warn("POST /appointments - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createAppointment.ErrEmployeeNotFound):
			h.logger.Warn("POST /appointments - Employee not found: salon_id=%d, employee_id=%d",
				req.SalonID, req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: salon_id=%d, service_id=%d",
				req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrSalonClosed):
			h.logger.Warn("POST /appointments - Salon closed: salon_id=%d, date=%s", req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: salon_id=%d, start=%s", req.SalonID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: salon_id=%d, date=%s, start=%s",
				req.SalonID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, salon_id=%d, error=%v",
				customerID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, customer_id=%d, salon_id=%d",
		result.Appointment.ID, customerID, req.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
