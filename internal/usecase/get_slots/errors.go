package get_slots

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("get_slots: salon not found")

	// ErrEmployeeNotFound возвращается, когда мастер не найден или неактивен
	ErrEmployeeNotFound = errors.New("get_slots: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_slots: service not found")

	// ErrInvalidDate возвращается при некорректной дате (в прошлом)
	ErrInvalidDate = errors.New("get_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slots: internal error")
)
