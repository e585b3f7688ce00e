package validate_booking

import "errors"

var (
	// ErrSalonNotFound салон не найден
	ErrSalonNotFound = errors.New("validate_booking: salon not found")
	// ErrEmployeeNotFound мастер не найден или неактивен
	ErrEmployeeNotFound = errors.New("validate_booking: employee not found")
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("validate_booking: service not found")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("validate_booking: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("validate_booking: internal error")
)
