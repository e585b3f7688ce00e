package get_day_availability

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("get_day_availability: salon not found")

	// ErrEmployeeNotFound возвращается, когда мастер не найден или неактивен
	ErrEmployeeNotFound = errors.New("get_day_availability: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_day_availability: service not found")

	// ErrInvalidDateRange возвращается при некорректном диапазоне дат
	ErrInvalidDateRange = errors.New("get_day_availability: invalid date range")

	// ErrRangeTooLong возвращается, когда диапазон дат превышает допустимую длину
	ErrRangeTooLong = errors.New("get_day_availability: date range is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_availability: internal error")
)
