package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrSalonNotFound салон не найден
	ErrSalonNotFound = errors.New("create_appointment: salon not found")
	// ErrEmployeeNotFound мастер не найден или неактивен
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")
	// ErrSalonClosed салон не работает в указанный день
	ErrSalonClosed = errors.New("create_appointment: salon is closed on this day")
	// ErrOutsideWorkingHours окно выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("create_appointment: requested time is outside working hours")
	// ErrTooLateToBook начало окна в прошлом или раньше минимального буфера
	ErrTooLateToBook = errors.New("create_appointment: requested time is too soon to book")
	// ErrSlotNotAvailable окно пересекается с существующей записью
	ErrSlotNotAvailable = errors.New("create_appointment: time slot is not available")
	// ErrConflictOnCommit гонка проиграна на вставке - клиент должен обновить
	// доступность и отправить запрос заново, а не повторять то же окно
	ErrConflictOnCommit = errors.New("create_appointment: slot conflict on commit")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("create_appointment: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("create_appointment: internal error")
)

// ConflictError ошибка пересечения с существующей записью, найденного до
// вставки. Несёт альтернативные слоты того же дня для мгновенного повторного
// предложения клиенту
type ConflictError struct {
	Suggestions []domain.TimeSlot
}

// Error возвращает текст ошибки
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d suggestions available", ErrSlotNotAvailable, len(e.Suggestions))
}

// Unwrap позволяет errors.Is(err, ErrSlotNotAvailable)
func (e *ConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}
