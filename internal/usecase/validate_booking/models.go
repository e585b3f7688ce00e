package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Причины отказа в бронировании
// Клиенты различают случаи по тексту - строки стабильны
const (
	// ReasonDoubleBooked окно пересекается с существующей записью
	ReasonDoubleBooked = "This time slot is no longer available"
	// ReasonOutsideHours окно выходит за рабочие часы (или день закрыт)
	ReasonOutsideHours = "Requested time is outside operating hours"
	// ReasonTooSoon окно в прошлом или начинается раньше минимального буфера
	ReasonTooSoon = "Requested time is too soon to book"
)

// Request модель запроса проверки бронирования
type Request struct {
	SalonID    int64            // ID салона
	EmployeeID int64            // ID мастера
	ServiceID  int64            // ID услуги (определяет длительность окна)
	Date       time.Time        // Дата записи
	StartTime  types.TimeString // Время начала (HH:MM)
}

// Response результат проверки бронирования
// При Valid = false заполняется Reason; Suggestions заполняются только
// для конфликта с другой записью - альтернативы того же дня
type Response struct {
	Valid       bool              // Можно ли бронировать окно
	Reason      *string           // Причина отказа (nil при Valid = true)
	Suggestions []domain.TimeSlot // Ближайшие свободные слоты того же дня
}
