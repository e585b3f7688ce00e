package get_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на получение слотов мастера на день
type Request struct {
	SalonID    int64     // ID салона
	EmployeeID int64     // ID мастера
	ServiceID  int64     // ID услуги (определяет длительность слота)
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
// Список содержит и доступные, и недоступные слоты с причиной недоступности
type Response struct {
	Date       time.Time         // Дата, на которую запрашивались слоты
	SalonID    int64             // ID салона
	EmployeeID int64             // ID мастера
	ServiceID  int64             // ID услуги
	Slots      []domain.TimeSlot // Слоты в хронологическом порядке
}
