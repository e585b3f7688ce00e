package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса создания записи
type Request struct {
	CustomerID int64            // ID клиента (из заголовка авторизации)
	SalonID    int64            // ID салона
	EmployeeID int64            // ID мастера
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи
	StartTime  types.TimeString // Время начала (HH:MM)
	Notes      *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
