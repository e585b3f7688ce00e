package get_salon_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
//
// Параметр date задает один день; startDate/endDate - период
// (date и период взаимоисключающие, приоритет у date)
func ToServiceRequest(
	salonID int64,
	userID int64,
	employeeIDStr string,
	statusStr string,
	dateStr string,
	startDateStr string,
	endDateStr string,
	includeInactiveStr string,
) (*models.GetSalonAppointmentsRequest, error) {
	req := &models.GetSalonAppointmentsRequest{
		UserID:          userID,
		SalonID:         salonID,
		IncludeInactive: false, // По умолчанию только занимающие слот
	}

	// Парсим employeeId если указан
	if employeeIDStr != "" {
		employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.EmployeeID = &employeeID
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим date если указана (один день)
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else if startDateStr != "" && endDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("endDate is before startDate")
		}
		req.StartDate = &startDate
		req.EndDate = &endDate
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
