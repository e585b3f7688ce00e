package validate_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salon_id must be positive", ErrInvalidInput)
	}

	// Проверка до обращения к хранилищу: отрицательный или нулевой ID
	// мастера не может совпасть ни с одной записью
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employee_id must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start_time: %v", ErrInvalidInput, err)
	}

	return nil
}
