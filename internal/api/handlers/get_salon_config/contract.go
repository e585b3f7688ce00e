package get_salon_config

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/config/models"
)

type ConfigService interface {
	GetWithHierarchy(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error)
	GetAllBySalon(ctx context.Context, salonID int64, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
