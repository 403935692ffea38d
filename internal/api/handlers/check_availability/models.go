package check_availability

import (
	"time"

	"github.com/m04kA/SMC-CarRental/internal/service/cars/models"
)

// FromResult формирует HTTP ответ проверки доступности
func FromResult(carID int64, start, end time.Time, available bool) *models.AvailabilityResponse {
	return &models.AvailabilityResponse{
		CarID:     carID,
		StartDate: start.Format(time.RFC3339),
		EndDate:   end.Format(time.RFC3339),
		Available: available,
	}
}
