package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-CarRental/internal/domain"
)

// validateRequest валидирует входные данные запроса до любых обращений к хранилищу
func validateRequest(req *Request) error {
	if req.Identity.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CarID <= 0 {
		return fmt.Errorf("%w: carID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidDates)
	}

	// Полуинтервал [start, end) не может быть пустым
	if !req.EndDate.After(req.StartDate) {
		return fmt.Errorf("%w: endDate must be after startDate", ErrInvalidDates)
	}

	if err := validateLocation("pickupLocation", req.PickupLocation); err != nil {
		return err
	}

	return validateLocation("dropoffLocation", req.DropoffLocation)
}

func validateLocation(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}

	if utf8.RuneCountInString(value) > domain.MaxLocationLength {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, domain.MaxLocationLength)
	}

	return nil
}
