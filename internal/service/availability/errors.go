package availability

import "github.com/m04kA/SMC-CarRental/internal/domain"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = domain.NewError(domain.ErrNotFound, "car not found")

	// ErrInvalidRange возвращается, когда дата окончания не позже даты начала
	ErrInvalidRange = domain.NewError(domain.ErrInvalidInput, "end date must be after start date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.ErrInternal, "availability: internal error")
)
