package create_booking

import "github.com/m04kA/SMC-CarRental/internal/domain"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = domain.NewError(domain.ErrNotFound, "car not found")

	// ErrCarNotAvailable возвращается, когда на выбранные даты уже есть блокирующее бронирование
	ErrCarNotAvailable = domain.NewError(domain.ErrConflict, "car not available for selected dates")

	// ErrCarNotOffered возвращается, когда автомобиль снят с проката администратором
	ErrCarNotOffered = domain.NewError(domain.ErrConflict, "car is not offered for rental")

	// ErrInvalidDates возвращается, когда даты не заданы или дата окончания не позже даты начала
	ErrInvalidDates = domain.NewError(domain.ErrInvalidInput, "invalid booking dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrInvalidInput, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewError(domain.ErrInternal, "create_booking: internal error")
)
