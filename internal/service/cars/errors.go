package cars

import "github.com/m04kA/SMC-CarRental/internal/domain"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = domain.NewError(domain.ErrNotFound, "car not found")

	// ErrAdminOnly возвращается, когда операция доступна только администратору
	ErrAdminOnly = domain.NewError(domain.ErrForbidden, "administrator privileges required")

	// ErrCarInUse возвращается при удалении автомобиля, на который ссылаются бронирования
	ErrCarInUse = domain.NewError(domain.ErrConflict, "car is referenced by bookings")

	// ErrIdentityLocked возвращается при изменении идентифицирующих полей автомобиля с бронированиями
	ErrIdentityLocked = domain.NewError(domain.ErrConflict, "identifying fields of a booked car cannot change")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.ErrInternal, "cars: internal error")
)
