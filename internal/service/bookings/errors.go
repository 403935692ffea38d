package bookings

import "github.com/m04kA/SMC-CarRental/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewError(domain.ErrNotFound, "booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = domain.NewError(domain.ErrForbidden, "access denied")

	// ErrAdminOnly возвращается, когда операция доступна только администратору
	ErrAdminOnly = domain.NewError(domain.ErrForbidden, "administrator privileges required")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса,
	// в том числе из терминального статуса и в текущий статус
	ErrInvalidTransition = domain.NewError(domain.ErrForbidden, "status transition is not allowed")

	// ErrInvalidPaymentTransition возвращается при недопустимом переходе статуса оплаты
	ErrInvalidPaymentTransition = domain.NewError(domain.ErrForbidden, "payment status transition is not allowed")

	// ErrConcurrentModification возвращается, когда статус изменился между чтением и записью
	ErrConcurrentModification = domain.NewError(domain.ErrConflict, "booking was modified concurrently")

	// ErrInvalidStatus возвращается при попытке установить неизвестный статус
	ErrInvalidStatus = domain.NewError(domain.ErrInvalidInput, "invalid booking status")

	// ErrInvalidPaymentStatus возвращается при попытке установить неизвестный статус оплаты
	ErrInvalidPaymentStatus = domain.NewError(domain.ErrInvalidInput, "invalid payment status")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.ErrInternal, "bookings: internal error")
)
