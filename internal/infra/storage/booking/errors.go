package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда вставка нарушает ограничение непересечения дат
	ErrOverlap = errors.New("booking.repository: overlapping blocking booking exists")

	// ErrStatusMismatch возвращается, когда текущий статус в БД отличается от ожидаемого
	ErrStatusMismatch = errors.New("booking.repository: stored status does not match expected")

	// ErrCarReference возвращается, когда бронирование ссылается на несуществующий автомобиль
	ErrCarReference = errors.New("booking.repository: referenced car does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
