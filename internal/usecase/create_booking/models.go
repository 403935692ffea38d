package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarRental/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Identity domain.Identity // Аутентифицированный пользователь
	CarID    int64

	StartDate time.Time
	EndDate   time.Time

	PickupLocation  string
	DropoffLocation string

	AdditionalServices domain.AdditionalServices
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Days    int // Количество оплачиваемых дней
}
