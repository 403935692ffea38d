package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarRental/internal/integrations/events"
	"github.com/m04kA/SMC-CarRental/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, переходы статусов и удаление
type Service struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно владельцу бронирования и администратору.
func (s *Service) GetByID(ctx context.Context, identity domain.Identity, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, identity.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !identity.CanAccess(booking) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", identity.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования текущего пользователя
func (s *Service) GetUserBookings(ctx context.Context, identity domain.Identity) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", identity.UserID)

	bookings, err := s.bookingRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), identity.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetAll получает все бронирования. Только для администратора.
func (s *Service) GetAll(ctx context.Context, identity domain.Identity) (*models.BookingListResponse, error) {
	s.logger.Info("GetAll: fetching all bookings by user=%d", identity.UserID)

	if err := s.requireAdmin("GetAll", identity); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAll: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования.
// Владелец может только отменить бронирование в статусе pending или confirmed,
// администратор может выполнить любой переход из таблицы переходов.
// Повторная установка текущего статуса отклоняется как недопустимый переход.
// Переход применяется, только если статус в хранилище не изменился с момента чтения.
func (s *Service) UpdateStatus(
	ctx context.Context,
	identity domain.Identity,
	id int64,
	req *models.UpdateStatusRequest,
) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d (admin=%t)",
		id, req.Status, identity.UserID, identity.IsAdmin)

	target := domain.BookingStatus(req.Status)
	if !target.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeStatusTransition(identity, booking, target); err != nil {
		return nil, err
	}

	previous := booking.Status
	updated, err := s.bookingRepo.UpdateStatus(ctx, id, previous, target)
	if err != nil {
		return nil, s.mapTransitionError("UpdateStatus", id, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s", id, previous, target)

	event := events.NewBookingEvent(events.BookingStatusChanged, updated).WithPreviousStatus(previous)
	s.publish(ctx, "UpdateStatus", event)

	return models.FromDomainBooking(updated), nil
}

// UpdatePaymentStatus меняет статус оплаты. Только для администратора.
// Связи со статусом бронирования нет: отмена не приводит к возврату средств.
func (s *Service) UpdatePaymentStatus(
	ctx context.Context,
	identity domain.Identity,
	id int64,
	req *models.UpdatePaymentStatusRequest,
) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePaymentStatus: updating booking id=%d to payment status=%s by user=%d",
		id, req.PaymentStatus, identity.UserID)

	if err := s.requireAdmin("UpdatePaymentStatus", identity); err != nil {
		return nil, err
	}

	target := domain.PaymentStatus(req.PaymentStatus)
	if !target.IsValid() {
		s.logger.Warn("UpdatePaymentStatus: invalid payment status=%q for booking id=%d", req.PaymentStatus, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, req.PaymentStatus)
	}

	booking, err := s.getBooking(ctx, "UpdatePaymentStatus", id)
	if err != nil {
		return nil, err
	}

	previous := booking.PaymentStatus
	if !domain.CanTransitionPayment(previous, target) {
		s.logger.Warn("UpdatePaymentStatus: transition %s -> %s is not allowed for booking id=%d", previous, target, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidPaymentTransition, previous, target)
	}

	updated, err := s.bookingRepo.UpdatePaymentStatus(ctx, id, previous, target)
	if err != nil {
		return nil, s.mapTransitionError("UpdatePaymentStatus", id, err)
	}

	s.logger.Info("UpdatePaymentStatus: booking id=%d payment moved %s -> %s", id, previous, target)

	event := events.NewBookingEvent(events.BookingPaymentChanged, updated).WithPreviousPaymentStatus(previous)
	s.publish(ctx, "UpdatePaymentStatus", event)

	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование. Доступно владельцу и администратору.
func (s *Service) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", id, identity.UserID)

	booking, err := s.getBooking(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if !identity.CanAccess(booking) {
		s.logger.Warn("Delete: access denied for user=%d to booking id=%d", identity.UserID, id)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found during delete", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	s.publish(ctx, "Delete", events.NewBookingEvent(events.BookingDeleted, booking))

	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// requireAdmin единая проверка прав администратора
func (s *Service) requireAdmin(op string, identity domain.Identity) error {
	if identity.IsAdmin {
		return nil
	}
	s.logger.Warn("%s: user=%d is not an administrator", op, identity.UserID)
	return ErrAdminOnly
}

// authorizeStatusTransition проверяет права и допустимость перехода статуса
func (s *Service) authorizeStatusTransition(identity domain.Identity, booking *domain.Booking, target domain.BookingStatus) error {
	if !identity.CanAccess(booking) {
		s.logger.Warn("UpdateStatus: access denied for user=%d to booking id=%d", identity.UserID, booking.ID)
		return ErrAccessDenied
	}

	allowed := domain.CanOwnerTransitionStatus
	if identity.IsAdmin {
		allowed = domain.CanTransitionStatus
	}

	if !allowed(booking.Status, target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for user=%d (admin=%t), booking id=%d",
			booking.Status, target, identity.UserID, identity.IsAdmin, booking.ID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
	}

	return nil
}

func (s *Service) mapTransitionError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found during update", op, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusMismatch):
		s.logger.Warn("%s: booking id=%d was modified concurrently", op, id)
		return ErrConcurrentModification
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// publish отправляет событие. Изменение уже сохранено, поэтому ошибка только логируется.
func (s *Service) publish(ctx context.Context, op string, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("%s: failed to publish %s for booking id=%d: %v", op, event.Type, event.Booking.ID, err)
	}
}
