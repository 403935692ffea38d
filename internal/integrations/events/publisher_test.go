package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRental/internal/domain"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error { return nil }

func testBooking() *domain.Booking {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            5,
		UserID:        7,
		CarID:         3,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 4),
		TotalPrice:    200,
		Status:        domain.StatusCancelled,
		PaymentStatus: domain.PaymentUnpaid,
	}
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "car-rental.bookings"}

	event := NewBookingEvent(BookingStatusChanged, testBooking()).WithPreviousStatus(domain.StatusPending)
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, ch.sent, 1)
	sent := ch.sent[0]
	assert.Equal(t, "car-rental.bookings", sent.exchange)
	assert.Equal(t, "booking.status_changed", sent.key)
	assert.Equal(t, "application/json", sent.msg.ContentType)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(sent.msg.Body, &decoded))
	assert.Equal(t, "pending", decoded["previousStatus"])
	assert.Equal(t, "cancelled", decoded["booking"].(map[string]interface{})["status"])
	assert.NotContains(t, decoded, "previousPaymentStatus")
}

func TestPublisher_PublishError(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}

	err := p.Publish(context.Background(), NewBookingEvent(BookingCreated, testBooking()))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
}
