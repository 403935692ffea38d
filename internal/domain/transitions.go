package domain

// statusTransitions lists the statuses reachable from each status by an administrator
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// ownerStatusTransitions lists what the owning user may do: cancel only
var ownerStatusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// paymentTransitions lists the payment statuses reachable from each payment status
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid: {PaymentPaid},
	PaymentPaid:   {PaymentRefunded},
}

// CanTransitionStatus reports whether an administrator may move a booking from -> to.
// Re-issuing the current status is not a transition.
func CanTransitionStatus(from, to BookingStatus) bool {
	return contains(statusTransitions[from], to)
}

// CanOwnerTransitionStatus reports whether the owning user may move a booking from -> to
func CanOwnerTransitionStatus(from, to BookingStatus) bool {
	return contains(ownerStatusTransitions[from], to)
}

// CanTransitionPayment reports whether the payment status may move from -> to
func CanTransitionPayment(from, to PaymentStatus) bool {
	return contains(paymentTransitions[from], to)
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
