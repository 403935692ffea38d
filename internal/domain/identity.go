package domain

// Identity is the already authenticated principal acting on the core
type Identity struct {
	UserID  int64
	IsAdmin bool
}

// Owns returns true if the principal is the owner of the booking
func (i Identity) Owns(b *Booking) bool {
	return b != nil && b.UserID == i.UserID
}

// CanAccess returns true if the principal may read or delete the booking
func (i Identity) CanAccess(b *Booking) bool {
	return i.IsAdmin || i.Owns(b)
}
