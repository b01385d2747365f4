package activity

import "time"

const (
	ActionCreated     = "booking_created"
	ActionConfirmed   = "booking_confirmed"
	ActionCompleted   = "booking_completed"
	ActionCancelled   = "booking_cancelled"
	ActionRescheduled = "booking_rescheduled"
	ActionPurged      = "bookings_purged"
)

// Record is one lifecycle transition for a provider inbox.
type Record struct {
	BookingID    string
	ProviderID   string
	CustomerName string
	Action       string
	Timestamp    time.Time
	Metadata     any
}

// Hook receives records fire-and-forget. Implementations must not block the
// caller or report failures back to it.
type Hook interface {
	Emit(rec Record)
}

// Nop discards every record.
type Nop struct{}

func (Nop) Emit(Record) {}
