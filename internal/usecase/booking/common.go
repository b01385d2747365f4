package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/activity"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// Metrics is the counter surface lifecycle operations report to.
type Metrics interface {
	Transition(action string)
	Conflict()
	SlotLookup(outcome string)
	Purged(n int)
}

type NopMetrics struct{}

func (NopMetrics) Transition(string) {}
func (NopMetrics) Conflict()         {}
func (NopMetrics) SlotLookup(string) {}
func (NopMetrics) Purged(int)        {}

// ContactInstruction answers phone-only requests instead of slots or a
// booking.
type ContactInstruction struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func contactFor(phone string) *ContactInstruction {
	return &ContactInstruction{
		Phone:   phone,
		Message: "This service is arranged by phone. Please call the shop.",
	}
}

// ======================================================
// Commit
// ======================================================

// commit runs fn under the provider lock. A transaction the store aborted
// is replayed once; overlap violations and a second abort become a
// conflict. fn must rebuild its state from the repository it is given.
func commit(
	ctx context.Context,
	repo domain.Repository,
	m Metrics,
	providerID string,
	fn func(domain.Repository) error,
) error {

	err := repo.Atomic(ctx, providerID, fn)
	if httperr.IsRetryable(err) {
		err = repo.Atomic(ctx, providerID, fn)
	}

	switch {
	case err == nil:
		return nil
	case httperr.IsExclusionConflict(err), httperr.IsRetryable(err):
		err = httperr.Conflict("time_conflict")
	}

	if httperr.IsKind(err, httperr.KindConflict) {
		m.Conflict()
	}
	return err
}

// assertFree is the authoritative overlap check run inside commit.
func assertFree(
	ctx context.Context,
	tx domain.Repository,
	providerID string,
	date calendar.DateKey,
	start calendar.TimeOfDay,
	duration int,
	excludeID string,
) error {

	taken, err := domain.NewConflictDetector(tx).HasConflict(ctx, providerID, date, start, duration, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return httperr.Conflict("time_conflict")
	}
	return nil
}

// ======================================================
// Ownership
// ======================================================

// Actor is the caller identity handed over by the auth boundary.
type Actor struct {
	ID   string
	Role domain.Role
}

// canSee hides foreign bookings: customers see their own, providers their
// calendar, admins everything.
func (a Actor) canSee(b *domain.Booking) bool {
	switch a.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleProvider:
		return b.ProviderID == a.ID
	case domain.RoleCustomer:
		return b.CustomerID == a.ID
	}
	return false
}

func loadVisible(ctx context.Context, repo domain.Repository, id string, actor Actor) (*domain.Booking, error) {
	b, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canSee(b) {
		return nil, httperr.NotFoundErr("booking_not_found")
	}
	return b, nil
}

// ======================================================
// Activity
// ======================================================

func emit(hook activity.Hook, m Metrics, b *domain.Booking, action string, at time.Time, meta any) {
	m.Transition(action)
	hook.Emit(activity.Record{
		BookingID:    b.ID,
		ProviderID:   b.ProviderID,
		CustomerName: b.CustomerName,
		Action:       action,
		Timestamp:    at,
		Metadata:     meta,
	})
}

func actionFor(status domain.Status) string {
	switch status {
	case domain.StatusConfirmed:
		return activity.ActionConfirmed
	case domain.StatusCompleted:
		return activity.ActionCompleted
	case domain.StatusCancelled:
		return activity.ActionCancelled
	}
	return activity.ActionCreated
}

// ======================================================
// Parsing
// ======================================================

func parseDate(s string) (calendar.DateKey, error) {
	d, err := calendar.ParseDateKey(s)
	if err != nil {
		return calendar.DateKey{}, httperr.Validation("invalid_date")
	}
	return d, nil
}

func parseTime(s string) (calendar.TimeOfDay, error) {
	t, err := calendar.ParseTimeOfDay(s)
	if err != nil || t >= calendar.MinutesPerDay {
		return 0, httperr.Validation("invalid_time")
	}
	return t, nil
}
