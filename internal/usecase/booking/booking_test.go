package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/activity"
	"github.com/BruksfildServices01/barber-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// Fixture
// ======================================================

type captureHook struct {
	mu   sync.Mutex
	recs []activity.Record
}

func (h *captureHook) Emit(r activity.Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recs = append(h.recs, r)
}

func (h *captureHook) actions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.recs))
	for i, r := range h.recs {
		out[i] = r.Action
	}
	return out
}

type fixture struct {
	bookings *repository.BookingGormRepository
	avail    *repository.AvailabilityGormRepository
	clock    *timezone.FixedClock
	hook     *captureHook
	loc      *time.Location

	create     *CreateBooking
	status     *UpdateStatus
	reschedule *Reschedule
	cancel     *CancelBooking
	slots      *GetSlots
}

var (
	customer = Actor{ID: "c1", Role: domain.RoleCustomer}
	provider = Actor{ID: "p1", Role: domain.RoleProvider}
	admin    = Actor{ID: "root", Role: domain.RoleAdmin}
)

const day = "2026-10-20" // Tuesday

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	loc := timezone.Location(timezone.DefaultTimezone)

	f := &fixture{
		bookings: repository.NewBookingGormRepository(db),
		avail:    repository.NewAvailabilityGormRepository(db),
		clock:    timezone.NewFixedClock(time.Date(2026, 10, 16, 9, 0, 0, 0, loc)),
		hook:     &captureHook{},
		loc:      loc,
	}

	a := availability.Default("p1")
	_, err := f.avail.Create(context.Background(), &a)
	require.NoError(t, err)

	cat := catalog.Default()
	m := NopMetrics{}
	f.create = NewCreateBooking(f.bookings, f.avail, cat, f.clock, f.hook, m, "+55 11 5555-0000")
	f.status = NewUpdateStatus(f.bookings, f.clock, f.hook, m)
	f.reschedule = NewReschedule(f.bookings, f.avail, f.clock, f.hook, m)
	f.cancel = NewCancelBooking(f.bookings, f.clock, f.hook, m)
	f.slots = NewGetSlots(f.bookings, f.avail, cat, f.clock, m, "+55 11 5555-0000")
	return f
}

func (f *fixture) book(t *testing.T, actor Actor, date, at string, services ...string) *domain.Booking {
	t.Helper()
	res, err := f.create.Execute(context.Background(), CreateBookingInput{
		Actor:        actor,
		ProviderID:   "p1",
		CustomerID:   "c1",
		CustomerName: "Ana",
		Date:         date,
		Time:         at,
		Services:     services,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Booking)
	return res.Booking
}

// ======================================================
// Create
// ======================================================

func TestCreate_CustomerStartsPending(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, customer, day, "10:00", "haircut", "beard")

	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, "11:15", b.EndTime.String())
	assert.Equal(t, 75, b.TotalDuration)
	assert.Equal(t, []string{activity.ActionCreated}, f.hook.actions())

	stored, err := f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"haircut", "beard"}, stored.Services)
}

func TestCreate_InitialStatusByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.create.Execute(ctx, CreateBookingInput{
		Actor: provider, CustomerID: "c9", Date: day, Time: "16:00",
		Services: []string{"beard"}, Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, res.Booking.Status)
	assert.Equal(t, "p1", res.Booking.ProviderID)

	_, err = f.create.Execute(ctx, CreateBookingInput{
		Actor: customer, ProviderID: "p1", Date: day, Time: "17:00",
		Services: []string{"beard"}, Status: domain.StatusConfirmed,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_initial_status"))
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateBookingInput
		code string
	}{
		{"no services", CreateBookingInput{Date: day, Time: "10:00"}, "empty_services"},
		{"unknown service", CreateBookingInput{Date: day, Time: "10:00", Services: []string{"perm"}}, "unknown_service"},
		{"bad date", CreateBookingInput{Date: "20-10-2026", Time: "10:00", Services: []string{"beard"}}, "invalid_date"},
		{"bad time", CreateBookingInput{Date: day, Time: "24:00", Services: []string{"beard"}}, "invalid_time"},
		{"past working hours", CreateBookingInput{Date: day, Time: "20:30", Services: []string{"haircut_beard"}}, "outside_working_hours"},
		{"lunch", CreateBookingInput{Date: day, Time: "13:30", Services: []string{"haircut_beard"}}, "outside_working_hours"},
		{"bad phone", CreateBookingInput{Date: day, Time: "10:00", Services: []string{"beard"}, CustomerPhone: "call me"}, "invalid_phone"},
		{"lead time", CreateBookingInput{Date: "2026-10-16", Time: "09:15", Services: []string{"beard"}}, "too_soon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Actor = customer
			tc.in.ProviderID = "p1"
			_, err := f.create.Execute(ctx, tc.in)
			assert.True(t, httperr.IsKind(err, httperr.KindValidation), "%v", err)
			assert.True(t, httperr.IsBusiness(err, tc.code), "%v", err)
		})
	}
	assert.Empty(t, f.hook.actions())
}

func TestCreate_UnknownProviderIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.create.Execute(context.Background(), CreateBookingInput{
		Actor: customer, ProviderID: "ghost", Date: day, Time: "10:00", Services: []string{"beard"},
	})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestCreate_OverlapIsConflictUntilCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.book(t, customer, day, "11:00", "haircut")

	_, err := f.create.Execute(ctx, CreateBookingInput{
		Actor: customer, ProviderID: "p1", Date: day, Time: "11:30", Services: []string{"beard"},
	})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	_, err = f.cancel.Execute(ctx, CancelBookingInput{Actor: customer, BookingID: first.ID})
	require.NoError(t, err)

	f.book(t, customer, day, "11:30", "beard")
}

func TestCreate_PhoneOnlyAnswersWithContact(t *testing.T) {
	f := newFixture(t)

	res, err := f.create.Execute(context.Background(), CreateBookingInput{
		Actor: customer, ProviderID: "p1", Services: []string{catalog.PhoneConsultation},
	})
	require.NoError(t, err)
	assert.Nil(t, res.Booking)
	require.NotNil(t, res.Contact)
	assert.Equal(t, "+55 11 5555-0000", res.Contact.Phone)

	all, err := f.bookings.ListForCustomer(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.hook.actions())
}

func TestCreate_ConcurrentSameSlotExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const racers = 2
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, racers)
	)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.create.Execute(ctx, CreateBookingInput{
				Actor: customer, ProviderID: "p1", Date: day, Time: "15:00", Services: []string{"haircut_beard"},
			})
		}(i)
	}
	close(start)
	wg.Wait()

	ok, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsKind(err, httperr.KindConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)

	active, err := f.bookings.ListActiveForDay(ctx, "p1", calendar.MustDateKey(day))
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

// ======================================================
// Reschedule
// ======================================================

func TestReschedule_RoundTripHasNoSelfConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, provider, day, "10:00", "haircut")
	_, err := f.status.Execute(ctx, UpdateStatusInput{Actor: provider, BookingID: b.ID, Status: "confirmed"})
	require.NoError(t, err)

	moved, err := f.reschedule.Execute(ctx, RescheduleInput{Actor: customer, BookingID: b.ID, Date: "2026-10-21", Time: "16:00"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, moved.Status)
	assert.True(t, moved.UserModified)
	assert.Equal(t, "16:45", moved.EndTime.String())

	detector := domain.NewConflictDetector(f.bookings)
	taken, err := detector.HasConflict(ctx, "p1", moved.Date, moved.StartTime, moved.TotalDuration, moved.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = detector.HasConflict(ctx, "p1", moved.Date, moved.StartTime, moved.TotalDuration, "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = detector.HasConflict(ctx, "p1", calendar.MustDateKey(day), calendar.MustTimeOfDay("10:00"), 45, "")
	require.NoError(t, err)
	assert.False(t, taken)

	assert.Equal(t, activity.ActionRescheduled, f.hook.actions()[2])
}

func TestReschedule_InsideWindowIsClosed(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, customer, day, "15:00", "haircut")
	f.clock.Set(time.Date(2026, 10, 20, 14, 15, 0, 0, f.loc))

	_, err := f.reschedule.Execute(context.Background(), RescheduleInput{Actor: customer, BookingID: b.ID, Date: "2026-10-21", Time: "10:00"})
	assert.True(t, httperr.IsKind(err, httperr.KindWindowClosed))
}

func TestReschedule_OntoAnotherBookingConflicts(t *testing.T) {
	f := newFixture(t)

	f.book(t, customer, day, "10:00", "haircut")
	b := f.book(t, customer, day, "12:00", "haircut")

	_, err := f.reschedule.Execute(context.Background(), RescheduleInput{Actor: customer, BookingID: b.ID, Date: day, Time: "10:30"})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	// overlapping only itself is fine
	moved, err := f.reschedule.Execute(context.Background(), RescheduleInput{Actor: customer, BookingID: b.ID, Date: day, Time: "12:30"})
	require.NoError(t, err)
	assert.Equal(t, "12:30", moved.StartTime.String())
}

func TestReschedule_ForeignBookingIsNotFound(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, customer, day, "10:00", "haircut")

	stranger := Actor{ID: "c2", Role: domain.RoleCustomer}
	_, err := f.reschedule.Execute(context.Background(), RescheduleInput{Actor: stranger, BookingID: b.ID, Date: day, Time: "16:00"})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

// ======================================================
// Cancel / status
// ======================================================

func TestCancel_SecondCancelIsInvalidAndSilent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, customer, day, "10:00", "haircut")

	got, err := f.cancel.Execute(ctx, CancelBookingInput{Actor: customer, BookingID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)

	_, err = f.cancel.Execute(ctx, CancelBookingInput{Actor: customer, BookingID: b.ID})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))

	assert.Equal(t, []string{activity.ActionCreated, activity.ActionCancelled}, f.hook.actions())
}

func TestCancel_InsideWindowIsClosed(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, customer, day, "15:00", "haircut")

	f.clock.Set(time.Date(2026, 10, 20, 14, 0, 0, 0, f.loc))
	_, err := f.cancel.Execute(context.Background(), CancelBookingInput{Actor: customer, BookingID: b.ID})
	assert.True(t, httperr.IsKind(err, httperr.KindWindowClosed))
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.book(t, customer, day, "10:00", "haircut")

	notes := "regular"
	got, err := f.status.Execute(ctx, UpdateStatusInput{Actor: provider, BookingID: b.ID, Status: "confirmed", Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, "regular", got.Notes)

	got, err = f.status.Execute(ctx, UpdateStatusInput{Actor: admin, BookingID: b.ID, Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)

	_, err = f.status.Execute(ctx, UpdateStatusInput{Actor: provider, BookingID: b.ID, Status: "cancelled"})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))

	_, err = f.status.Execute(ctx, UpdateStatusInput{Actor: provider, BookingID: b.ID, Status: "archived"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	assert.Equal(t,
		[]string{activity.ActionCreated, activity.ActionConfirmed, activity.ActionCompleted},
		f.hook.actions(),
	)
}

func TestUpdateStatus_ProviderCancelsInsideWindow(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, customer, day, "15:00", "haircut")
	f.clock.Set(time.Date(2026, 10, 20, 14, 30, 0, 0, f.loc))

	got, err := f.status.Execute(context.Background(), UpdateStatusInput{Actor: provider, BookingID: b.ID, Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}

func TestUpdateStatus_Ownership(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, customer, day, "10:00", "haircut")

	other := Actor{ID: "p2", Role: domain.RoleProvider}
	_, err := f.status.Execute(context.Background(), UpdateStatusInput{Actor: other, BookingID: b.ID, Status: "confirmed"})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	_, err = f.status.Execute(context.Background(), UpdateStatusInput{Actor: customer, BookingID: b.ID, Status: "confirmed"})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
}

// ======================================================
// Slots
// ======================================================

func TestGetSlots_RecoversQuarterHourAfterBooking(t *testing.T) {
	f := newFixture(t)
	f.book(t, customer, day, "11:00", "haircut")

	res, err := f.slots.Execute(context.Background(), GetSlotsInput{ProviderID: "p1", Date: day, Services: []string{"haircut_beard"}})
	require.NoError(t, err)
	assert.Equal(t, 60, res.Duration)

	assert.Contains(t, res.Slots, calendar.MustTimeOfDay("10:00"))
	assert.Contains(t, res.Slots, calendar.MustTimeOfDay("11:45"))
	assert.NotContains(t, res.Slots, calendar.MustTimeOfDay("11:00"))
	assert.NotContains(t, res.Slots, calendar.MustTimeOfDay("14:00"))
	assert.Nil(t, res.Contact)
}

func TestGetSlots_PhoneOnlyAndUnknownProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.slots.Execute(ctx, GetSlotsInput{ProviderID: "p1", Date: day, Services: []string{catalog.PhoneConsultation}})
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
	require.NotNil(t, res.Contact)

	res, err = f.slots.Execute(ctx, GetSlotsInput{ProviderID: "ghost", Date: day, Services: []string{"beard"}})
	require.NoError(t, err)
	assert.NotNil(t, res.Slots)
	assert.Empty(t, res.Slots)
}

// ======================================================
// Commit retry
// ======================================================

type flakyRepo struct {
	domain.Repository
	errs  []error
	calls int
}

func (r *flakyRepo) Atomic(_ context.Context, _ string, fn func(domain.Repository) error) error {
	r.calls++
	if len(r.errs) == 0 {
		return fn(r)
	}
	err := r.errs[0]
	r.errs = r.errs[1:]
	return err
}

func TestCommit_RetriesOnceThenConflicts(t *testing.T) {
	ctx := context.Background()
	serialization := &pgconn.PgError{Code: "40001"}
	noop := func(domain.Repository) error { return nil }

	repo := &flakyRepo{errs: []error{serialization}}
	require.NoError(t, commit(ctx, repo, NopMetrics{}, "p1", noop))
	assert.Equal(t, 2, repo.calls)

	repo = &flakyRepo{errs: []error{serialization, serialization}}
	err := commit(ctx, repo, NopMetrics{}, "p1", noop)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Equal(t, 2, repo.calls)

	repo = &flakyRepo{errs: []error{&pgconn.PgError{Code: "23P01"}}}
	err = commit(ctx, repo, NopMetrics{}, "p1", noop)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Equal(t, 1, repo.calls)

	boom := errors.New("boom")
	repo = &flakyRepo{errs: []error{boom}}
	assert.ErrorIs(t, commit(ctx, repo, NopMetrics{}, "p1", noop), boom)
}
