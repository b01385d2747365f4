package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetSlotsInput struct {
	ProviderID string
	Date       string
	Services   []string
}

type SlotsResult struct {
	ProviderID string               `json:"provider_id"`
	Date       calendar.DateKey     `json:"date"`
	Duration   int                  `json:"duration"`
	Slots      []calendar.TimeOfDay `json:"slots"`
	Contact    *ContactInstruction  `json:"contact,omitempty"`
}

// GetSlots is the optimistic, UI-facing side of conflict detection. It may
// read a cached availability snapshot.
type GetSlots struct {
	repo         domain.Repository
	availability availability.Reader
	catalog      *catalog.Catalog
	clock        timezone.Clock
	metrics      Metrics
	contactPhone string
}

func NewGetSlots(
	repo domain.Repository,
	avail availability.Reader,
	services *catalog.Catalog,
	clock timezone.Clock,
	metrics Metrics,
	contactPhone string,
) *GetSlots {
	return &GetSlots{
		repo:         repo,
		availability: avail,
		catalog:      services,
		clock:        clock,
		metrics:      metrics,
		contactPhone: contactPhone,
	}
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	in GetSlotsInput,
) (*SlotsResult, error) {

	sel, err := uc.catalog.Resolve(in.Services)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	res := &SlotsResult{
		ProviderID: in.ProviderID,
		Date:       date,
		Duration:   sel.TotalDuration(),
		Slots:      []calendar.TimeOfDay{},
	}

	if sel.PhoneOnly() {
		uc.metrics.SlotLookup("contact")
		res.Contact = contactFor(uc.contactPhone)
		return res, nil
	}

	avail, err := uc.availability.Get(ctx, in.ProviderID)
	if httperr.IsKind(err, httperr.KindNotFound) {
		uc.metrics.SlotLookup("unknown_provider")
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.ListActiveForDay(ctx, in.ProviderID, date)
	if err != nil {
		return nil, err
	}

	res.Slots = slot.Generate(slot.Request{
		Availability: avail,
		Date:         date,
		Duration:     res.Duration,
		SingleShort:  sel.SingleShort(),
		Booked:       booked,
		Now:          uc.clock.Now(),
	})

	if len(res.Slots) == 0 {
		uc.metrics.SlotLookup("empty")
	} else {
		uc.metrics.SlotLookup("slots")
	}
	return res, nil
}
