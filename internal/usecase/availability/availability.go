package availability

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// Invalidator drops cached snapshots after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, providerID string) error
}

type NopInvalidator struct{}

func (NopInvalidator) Invalidate(context.Context, string) error { return nil }

func invalidate(ctx context.Context, inv Invalidator, log *zap.Logger, providerID string) {
	if err := inv.Invalidate(ctx, providerID); err != nil {
		log.Warn("availability cache invalidation failed",
			zap.String("provider_id", providerID),
			zap.Error(err),
		)
	}
}

// ======================================================
// Get
// ======================================================

type GetAvailability struct {
	reader domain.Reader
}

func NewGetAvailability(reader domain.Reader) *GetAvailability {
	return &GetAvailability{reader: reader}
}

func (uc *GetAvailability) Execute(ctx context.Context, providerID string) (*domain.Availability, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, httperr.Validation("missing_provider_id")
	}
	return uc.reader.Get(ctx, providerID)
}

// ======================================================
// Update
// ======================================================

type UpdateAvailabilityInput struct {
	ProviderID string
	// ExpectedVersion comes from If-Match; negative skips the check.
	ExpectedVersion int64

	WorkingHours domain.WorkingHours
	LunchBreak   *calendar.Interval
	OffDays      []time.Weekday
	OffHours     []domain.OffHours
	// nil keeps the stored flag.
	IsAvailable *bool
}

// UpdateAvailability replaces the provider calendar. Existing bookings are
// left alone even when they no longer fit.
type UpdateAvailability struct {
	repo  domain.Repository
	cache Invalidator
	log   *zap.Logger
}

func NewUpdateAvailability(repo domain.Repository, cache Invalidator, log *zap.Logger) *UpdateAvailability {
	return &UpdateAvailability{repo: repo, cache: cache, log: log}
}

func (uc *UpdateAvailability) Execute(
	ctx context.Context,
	in UpdateAvailabilityInput,
) (*domain.Availability, error) {

	current, err := uc.repo.Get(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	next := domain.Availability{
		ProviderID:   current.ProviderID,
		WorkingHours: in.WorkingHours,
		LunchBreak:   in.LunchBreak,
		OffDays:      in.OffDays,
		OffHours:     in.OffHours,
		IsAvailable:  current.IsAvailable,
	}
	if in.IsAvailable != nil {
		next.IsAvailable = *in.IsAvailable
	}
	if next.OffDays == nil {
		next.OffDays = []time.Weekday{}
	}
	if next.OffHours == nil {
		next.OffHours = []domain.OffHours{}
	}

	if err := next.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, &next, in.ExpectedVersion); err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, uc.log, next.ProviderID)
	return &next, nil
}

// ======================================================
// Provision / Deactivate
// ======================================================

type ProvisionAvailability struct {
	repo domain.Repository
}

func NewProvisionAvailability(repo domain.Repository) *ProvisionAvailability {
	return &ProvisionAvailability{repo: repo}
}

// Execute creates the default calendar for a provider without one. Calling
// it again returns the stored record and created=false.
func (uc *ProvisionAvailability) Execute(
	ctx context.Context,
	providerID string,
) (*domain.Availability, bool, error) {

	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, false, httperr.Validation("missing_provider_id")
	}

	a := domain.Default(providerID)
	created, err := uc.repo.Create(ctx, &a)
	if err != nil {
		return nil, false, err
	}
	if created {
		return &a, true, nil
	}

	stored, err := uc.repo.Get(ctx, providerID)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

// DeactivateProvider closes a provider calendar. The record is kept.
type DeactivateProvider struct {
	repo  domain.Repository
	cache Invalidator
	log   *zap.Logger
}

func NewDeactivateProvider(repo domain.Repository, cache Invalidator, log *zap.Logger) *DeactivateProvider {
	return &DeactivateProvider{repo: repo, cache: cache, log: log}
}

func (uc *DeactivateProvider) Execute(ctx context.Context, providerID string) (*domain.Availability, error) {
	a, err := uc.repo.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !a.IsAvailable {
		return a, nil
	}

	a.IsAvailable = false
	if err := uc.repo.Save(ctx, a, a.Version); err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, uc.log, providerID)
	return a, nil
}
