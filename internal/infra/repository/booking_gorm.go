package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*domain.Booking, error) {

	var row models.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFoundErr("booking_not_found")
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	return toDomainBooking(row)
}

func (r *BookingGormRepository) ListActiveForDay(
	ctx context.Context,
	providerID string,
	date calendar.DateKey,
) ([]domain.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND date_key = ? AND status <> ?",
			providerID, date.String(), string(domain.StatusCancelled),
		).
		Order("start_minute ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list day bookings: %w", err)
	}

	return toDomainBookings(rows)
}

func (r *BookingGormRepository) ListForProvider(
	ctx context.Context,
	providerID string,
	from calendar.DateKey,
	to calendar.DateKey,
) ([]domain.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND date_key >= ? AND date_key <= ?",
			providerID, from.String(), to.String(),
		).
		Order("date_key ASC, start_minute ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list provider bookings: %w", err)
	}

	return toDomainBookings(rows)
}

func (r *BookingGormRepository) ListForCustomer(
	ctx context.Context,
	customerID string,
) ([]domain.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date_key DESC, start_minute DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list customer bookings: %w", err)
	}

	return toDomainBookings(rows)
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *domain.Booking,
) error {

	row := toBookingRow(b)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	b.CreatedAt = row.CreatedAt
	b.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *BookingGormRepository) Update(
	ctx context.Context,
	b *domain.Booking,
) error {

	row := toBookingRow(b)
	res := r.db.WithContext(ctx).Save(&row)
	if res.Error != nil {
		return fmt.Errorf("update booking: %w", res.Error)
	}

	b.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *BookingGormRepository) PurgeBefore(
	ctx context.Context,
	cutoff calendar.DateKey,
	archive func([]domain.Booking) error,
) ([]domain.Booking, error) {

	var purged []domain.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.Booking
		if err := tx.
			Where(
				"date_key < ? AND status IN ?",
				cutoff.String(),
				[]string{string(domain.StatusCancelled), string(domain.StatusCompleted)},
			).
			Order("date_key ASC, start_minute ASC").
			Find(&rows).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		bookings, err := toDomainBookings(rows)
		if err != nil {
			return err
		}
		if archive != nil {
			if err := archive(bookings); err != nil {
				return err
			}
		}
		purged = bookings

		ids := make([]string, len(rows))
		for i, row := range rows {
			ids[i] = row.ID
		}
		return tx.Where("id IN ?", ids).Delete(&models.Booking{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("purge bookings: %w", err)
	}

	if purged == nil {
		purged = []domain.Booking{}
	}
	return purged, nil
}

// --------------------------------------------------
// Atomic
// --------------------------------------------------

// Atomic locks the provider availability row so concurrent commits for the
// same provider run one at a time. The exclusion constraint still guards
// providers without a row.
func (r *BookingGormRepository) Atomic(
	ctx context.Context,
	providerID string,
	fn func(domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lock models.ProviderAvailability
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("provider_id").
			Where("provider_id = ?", providerID).
			Take(&lock).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lock provider: %w", err)
		}

		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Mapping
// --------------------------------------------------

func toBookingRow(b *domain.Booking) models.Booking {
	return models.Booking{
		ID:            b.ID,
		ProviderID:    b.ProviderID,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		DateKey:       b.Date.String(),
		StartMinute:   int(b.StartTime),
		EndMinute:     int(b.EndTime),
		Services:      b.Services,
		TotalDuration: b.TotalDuration,
		Status:        string(b.Status),
		Notes:         b.Notes,
		UserModified:  b.UserModified,
		CancelledAt:   b.CancelledAt,
		CompletedAt:   b.CompletedAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toDomainBooking(row models.Booking) (*domain.Booking, error) {
	date, err := calendar.ParseDateKey(row.DateKey)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}
	status, err := domain.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}

	return &domain.Booking{
		ID:            row.ID,
		ProviderID:    row.ProviderID,
		CustomerID:    row.CustomerID,
		CustomerName:  row.CustomerName,
		CustomerPhone: row.CustomerPhone,
		Date:          date,
		StartTime:     calendar.TimeOfDay(row.StartMinute),
		EndTime:       calendar.TimeOfDay(row.EndMinute),
		Services:      row.Services,
		TotalDuration: row.TotalDuration,
		Status:        status,
		Notes:         row.Notes,
		UserModified:  row.UserModified,
		CancelledAt:   row.CancelledAt,
		CompletedAt:   row.CompletedAt,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func toDomainBookings(rows []models.Booking) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := toDomainBooking(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
