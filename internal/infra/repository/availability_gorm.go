package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) Get(
	ctx context.Context,
	providerID string,
) (*availability.Availability, error) {

	var row models.ProviderAvailability
	err := r.db.WithContext(ctx).
		Preload("OffHours", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("provider_id = ?", providerID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFoundErr("provider_not_found")
	}
	if err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}

	return toDomainAvailability(row)
}

// Save replaces the stored record and bumps its version. The version check
// runs under the row lock, so two writers holding the same version cannot
// both succeed.
func (r *AvailabilityGormRepository) Save(
	ctx context.Context,
	a *availability.Availability,
	expectedVersion int64,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.ProviderAvailability
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("provider_id = ?", a.ProviderID).
			Take(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFoundErr("provider_not_found")
		}
		if err != nil {
			return fmt.Errorf("load availability: %w", err)
		}

		if expectedVersion >= 0 && current.Version != expectedVersion {
			return httperr.Conflict("stale_availability")
		}

		row := toAvailabilityRow(a)
		offHours := row.OffHours
		row.OffHours = nil
		row.Version = current.Version + 1
		row.CreatedAt = current.CreatedAt
		row.UpdatedAt = time.Now()

		res := tx.Model(&models.ProviderAvailability{}).
			Where("provider_id = ? AND version = ?", a.ProviderID, current.Version).
			Select(
				"work_start_hour", "work_end_hour", "lunch_start", "lunch_end",
				"off_days", "is_available", "version", "updated_at",
			).
			Updates(&row)
		if res.Error != nil {
			return fmt.Errorf("update availability: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.Conflict("stale_availability")
		}

		if err := tx.Where("provider_id = ?", a.ProviderID).Delete(&models.OffHour{}).Error; err != nil {
			return fmt.Errorf("replace off hours: %w", err)
		}
		if len(offHours) > 0 {
			if err := tx.Create(&offHours).Error; err != nil {
				return fmt.Errorf("replace off hours: %w", err)
			}
		}

		a.Version = row.Version
		a.UpdatedAt = row.UpdatedAt
		return nil
	})
}

// Create inserts a with version 1 unless the provider already has a record.
func (r *AvailabilityGormRepository) Create(
	ctx context.Context,
	a *availability.Availability,
) (bool, error) {

	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := toAvailabilityRow(a)
		row.Version = 1
		offHours := row.OffHours
		row.OffHours = nil

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if len(offHours) > 0 {
			if err := tx.Create(&offHours).Error; err != nil {
				return err
			}
		}

		created = true
		a.Version = row.Version
		a.UpdatedAt = row.UpdatedAt
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("create availability: %w", err)
	}

	return created, nil
}

// --------------------------------------------------
// Mapping
// --------------------------------------------------

func toAvailabilityRow(a *availability.Availability) models.ProviderAvailability {
	row := models.ProviderAvailability{
		ProviderID:    a.ProviderID,
		WorkStartHour: a.WorkingHours.Start,
		WorkEndHour:   a.WorkingHours.End,
		OffDays:       make([]int, 0, len(a.OffDays)),
		OffHours:      make([]models.OffHour, 0, len(a.OffHours)),
		IsAvailable:   a.IsAvailable,
		Version:       a.Version,
	}

	if a.LunchBreak != nil {
		start, end := int(a.LunchBreak.Start), int(a.LunchBreak.End)
		row.LunchStart = &start
		row.LunchEnd = &end
	}

	for _, d := range a.OffDays {
		row.OffDays = append(row.OffDays, int(d))
	}

	for _, o := range a.OffHours {
		oh := models.OffHour{
			ProviderID:  a.ProviderID,
			StartMinute: int(o.Start),
			EndMinute:   int(o.End),
		}
		if o.Date != nil {
			key := o.Date.String()
			oh.DateKey = &key
		}
		if o.Weekday != nil {
			wd := int(*o.Weekday)
			oh.Weekday = &wd
		}
		row.OffHours = append(row.OffHours, oh)
	}

	return row
}

func toDomainAvailability(row models.ProviderAvailability) (*availability.Availability, error) {
	a := &availability.Availability{
		ProviderID:   row.ProviderID,
		WorkingHours: availability.WorkingHours{Start: row.WorkStartHour, End: row.WorkEndHour},
		OffDays:      make([]time.Weekday, 0, len(row.OffDays)),
		OffHours:     make([]availability.OffHours, 0, len(row.OffHours)),
		IsAvailable:  row.IsAvailable,
		Version:      row.Version,
		UpdatedAt:    row.UpdatedAt,
	}

	if row.LunchStart != nil && row.LunchEnd != nil {
		a.LunchBreak = &calendar.Interval{
			Start: calendar.TimeOfDay(*row.LunchStart),
			End:   calendar.TimeOfDay(*row.LunchEnd),
		}
	}

	for _, d := range row.OffDays {
		a.OffDays = append(a.OffDays, time.Weekday(d))
	}

	for _, oh := range row.OffHours {
		o := availability.OffHours{
			Start: calendar.TimeOfDay(oh.StartMinute),
			End:   calendar.TimeOfDay(oh.EndMinute),
		}
		if oh.DateKey != nil {
			date, err := calendar.ParseDateKey(*oh.DateKey)
			if err != nil {
				return nil, fmt.Errorf("off hours for %s: %w", row.ProviderID, err)
			}
			o.Date = &date
		}
		if oh.Weekday != nil {
			wd := time.Weekday(*oh.Weekday)
			o.Weekday = &wd
		}
		a.OffHours = append(a.OffHours, o)
	}

	return a, nil
}

var _ availability.Repository = (*AvailabilityGormRepository)(nil)
