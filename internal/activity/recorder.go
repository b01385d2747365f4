package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Recorder persists records to the activities table and serves the inbox.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Write(ctx context.Context, rec Record) error {
	var meta string
	if rec.Metadata != nil {
		if b, err := json.Marshal(rec.Metadata); err == nil {
			meta = string(b)
		}
	}

	row := models.Activity{
		ID:           uuid.NewString(),
		ProviderID:   rec.ProviderID,
		BookingID:    rec.BookingID,
		CustomerName: rec.CustomerName,
		Action:       rec.Action,
		Metadata:     meta,
		CreatedAt:    rec.Timestamp,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("write activity: %w", err)
	}
	return nil
}

type Filter struct {
	ProviderID string
	Action     string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

type Page struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Items []models.Activity `json:"items"`
}

// List returns one page of a provider inbox, newest first.
func (r *Recorder) List(ctx context.Context, f Filter) (*Page, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("provider_id = ?", f.ProviderID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	base := q.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}

	items := []models.Activity{}
	if err := base.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return &Page{Page: f.Page, Limit: f.Limit, Total: total, Items: items}, nil
}
