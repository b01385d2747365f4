package models

import "time"

// Booking rows keep the day and the minute offsets separately so postgres
// can build int4range(start_minute, end_minute) for the overlap constraint.
type Booking struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string `gorm:"size:64;not null;index:idx_bookings_provider_day,priority:1" json:"provider_id"`
	CustomerID string `gorm:"size:64;not null;index" json:"customer_id"`

	CustomerName  string `gorm:"size:100" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	DateKey     string `gorm:"size:10;not null;index:idx_bookings_provider_day,priority:2" json:"date_key"`
	StartMinute int    `gorm:"not null" json:"start_minute"`
	EndMinute   int    `gorm:"not null" json:"end_minute"`

	Services      []string `gorm:"serializer:json;type:text" json:"services"`
	TotalDuration int      `json:"total_duration"`

	Status       string `gorm:"size:20;default:'pending';index" json:"status"`
	Notes        string `gorm:"size:255" json:"notes"`
	UserModified bool   `gorm:"default:false" json:"user_modified"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
