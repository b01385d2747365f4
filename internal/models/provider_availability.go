package models

import "time"

type ProviderAvailability struct {
	ProviderID string `gorm:"primaryKey;size:64" json:"provider_id"`

	WorkStartHour int  `gorm:"not null" json:"work_start_hour"`
	WorkEndHour   int  `gorm:"not null" json:"work_end_hour"`
	LunchStart    *int `json:"lunch_start"`
	LunchEnd      *int `json:"lunch_end"`

	OffDays     []int     `gorm:"serializer:json;type:text" json:"off_days"`
	OffHours    []OffHour `gorm:"foreignKey:ProviderID;references:ProviderID;constraint:OnDelete:CASCADE" json:"off_hours"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`

	Version int64 `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OffHour is a blocked range in minutes. DateKey pins it to one day, Weekday
// to one weekday; with neither it recurs daily.
type OffHour struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ProviderID string `gorm:"size:64;not null;index" json:"provider_id"`

	StartMinute int     `gorm:"not null" json:"start_minute"`
	EndMinute   int     `gorm:"not null" json:"end_minute"`
	DateKey     *string `gorm:"size:10" json:"date_key"`
	Weekday     *int    `json:"weekday"`
}
