package models

import "time"

// Activity is one entry of a provider inbox.
type Activity struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ProviderID   string `gorm:"size:64;not null;index" json:"provider_id"`
	BookingID    string `gorm:"size:36;index" json:"booking_id"`
	CustomerName string `gorm:"size:100" json:"customer_name"`
	Action       string `gorm:"size:50;not null" json:"action"`

	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
