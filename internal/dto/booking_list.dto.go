package dto

import (
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/calendar"
)

type BookingListDTO struct {
	ID           string             `json:"id"`
	Date         calendar.DateKey   `json:"date"`
	StartTime    calendar.TimeOfDay `json:"start_time"`
	EndTime      calendar.TimeOfDay `json:"end_time"`
	Status       domain.Status      `json:"status"`
	CustomerName string             `json:"customer_name"`
	Services     []string           `json:"services"`
}

func ToBookingList(bookings []domain.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingListDTO{
			ID:           b.ID,
			Date:         b.Date,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			Status:       b.Status,
			CustomerName: b.CustomerName,
			Services:     b.Services,
		})
	}
	return out
}
