package booking

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", httperr.Validation("invalid_status")
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Active statuses hold their interval; only cancellation frees it.
func (s Status) Active() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanTransition enforces the lifecycle table.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.InvalidTransition("invalid_transition")
}

// InitialStatus picks the creation status for the caller role: customers
// always start Pending, providers and admins may open Confirmed.
func InitialStatus(role Role, requested Status) (Status, error) {
	if requested == "" || requested == StatusPending {
		return StatusPending, nil
	}
	if requested == StatusConfirmed && role != RoleCustomer {
		return StatusConfirmed, nil
	}
	return "", httperr.Validation("invalid_initial_status")
}

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleProvider || r == RoleAdmin
}
