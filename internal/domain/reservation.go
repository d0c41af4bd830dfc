package domain

import (
	"time"

	"cabanas-backoffice/internal/utils"
)

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

// ReservationStatuses lists every valid status in lifecycle order
var ReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCheckedIn,
	ReservationStatusCheckedOut,
	ReservationStatusCancelled,
}

func (s ReservationStatus) Valid() bool {
	for _, v := range ReservationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsActive reports whether the reservation still blocks its cabin
func (s ReservationStatus) IsActive() bool {
	return s != ReservationStatusCancelled
}

// Reservation is a stay in one cabin over [CheckIn, CheckOut). The night of
// CheckOut is not occupied.
type Reservation struct {
	ID          string            `json:"id"`
	CabinID     string            `json:"cabin_id"`
	CabinName   string            `json:"cabin_name,omitempty"`
	GuestName   string            `json:"guest_name"`
	GuestPhone  *string           `json:"guest_phone"`
	GuestEmail  *string           `json:"guest_email"`
	GuestsCount int               `json:"guests_count"`
	CheckIn     utils.Date        `json:"check_in"`
	CheckOut    utils.Date        `json:"check_out"`
	Status      ReservationStatus `json:"status"`
	Amount      *float64          `json:"amount"` // quoted amount, nullable
	Notes       *string           `json:"notes"`
	CreatedBy   string            `json:"created_by,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Nights returns the number of occupied nights
func (r *Reservation) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}

// Occupies reports whether the cabin is occupied on the night of day
func (r *Reservation) Occupies(day utils.Date) bool {
	return r.Status.IsActive() && !day.Before(r.CheckIn) && day.Before(r.CheckOut)
}

// ReservationFilter narrows reservation listings. Zero values mean "any".
type ReservationFilter struct {
	CabinID    string
	Status     ReservationStatus
	ActiveOnly bool
	// Search matches guest name, cabin name, phone or email
	Search string
}
