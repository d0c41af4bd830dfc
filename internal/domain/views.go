package domain

import "cabanas-backoffice/internal/utils"

// ReservationAlert is a reservation with its derived balance, as shown on the alerts screen
type ReservationAlert struct {
	Reservation Reservation `json:"reservation"`
	Balance     Balance     `json:"summary"`
}

type Alerts struct {
	Today             utils.Date         `json:"today"`
	UpcomingCheckIns  []ReservationAlert `json:"upcoming_checkins"`
	UpcomingCheckOuts []ReservationAlert `json:"upcoming_checkouts"`
	PendingBalances   []ReservationAlert `json:"pending_balances"`
	UnreadMessages    []Message          `json:"unread_messages"`
}

// Empty reports whether there is nothing to act on
func (a *Alerts) Empty() bool {
	return len(a.UpcomingCheckIns) == 0 && len(a.UpcomingCheckOuts) == 0 &&
		len(a.PendingBalances) == 0 && len(a.UnreadMessages) == 0
}

type DashboardStats struct {
	OccupancyRate       float64 `json:"occupancy_rate"`
	OccupiedCabins      int     `json:"occupied_cabins"`
	TotalCabins         int     `json:"total_cabins"`
	PendingReservations int     `json:"pending_reservations"`
	RecentPayments      float64 `json:"recent_payments"`
	UnreadMessages      int     `json:"unread_messages"`
}

// CabinDayStatus describes one cabin on one calendar day
type CabinDayStatus struct {
	CabinID       string `json:"cabin_id"`
	Name          string `json:"name"`
	ReservationID string `json:"reservation_id,omitempty"`
	GuestName     string `json:"guest_name,omitempty"`
	Occupied      bool   `json:"occupied"`
	CheckIn       bool   `json:"checkin"`
	CheckOut      bool   `json:"checkout"`
}

type CalendarDay struct {
	Date     utils.Date       `json:"date"`
	InMonth  bool             `json:"in_month"`
	Occupied bool             `json:"occupied"`
	Cabins   []CabinDayStatus `json:"cabins"`
}

type CalendarMonth struct {
	Month   string          `json:"month"` // yyyy-mm
	CabinID string          `json:"cabin_id,omitempty"`
	Weeks   [][]CalendarDay `json:"weeks"`
}
