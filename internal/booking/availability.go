// Package booking holds the pure reservation rules shared by the live
// availability preview and the authoritative write path.
package booking

import (
	"sort"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/utils"
)

// Interval is a half-open range of nights [Start, End)
type Interval struct {
	Start utils.Date `json:"start"`
	End   utils.Date `json:"end"`
}

// Valid reports whether the interval covers at least one night
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether a and b share at least one night.
// Back-to-back intervals (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Request is a candidate stay to check against the existing reservations.
// ExcludeID names the reservation being edited, if any.
type Request struct {
	CabinID   string     `json:"cabin_id" validate:"required"`
	CheckIn   utils.Date `json:"check_in"`
	CheckOut  utils.Date `json:"check_out"`
	ExcludeID string     `json:"exclude_id,omitempty"`
}

func (r Request) Interval() Interval {
	return Interval{Start: r.CheckIn, End: r.CheckOut}
}

// IntervalOf returns the nights occupied by a reservation
func IntervalOf(r *domain.Reservation) Interval {
	return Interval{Start: r.CheckIn, End: r.CheckOut}
}

// FindConflicts returns the reservations in existing that block req.
// Cancelled reservations, other cabins and req.ExcludeID never conflict.
func FindConflicts(existing []domain.Reservation, req Request) []domain.Reservation {
	var conflicts []domain.Reservation
	want := req.Interval()
	for i := range existing {
		r := &existing[i]
		if r.CabinID != req.CabinID || !r.Status.IsActive() {
			continue
		}
		if req.ExcludeID != "" && r.ID == req.ExcludeID {
			continue
		}
		if Overlaps(want, IntervalOf(r)) {
			conflicts = append(conflicts, *r)
		}
	}
	return conflicts
}

func HasConflict(existing []domain.Reservation, req Request) bool {
	return len(FindConflicts(existing, req)) > 0
}

// Block is an occupied interval as shown to the booking form
type Block struct {
	Interval
	ReservationID string                   `json:"reservation_id"`
	Status        domain.ReservationStatus `json:"status"`
}

// BlocksByCabin groups the active reservations per cabin, sorted by check-in
func BlocksByCabin(reservations []domain.Reservation) map[string][]Block {
	blocks := make(map[string][]Block)
	for i := range reservations {
		r := &reservations[i]
		if !r.Status.IsActive() {
			continue
		}
		blocks[r.CabinID] = append(blocks[r.CabinID], Block{
			Interval:      IntervalOf(r),
			ReservationID: r.ID,
			Status:        r.Status,
		})
	}
	for _, list := range blocks {
		sort.Slice(list, func(i, j int) bool {
			return list[i].Start.Before(list[j].Start)
		})
	}
	return blocks
}
