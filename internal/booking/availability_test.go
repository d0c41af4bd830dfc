package booking

import (
	"testing"
	"time"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) utils.Date {
	return utils.NewDate(year, month, d)
}

func reservation(id, cabin string, in, out utils.Date, status domain.ReservationStatus) domain.Reservation {
	return domain.Reservation{ID: id, CabinID: cabin, GuestName: "Guest " + id, CheckIn: in, CheckOut: out, Status: status}
}

func TestOverlaps(t *testing.T) {
	base := Interval{Start: day(2024, 3, 10), End: day(2024, 3, 15)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"back to back after", Interval{day(2024, 3, 15), day(2024, 3, 18)}, false},
		{"back to back before", Interval{day(2024, 3, 5), day(2024, 3, 10)}, false},
		{"overlapping tail", Interval{day(2024, 3, 12), day(2024, 3, 20)}, true},
		{"overlapping head", Interval{day(2024, 3, 8), day(2024, 3, 11)}, true},
		{"contained", Interval{day(2024, 3, 11), day(2024, 3, 12)}, true},
		{"containing", Interval{day(2024, 3, 1), day(2024, 3, 31)}, true},
		{"identical", base, true},
		{"disjoint", Interval{day(2024, 4, 1), day(2024, 4, 2)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(base, tt.other))
			assert.Equal(t, tt.want, Overlaps(tt.other, base), "overlap must be symmetric")
		})
	}
}

func TestInterval_Valid(t *testing.T) {
	assert.True(t, Interval{day(2024, 1, 1), day(2024, 1, 2)}.Valid())
	assert.False(t, Interval{day(2024, 1, 2), day(2024, 1, 2)}.Valid())
	assert.False(t, Interval{day(2024, 1, 3), day(2024, 1, 2)}.Valid())
}

func TestFindConflicts(t *testing.T) {
	existing := []domain.Reservation{
		reservation("r1", "C1", day(2024, 3, 10), day(2024, 3, 15), domain.ReservationStatusConfirmed),
		reservation("r2", "C1", day(2024, 3, 20), day(2024, 3, 22), domain.ReservationStatusCancelled),
		reservation("r3", "C2", day(2024, 3, 10), day(2024, 3, 15), domain.ReservationStatusPending),
	}

	t.Run("BackToBack", func(t *testing.T) {
		req := Request{CabinID: "C1", CheckIn: day(2024, 3, 15), CheckOut: day(2024, 3, 18)}
		assert.False(t, HasConflict(existing, req))
	})

	t.Run("Overlap", func(t *testing.T) {
		req := Request{CabinID: "C1", CheckIn: day(2024, 3, 12), CheckOut: day(2024, 3, 20)}
		conflicts := FindConflicts(existing, req)
		require.Len(t, conflicts, 1)
		assert.Equal(t, "r1", conflicts[0].ID)
	})

	t.Run("CancelledNeverConflicts", func(t *testing.T) {
		req := Request{CabinID: "C1", CheckIn: day(2024, 3, 19), CheckOut: day(2024, 3, 23)}
		assert.False(t, HasConflict(existing, req))
	})

	t.Run("OtherCabinIgnored", func(t *testing.T) {
		req := Request{CabinID: "C3", CheckIn: day(2024, 3, 10), CheckOut: day(2024, 3, 15)}
		assert.False(t, HasConflict(existing, req))
	})

	t.Run("SelfExcludedOnEdit", func(t *testing.T) {
		own := []domain.Reservation{
			reservation("R1", "C2", day(2024, 4, 1), day(2024, 4, 5), domain.ReservationStatusConfirmed),
		}
		req := Request{CabinID: "C2", CheckIn: day(2024, 4, 3), CheckOut: day(2024, 4, 7), ExcludeID: "R1"}
		assert.False(t, HasConflict(own, req))

		req.ExcludeID = ""
		assert.True(t, HasConflict(own, req))
	})

	t.Run("EmptyDataset", func(t *testing.T) {
		req := Request{CabinID: "C1", CheckIn: day(2024, 3, 10), CheckOut: day(2024, 3, 15)}
		assert.Empty(t, FindConflicts(nil, req))
	})
}

func TestBlocksByCabin(t *testing.T) {
	reservations := []domain.Reservation{
		reservation("b", "C1", day(2024, 5, 10), day(2024, 5, 12), domain.ReservationStatusConfirmed),
		reservation("a", "C1", day(2024, 5, 1), day(2024, 5, 3), domain.ReservationStatusPending),
		reservation("x", "C1", day(2024, 5, 4), day(2024, 5, 6), domain.ReservationStatusCancelled),
		reservation("c", "C2", day(2024, 5, 2), day(2024, 5, 4), domain.ReservationStatusCheckedIn),
	}

	blocks := BlocksByCabin(reservations)

	require.Len(t, blocks["C1"], 2)
	assert.Equal(t, "a", blocks["C1"][0].ReservationID)
	assert.Equal(t, "b", blocks["C1"][1].ReservationID)
	require.Len(t, blocks["C2"], 1)
	assert.Equal(t, day(2024, 5, 4), blocks["C2"][0].End)
}
