package booking

import "cabanas-backoffice/internal/domain"

// SumPolicy selects which payments count towards the amount paid
type SumPolicy int

const (
	// SumAll counts every recorded payment regardless of its status
	SumAll SumPolicy = iota
	// SumConfirmed counts confirmed payments only
	SumConfirmed
)

// DefaultEpsilon absorbs floating point noise when classifying balances
const DefaultEpsilon = 0.1

func (p SumPolicy) counts(payment *domain.Payment) bool {
	if p == SumConfirmed {
		return payment.Status == domain.PaymentStatusConfirmed
	}
	return true
}

// ComputeBalance derives the paid total and outstanding balance for one
// reservation. A nil quoted amount counts as zero. The balance is negative
// when the guest overpaid.
func ComputeBalance(quoted *float64, payments []domain.Payment, policy SumPolicy) domain.Balance {
	var total float64
	if quoted != nil {
		total = *quoted
	}

	var paid float64
	for i := range payments {
		if policy.counts(&payments[i]) {
			paid += payments[i].Amount
		}
	}

	return domain.Balance{
		Quoted:    total,
		TotalPaid: paid,
		Balance:   total - paid,
	}
}

// HasPendingBalance reports whether a reservation still owes money
func HasPendingBalance(status domain.ReservationStatus, balance domain.Balance, epsilon float64) bool {
	return status.IsActive() && balance.Balance > epsilon
}

// GroupPayments indexes payments by reservation id
func GroupPayments(payments []domain.Payment) map[string][]domain.Payment {
	grouped := make(map[string][]domain.Payment)
	for _, p := range payments {
		grouped[p.ReservationID] = append(grouped[p.ReservationID], p)
	}
	return grouped
}
