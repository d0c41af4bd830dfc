package domain

import "time"

type PaymentType string

const (
	PaymentTypePartial PaymentType = "partial"
	PaymentTypeFull    PaymentType = "full"
)

type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodDebit    PaymentMethod = "debit"
	PaymentMethodCredit   PaymentMethod = "credit"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is money recorded against a reservation. Payments are created and
// deleted, never updated in place.
type Payment struct {
	ID            string        `json:"id"`
	ReservationID string        `json:"reservation_id"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Type          PaymentType   `json:"payment_type"`
	Method        PaymentMethod `json:"method"`
	Reference     *string       `json:"reference"`
	Notes         *string       `json:"notes"`
	Status        PaymentStatus `json:"status"`
	CreatedBy     string        `json:"created_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Balance is derived on every read and never persisted
type Balance struct {
	Quoted    float64 `json:"total_booking"`
	TotalPaid float64 `json:"total_paid"`
	Balance   float64 `json:"balance"`
}

// ReservationPayments is one row of the payments screen
type ReservationPayments struct {
	Reservation Reservation `json:"reservation"`
	Payments    []Payment   `json:"payments"`
	Balance     Balance     `json:"summary"`
}
