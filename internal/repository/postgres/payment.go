package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"

	"github.com/lib/pq"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, reserva_id, amount, currency, payment_type, method, reference, notes, status,
	COALESCE(created_by, ''), created_at`

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var amount sql.NullFloat64
	var reference, notes sql.NullString
	var paymentType, method, status string
	err := row.Scan(&p.ID, &p.ReservationID, &amount, &p.Currency, &paymentType, &method,
		&reference, &notes, &status, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	// NULL amounts count as zero
	p.Amount = amount.Float64
	p.Type = domain.PaymentType(paymentType)
	p.Method = domain.PaymentMethod(method)
	p.Status = domain.PaymentStatus(status)
	p.Reference = stringPtr(reference)
	p.Notes = stringPtr(notes)
	return &p, nil
}

func (r *paymentRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Payment, error) {
	logger.DatabaseCall("SELECT", "pagos", "operation", op)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "operation", op)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	logger.DatabaseResult("SELECT", int64(len(payments)), nil, "operation", op)
	return payments, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	logger.EnterMethod("paymentRepository.Create", "reservationID", p.ReservationID, "amount", p.Amount)

	query := `INSERT INTO pagos (id, reserva_id, amount, currency, payment_type, method, reference, notes, status, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING created_at`
	logger.DatabaseCall("INSERT", "pagos", "paymentID", p.ID)

	err := r.db.QueryRowContext(ctx, query, p.ID, p.ReservationID, p.Amount, p.Currency,
		string(p.Type), string(p.Method), nullString(p.Reference), nullString(p.Notes),
		string(p.Status), p.CreatedBy).Scan(&p.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "paymentID", p.ID)

	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Create", err, false, "paymentID", p.ID)
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	logger.ExitMethod("paymentRepository.Create", "paymentID", p.ID)
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pagos WHERE id = $1`
	logger.DatabaseCall("SELECT", "pagos", "paymentID", id)

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("payment")
	}
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "paymentID", id)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM pagos WHERE id = $1`
	logger.DatabaseCall("DELETE", "pagos", "paymentID", id)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err, "paymentID", id)
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	logger.DatabaseResult("DELETE", rows, nil, "paymentID", id)
	if rows == 0 {
		return domain.NewNotFoundError("payment")
	}
	return nil
}

func (r *paymentRepository) ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pagos WHERE reserva_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "ListByReservation", query, reservationID)
}

func (r *paymentRepository) ListByReservations(ctx context.Context, reservationIDs []string) ([]domain.Payment, error) {
	if len(reservationIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + paymentColumns + ` FROM pagos WHERE reserva_id = ANY($1) ORDER BY created_at DESC`
	return r.list(ctx, "ListByReservations", query, pq.Array(reservationIDs))
}

func (r *paymentRepository) SumSince(ctx context.Context, since time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM pagos WHERE created_at >= $1`
	logger.DatabaseCall("SELECT", "pagos", "since", since)

	var total float64
	if err := r.db.QueryRowContext(ctx, query, since).Scan(&total); err != nil {
		logger.DatabaseResult("SELECT", 0, err, "since", since)
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}
