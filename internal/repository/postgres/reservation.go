package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
	"cabanas-backoffice/internal/utils"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `r.id, r.cabana_id, COALESCE(c.name, ''), r.guest_name, r.guest_phone, r.guest_email,
	r.guests_count, r.check_in, r.check_out, r.status, r.amount, r.notes, COALESCE(r.created_by, ''),
	r.created_at, r.updated_at`

const reservationFrom = ` FROM reservas r LEFT JOIN cabanas c ON c.id = r.cabana_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var r domain.Reservation
	var phone, email, notes sql.NullString
	var amount sql.NullFloat64
	var status string
	err := row.Scan(&r.ID, &r.CabinID, &r.CabinName, &r.GuestName, &phone, &email,
		&r.GuestsCount, &r.CheckIn, &r.CheckOut, &status, &amount, &notes, &r.CreatedBy,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Status = domain.ReservationStatus(status)
	r.GuestPhone = stringPtr(phone)
	r.GuestEmail = stringPtr(email)
	r.Notes = stringPtr(notes)
	if amount.Valid {
		v := amount.Float64
		r.Amount = &v
	}
	return &r, nil
}

func (r *reservationRepository) query(ctx context.Context, op, where string, args ...any) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + reservationFrom + where
	logger.DatabaseCall("SELECT", "reservas", "operation", op)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "operation", op)
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var list []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		list = append(list, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}
	logger.DatabaseResult("SELECT", int64(len(list)), nil, "operation", op)
	return list, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	logger.EnterMethod("reservationRepository.Create", "cabinID", res.CabinID, "checkIn", res.CheckIn, "checkOut", res.CheckOut)

	query := `INSERT INTO reservas (id, cabana_id, guest_name, guest_phone, guest_email, guests_count,
	          check_in, check_out, status, amount, notes, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING created_at, updated_at`
	logger.DatabaseCall("INSERT", "reservas", "reservationID", res.ID)

	err := r.db.QueryRowContext(ctx, query, res.ID, res.CabinID, res.GuestName,
		nullString(res.GuestPhone), nullString(res.GuestEmail), res.GuestsCount,
		res.CheckIn, res.CheckOut, string(res.Status), res.Amount, nullString(res.Notes),
		res.CreatedBy).Scan(&res.CreatedAt, &res.UpdatedAt)
	logger.DatabaseResult("INSERT", 1, err, "reservationID", res.ID)

	if err != nil {
		logger.ExitMethodWithError("reservationRepository.Create", err, false, "reservationID", res.ID)
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	logger.ExitMethod("reservationRepository.Create", "reservationID", res.ID)
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + reservationFrom + ` WHERE r.id = $1`
	logger.DatabaseCall("SELECT", "reservas", "reservationID", id)

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("reservation")
	}
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "reservationID", id)
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return res, nil
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	logger.EnterMethod("reservationRepository.Update", "reservationID", res.ID)

	query := `UPDATE reservas SET cabana_id = $1, guest_name = $2, guest_phone = $3, guest_email = $4,
	          guests_count = $5, check_in = $6, check_out = $7, status = $8, amount = $9, notes = $10,
	          updated_at = NOW()
	          WHERE id = $11
	          RETURNING updated_at`
	logger.DatabaseCall("UPDATE", "reservas", "reservationID", res.ID)

	err := r.db.QueryRowContext(ctx, query, res.CabinID, res.GuestName,
		nullString(res.GuestPhone), nullString(res.GuestEmail), res.GuestsCount,
		res.CheckIn, res.CheckOut, string(res.Status), res.Amount, nullString(res.Notes),
		res.ID).Scan(&res.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethodWithError("reservationRepository.Update", err, true, "reservationID", res.ID)
		return domain.NewNotFoundError("reservation")
	}
	logger.DatabaseResult("UPDATE", 1, err, "reservationID", res.ID)
	if err != nil {
		logger.ExitMethodWithError("reservationRepository.Update", err, false, "reservationID", res.ID)
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	logger.ExitMethod("reservationRepository.Update", "reservationID", res.ID)
	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	query := `UPDATE reservas SET status = $1, updated_at = NOW() WHERE id = $2`
	logger.DatabaseCall("UPDATE", "reservas", "reservationID", id, "status", status)

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "reservationID", id)
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	logger.DatabaseResult("UPDATE", rows, nil, "reservationID", id)
	if rows == 0 {
		return domain.NewNotFoundError("reservation")
	}
	return nil
}

func (r *reservationRepository) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CabinID != "" {
		conds = append(conds, "r.cabana_id = "+arg(filter.CabinID))
	}
	if filter.Status != "" {
		conds = append(conds, "r.status = "+arg(string(filter.Status)))
	}
	if filter.ActiveOnly {
		conds = append(conds, "r.status <> "+arg(string(domain.ReservationStatusCancelled)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, fmt.Sprintf("(r.guest_name ILIKE %s OR c.name ILIKE %s OR r.guest_phone ILIKE %s OR r.guest_email ILIKE %s)", p, p, p, p))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return r.query(ctx, "List", where+" ORDER BY r.check_in DESC, r.created_at DESC", args...)
}

func (r *reservationRepository) ListUpcoming(ctx context.Context, from, to utils.Date) ([]domain.Reservation, error) {
	where := ` WHERE r.status <> $1
	           AND ((r.check_in >= $2 AND r.check_in <= $3) OR (r.check_out >= $2 AND r.check_out <= $3))
	           ORDER BY r.check_in ASC`
	return r.query(ctx, "ListUpcoming", where, string(domain.ReservationStatusCancelled), from, to)
}

func (r *reservationRepository) ListOccupying(ctx context.Context, from, to utils.Date) ([]domain.Reservation, error) {
	where := ` WHERE r.status <> $1 AND r.check_in < $3 AND r.check_out > $2
	           ORDER BY r.check_in ASC`
	return r.query(ctx, "ListOccupying", where, string(domain.ReservationStatusCancelled), from, to)
}

func (r *reservationRepository) CountByStatus(ctx context.Context, status domain.ReservationStatus) (int, error) {
	query := `SELECT COUNT(*) FROM reservas WHERE status = $1`
	logger.DatabaseCall("SELECT", "reservas", "status", status)

	var count int
	if err := r.db.QueryRowContext(ctx, query, string(status)).Scan(&count); err != nil {
		logger.DatabaseResult("SELECT", 0, err, "status", status)
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func (r *reservationRepository) CompleteFinishedStays(ctx context.Context, today utils.Date) ([]string, error) {
	logger.EnterMethod("reservationRepository.CompleteFinishedStays", "today", today)

	query := `UPDATE reservas SET status = $1, updated_at = NOW()
	          WHERE status = $2 AND check_out < $3
	          RETURNING id`
	logger.DatabaseCall("UPDATE", "reservas", "today", today)

	rows, err := r.db.QueryContext(ctx, query, string(domain.ReservationStatusCheckedOut),
		string(domain.ReservationStatusCheckedIn), today)
	if err != nil {
		logger.ExitMethodWithError("reservationRepository.CompleteFinishedStays", err, false)
		return nil, fmt.Errorf("failed to complete stays: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan reservation id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete stays: %w", err)
	}
	logger.DatabaseResult("UPDATE", int64(len(ids)), nil)
	logger.ExitMethod("reservationRepository.CompleteFinishedStays", "completed", len(ids))
	return ids, nil
}
