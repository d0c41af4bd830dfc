package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
)

type cabinRepository struct {
	db *sql.DB
}

func NewCabinRepository(db *sql.DB) repository.CabinRepository {
	return &cabinRepository{db: db}
}

func (r *cabinRepository) List(ctx context.Context) ([]domain.Cabin, error) {
	query := `SELECT id, name FROM cabanas ORDER BY name ASC`
	logger.DatabaseCall("SELECT", "cabanas")

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, fmt.Errorf("failed to list cabins: %w", err)
	}
	defer rows.Close()

	var cabins []domain.Cabin
	for rows.Next() {
		var c domain.Cabin
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan cabin: %w", err)
		}
		cabins = append(cabins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cabins: %w", err)
	}
	logger.DatabaseResult("SELECT", int64(len(cabins)), nil)
	return cabins, nil
}

func (r *cabinRepository) GetByID(ctx context.Context, id string) (*domain.Cabin, error) {
	query := `SELECT id, name FROM cabanas WHERE id = $1`
	logger.DatabaseCall("SELECT", "cabanas", "cabinID", id)

	var c domain.Cabin
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("cabin")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cabin: %w", err)
	}
	return &c, nil
}
