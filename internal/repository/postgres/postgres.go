package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"cabanas-backoffice/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ReservationRepository
	repository.PaymentRepository
	repository.MessageRepository
	repository.CabinRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ReservationRepository: NewReservationRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		MessageRepository:     NewMessageRepository(db),
		CabinRepository:       NewCabinRepository(db),
	}
}

// DB exposes the pool for health checks
func (s *Store) DB() *sql.DB {
	return s.db
}

// Open connects to PostgreSQL and verifies the connection
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// nullString maps empty strings to NULL
func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
