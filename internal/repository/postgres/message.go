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

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `id, guest_name, guest_email, guest_phone, message, source, is_read, archived, created_at`

func scanMessage(row rowScanner) (*domain.Message, error) {
	var m domain.Message
	var email, phone, source sql.NullString
	if err := row.Scan(&m.ID, &m.GuestName, &email, &phone, &m.Body, &source, &m.IsRead, &m.Archived, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.GuestEmail = stringPtr(email)
	m.GuestPhone = stringPtr(phone)
	m.Source = stringPtr(source)
	return &m, nil
}

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	logger.EnterMethod("messageRepository.Create", "messageID", m.ID)

	query := `INSERT INTO mensajes (id, guest_name, guest_email, guest_phone, message, source, is_read, archived)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING created_at`
	logger.DatabaseCall("INSERT", "mensajes", "messageID", m.ID)

	err := r.db.QueryRowContext(ctx, query, m.ID, m.GuestName, nullString(m.GuestEmail),
		nullString(m.GuestPhone), m.Body, nullString(m.Source), m.IsRead, m.Archived).Scan(&m.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "messageID", m.ID)

	if err != nil {
		logger.ExitMethodWithError("messageRepository.Create", err, false, "messageID", m.ID)
		return fmt.Errorf("failed to insert message: %w", err)
	}
	logger.ExitMethod("messageRepository.Create", "messageID", m.ID)
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM mensajes WHERE id = $1`
	logger.DatabaseCall("SELECT", "mensajes", "messageID", id)

	m, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("message")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return m, nil
}

func (r *messageRepository) List(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM mensajes WHERE TRUE`
	if filter.UnreadOnly {
		query += ` AND is_read = FALSE`
	}
	if !filter.IncludeArchived {
		query += ` AND archived = FALSE`
	}
	query += ` ORDER BY created_at DESC`
	logger.DatabaseCall("SELECT", "mensajes", "unreadOnly", filter.UnreadOnly, "includeArchived", filter.IncludeArchived)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	logger.DatabaseResult("SELECT", int64(len(messages)), nil)
	return messages, nil
}

func (r *messageRepository) UpdateFlags(ctx context.Context, id string, isRead, archived bool) error {
	query := `UPDATE mensajes SET is_read = $1, archived = $2 WHERE id = $3`
	logger.DatabaseCall("UPDATE", "mensajes", "messageID", id, "isRead", isRead, "archived", archived)

	result, err := r.db.ExecContext(ctx, query, isRead, archived, id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "messageID", id)
		return fmt.Errorf("failed to update message: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	logger.DatabaseResult("UPDATE", rows, nil, "messageID", id)
	if rows == 0 {
		return domain.NewNotFoundError("message")
	}
	return nil
}

func (r *messageRepository) CountUnread(ctx context.Context) (int, error) {
	// Archived messages still count until someone reads them
	query := `SELECT COUNT(*) FROM mensajes WHERE is_read = FALSE`
	logger.DatabaseCall("SELECT", "mensajes")

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
