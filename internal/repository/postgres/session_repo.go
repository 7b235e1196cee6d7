package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventadmissions/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (event_id, name, session_date, start_time, end_time, balance_capacity, detail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.EventID, s.Name, s.Date, s.StartTime, s.EndTime, s.BalanceCapacity, s.Detail, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT id, event_id, name, session_date, start_time, end_time, balance_capacity, detail, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`
	s := &domain.Session{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.EventID, &s.Name, &s.Date, &s.StartTime, &s.EndTime, &s.BalanceCapacity, &s.Detail, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Session, error) {
	query := `
		SELECT id, event_id, name, session_date, start_time, end_time, balance_capacity, detail, created_at, updated_at
		FROM sessions
		WHERE event_id = $1
		ORDER BY session_date ASC, start_time ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s := &domain.Session{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name, &s.Date, &s.StartTime, &s.EndTime, &s.BalanceCapacity, &s.Detail, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) ListProductMappings(ctx context.Context, sessionID string) ([]*domain.SessionProduct, error) {
	query := `
		SELECT session_id, product_id, product_type_id
		FROM session_products
		WHERE session_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mappings := make([]*domain.SessionProduct, 0)
	for rows.Next() {
		m := &domain.SessionProduct{}
		if err := rows.Scan(&m.SessionID, &m.ProductID, &m.ProductTypeID); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}
