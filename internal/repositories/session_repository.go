package repositories

import (
	"context"
	"database/sql"

	"toiletBack/internal/models"
)

type SessionRepository struct {
	DB *sql.DB
}

func (r *SessionRepository) CreateSession(ctx context.Context, toiletID, userID int, startMethod string) (models.UsageSession, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO toilet_sessions (toilet_id, user_id, started_at, start_method, created_at)
		 VALUES (?, ?, NOW(), ?, NOW())`, toiletID, userID, startMethod)
	if err != nil {
		return models.UsageSession{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.UsageSession{}, err
	}
	return r.GetSessionByID(ctx, int(id))
}

const sessionSelect = `SELECT id, toilet_id, user_id, started_at, ended_at, start_method, end_method, charge_cents, created_at, updated_at FROM toilet_sessions`

func scanSession(row rowScanner) (models.UsageSession, error) {
	var s models.UsageSession
	var endedAt, updatedAt sql.NullTime
	var endMethod sqlNullString
	var chargeCents sql.NullInt64
	if err := row.Scan(&s.ID, &s.ToiletID, &s.UserID, &s.StartedAt,
		&endedAt, &s.StartMethod, &endMethod, &chargeCents, &s.CreatedAt, &updatedAt); err != nil {
		return s, err
	}
	s.EndedAt = timePtr(endedAt)
	s.EndMethod = endMethod.ptr()
	s.ChargeCents = intPtr(chargeCents)
	s.UpdatedAt = timePtr(updatedAt)
	return s, nil
}

func (r *SessionRepository) GetSessionByID(ctx context.Context, id int) (models.UsageSession, error) {
	s, err := scanSession(r.DB.QueryRowContext(ctx, sessionSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return s, models.ErrSessionNotFound
	}
	return s, err
}

// GetSessionForToilet fetches the session only when it belongs to the
// given listing, so a wrong toilet id reads as not found.
func (r *SessionRepository) GetSessionForToilet(ctx context.Context, sessionID, toiletID int) (models.UsageSession, error) {
	s, err := scanSession(r.DB.QueryRowContext(ctx,
		sessionSelect+` WHERE id = ? AND toilet_id = ?`, sessionID, toiletID))
	if err == sql.ErrNoRows {
		return s, models.ErrSessionNotFound
	}
	return s, err
}

// EndSession closes the session. A nil charge keeps whatever value was
// already on the row.
func (r *SessionRepository) EndSession(ctx context.Context, id int, endMethod string, chargeCents *int) (models.UsageSession, error) {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE toilet_sessions
		 SET ended_at = NOW(), end_method = ?, charge_cents = COALESCE(?, charge_cents), updated_at = NOW()
		 WHERE id = ? AND ended_at IS NULL`,
		endMethod, nullableInt(chargeCents), id)
	if err != nil {
		return models.UsageSession{}, err
	}
	return r.GetSessionByID(ctx, id)
}

// ListSessionsByUser returns the caller's visit history, newest first.
func (r *SessionRepository) ListSessionsByUser(ctx context.Context, userID, limit, offset int) ([]models.UsageSession, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM toilet_sessions WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		sessionSelect+` WHERE user_id = ? ORDER BY started_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sessions []models.UsageSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, s)
	}
	return sessions, total, rows.Err()
}
