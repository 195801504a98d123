package store

import (
	"database/sql"
	"time"

	"github.com/DanNess-system/Jardin-Infinito/internal/models"
)

func (s *Store) CreateSession(token string, userID int, expiresAt time.Time) error {
	query := `INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`
	_, err := s.DB.Exec(query, token, userID, expiresAt, time.Now())
	return err
}

// GetSessionByToken returns (nil, nil) when no row matches. Expiry is not
// checked here; the auth service owns that rule.
func (s *Store) GetSessionByToken(token string) (*models.Session, error) {
	query := `SELECT id, token, user_id, expires_at, created_at FROM sessions WHERE token = ?`
	row := s.DB.QueryRow(query, token)

	var sess models.Session
	if err := row.Scan(&sess.ID, &sess.Token, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

// DeleteSessionByToken removes every row carrying the token, so it is
// idempotent and also clears accidental duplicates.
func (s *Store) DeleteSessionByToken(token string) error {
	_, err := s.DB.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func (s *Store) DeleteExpiredSessions(now time.Time) (int64, error) {
	res, err := s.DB.Exec(`DELETE FROM sessions WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
