// Package auth implements credential hashing and the token-session lifecycle
// backing the admin panel login.
package auth

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/DanNess-system/Jardin-Infinito/internal/models"
	"github.com/DanNess-system/Jardin-Infinito/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 24 * time.Hour

const bcryptCost = 10

type Service struct {
	store *store.Store
	log   *slog.Logger

	// now is swappable so tests can move the clock
	now func() time.Time
}

func NewService(s *store.Store, log *slog.Logger) *Service {
	return &Service{store: s, log: log, now: time.Now}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// Authenticate returns the user matching email+password, or (nil, nil) when
// the email is unknown or the password does not verify.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !VerifyPassword(password, user.Password) {
		return nil, nil
	}
	return user, nil
}

// CreateSession persists a fresh session for the user and returns its opaque
// token. There is no cap on concurrent sessions per user.
func (s *Service) CreateSession(userID int) (string, error) {
	token, err := newSessionToken(s.now())
	if err != nil {
		return "", err
	}
	if err := s.store.CreateSession(token, userID, s.now().Add(SessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// VerifySession returns the session's user, or (nil, nil) when the token is
// unknown or expired. An expired row is deleted before returning, so it is
// never seen again.
func (s *Service) VerifySession(token string) (*models.SessionUser, error) {
	sess, err := s.store.GetSessionByToken(token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	if sess.ExpiresAt.Before(s.now()) {
		if err := s.store.DeleteSessionByToken(token); err != nil {
			return nil, err
		}
		return nil, nil
	}

	user, err := s.store.GetUserByID(sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// The user behind the session is gone; the session is worthless
		return nil, nil
	}

	return &models.SessionUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

// DeleteSession is idempotent; deleting an unknown token is not an error.
func (s *Service) DeleteSession(token string) error {
	return s.store.DeleteSessionByToken(token)
}

// CleanExpiredSessions bulk-deletes sessions past their expiry. Meant to run
// periodically; nothing user-facing triggers it.
func (s *Service) CleanExpiredSessions() error {
	deleted, err := s.store.DeleteExpiredSessions(s.now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.log.Info("Cleaned expired sessions", "count", deleted)
	}
	return nil
}

// EnsureDefaultAdmin creates the administrator account if no user exists with
// that email. Safe to call on every boot.
func (s *Service) EnsureDefaultAdmin(email, password string) error {
	existing, err := s.store.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{Email: email, Password: hash, Name: "Administrador", Role: "admin"}
	if err := s.store.CreateUser(admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}
	s.log.Info("Default admin user created", "email", email)
	return nil
}

// newSessionToken builds an opaque URL-safe token: a crypto-random component
// and the current timestamp, both base-36 encoded.
func newSessionToken(now time.Time) (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	random := new(big.Int).SetBytes(buf[:]).Text(36)
	return random + strconv.FormatInt(now.UnixMilli(), 36), nil
}
