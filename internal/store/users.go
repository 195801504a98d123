package store

import (
	"database/sql"

	"github.com/DanNess-system/Jardin-Infinito/internal/models"
)

// GetUserByEmail returns (nil, nil) when no user has that email.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, email, password, name, role FROM users WHERE email = ?`
	row := s.DB.QueryRow(query, email)

	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(id int) (*models.User, error) {
	query := `SELECT id, email, password, name, role FROM users WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser is mainly for seeding the initial admin
func (s *Store) CreateUser(user *models.User) error {
	query := `INSERT INTO users (email, password, name, role) VALUES (?, ?, ?, ?)`
	res, err := s.DB.Exec(query, user.Email, user.Password, user.Name, user.Role)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	return nil
}
