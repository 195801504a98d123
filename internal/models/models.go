package models

import (
	"time"
)

// Product is a row in the local products table, managed through the admin
// panel. JSON names follow the storefront wire format.
type Product struct {
	ID            int       `json:"id"`
	Title         string    `json:"titulo"`
	Description   string    `json:"descripcion"`
	Image         string    `json:"imagen"`
	OriginalPrice float64   `json:"precioOriginal"`
	DiscountPrice float64   `json:"precioDescuento"`
	Category      string    `json:"categoria"`
	Stock         int       `json:"stock"`
	Active        bool      `json:"activo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash
	Name     string `json:"name"`
	Role     string `json:"role"` // "admin"
}

// SessionUser is the public slice of a User exposed to the browser.
type SessionUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is one live login. Expired rows are deleted lazily on lookup.
type Session struct {
	ID        int       `json:"id"`
	Token     string    `json:"token"`
	UserID    int       `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
