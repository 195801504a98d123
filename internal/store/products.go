package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DanNess-system/Jardin-Infinito/internal/models"
)

const productColumns = `id, titulo, descripcion, imagen, precio_original, precio_descuento, categoria, stock, activo, created_at, updated_at`

// ListProducts returns products ordered most-recently-created first.
// category and active are optional equality filters; a nil active means
// "don't filter on the flag".
func (s *Store) ListProducts(category string, active *bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var where []string
	var args []any

	if category != "" {
		where = append(where, "categoria = ?")
		args = append(args, category)
	}
	if active != nil {
		where = append(where, "activo = ?")
		args = append(args, *active)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	// id is the tie-breaker: CURRENT_TIMESTAMP only has second resolution
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProductByID returns (nil, nil) when no row matches.
func (s *Store) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	var p models.Product
	row := s.DB.QueryRow(query, id)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.OriginalPrice, &p.DiscountPrice, &p.Category, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProduct(p *models.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO products (titulo, descripcion, imagen, precio_original, precio_descuento, categoria, stock, activo, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.DB.Exec(query, p.Title, p.Description, p.Image, p.OriginalPrice, p.DiscountPrice, p.Category, p.Stock, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

// UpdateProductFields patches only the given columns, leaving the rest
// untouched. Keys are column names, already validated by the caller.
func (s *Store) UpdateProductFields(id int, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	// Deterministic column order keeps the statement stable
	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var set []string
	var args []any
	for _, col := range columns {
		set = append(set, col+" = ?")
		args = append(args, fields[col])
	}
	set = append(set, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, id)

	query := `UPDATE products SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	_, err := s.DB.Exec(query, args...)
	return err
}

// DeleteProduct reports sql.ErrNoRows when the id does not exist.
func (s *Store) DeleteProduct(id int) error {
	res, err := s.DB.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) CountProducts() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

func scanProduct(rows *sql.Rows, p *models.Product) error {
	return rows.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.OriginalPrice, &p.DiscountPrice, &p.Category, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
}
