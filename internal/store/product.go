// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"menuboard/internal/models"
)

// ProductStore manages menu items in the database.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, category_id, name, description, price, image,
	active, sort_order, sizes, created_at`

var productPatchColumns = map[string]patchColumn{
	"categoryId":  {column: "category_id", convert: toUUID},
	"name":        {column: "name"},
	"description": {column: "description"},
	"price":       {column: "price"},
	"image":       {column: "image"},
	"active":      {column: "active"},
	"sortOrder":   {column: "sort_order", convert: toInt},
	"sizes":       {column: "sizes", convert: toJSONB},
}

// scanProduct scans a row into a Product struct.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price,
		&p.Image, &p.Active, &p.SortOrder, &p.Sizes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every product in insertion order.
func (s *ProductStore) List() ([]models.Product, error) {
	return s.list(`SELECT ` + productColumns + ` FROM products ORDER BY created_at, id`)
}

// ListActive returns only products with active = true, in insertion order.
func (s *ProductStore) ListActive() ([]models.Product, error) {
	return s.list(`SELECT ` + productColumns + ` FROM products WHERE active = true ORDER BY created_at, id`)
}

// ListByCategory returns the active products of one category. The lookup
// is served by the index on category_id. A category id with no products
// (including a deleted category) yields an empty result, not an error.
func (s *ProductStore) ListByCategory(categoryID uuid.UUID) ([]models.Product, error) {
	return s.list(`
		SELECT `+productColumns+`
		FROM products
		WHERE category_id = $1 AND active = true
		ORDER BY created_at, id
	`, categoryID)
}

func (s *ProductStore) list(query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a product by ID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// Create inserts a new product and returns it with the assigned id and
// creation timestamp. The referenced category is not checked to exist.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	row := s.db.QueryRow(`
		INSERT INTO products (category_id, name, description, price, image, active, sort_order, sizes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		p.CategoryID, p.Name, p.Description, p.Price, p.Image,
		p.Active, p.SortOrder, p.Sizes,
	)
	result, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return result, nil
}

// Patch merges the supplied fields into an existing product. Returns
// ErrNotFound when the id does not exist.
func (s *ProductStore) Patch(id uuid.UUID, fields map[string]any) error {
	return execPatch(s.db, "products", productPatchColumns, id, fields)
}

// Delete removes a product by ID. Returns ErrNotFound when the id does
// not exist.
func (s *ProductStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
