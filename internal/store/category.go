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

// CategoryStore manages menu categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, sort_order, active, created_at`

// categoryPatchColumns maps payload field names to columns for partial
// updates. The id is never patchable.
var categoryPatchColumns = map[string]patchColumn{
	"name":      {column: "name"},
	"sortOrder": {column: "sort_order", convert: toInt},
	"active":    {column: "active"},
}

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.SortOrder, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every category in insertion order.
func (s *CategoryStore) List() ([]models.Category, error) {
	return s.list(`SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at, id`)
}

// ListActive returns only categories with active = true, in insertion order.
func (s *CategoryStore) ListActive() ([]models.Category, error) {
	return s.list(`SELECT ` + categoryColumns + ` FROM categories WHERE active = true ORDER BY created_at, id`)
}

func (s *CategoryStore) list(query string, args ...any) ([]models.Category, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it with the assigned id and
// creation timestamp.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, sort_order, active)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.SortOrder, c.Active,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Patch merges the supplied fields into an existing category. Returns
// ErrNotFound when the id does not exist.
func (s *CategoryStore) Patch(id uuid.UUID, fields map[string]any) error {
	return execPatch(s.db, "categories", categoryPatchColumns, id, fields)
}

// Delete removes a category by ID. Products referencing it are left in
// place — there is no cascade. Returns ErrNotFound when the id does not
// exist.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
