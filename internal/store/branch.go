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

// BranchStore manages business locations in the database.
type BranchStore struct {
	db *sql.DB
}

// NewBranchStore returns a new BranchStore.
func NewBranchStore(db *sql.DB) *BranchStore {
	return &BranchStore{db: db}
}

const branchColumns = `id, name, address, phone, sort_order, active, created_at`

var branchPatchColumns = map[string]patchColumn{
	"name":      {column: "name"},
	"address":   {column: "address"},
	"phone":     {column: "phone"},
	"sortOrder": {column: "sort_order", convert: toInt},
	"active":    {column: "active"},
}

func scanBranch(scanner interface{ Scan(...any) error }) (*models.Branch, error) {
	var b models.Branch
	err := scanner.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.SortOrder, &b.Active, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns every branch in insertion order.
func (s *BranchStore) List() ([]models.Branch, error) {
	return s.list(`SELECT ` + branchColumns + ` FROM branches ORDER BY created_at, id`)
}

// ListActive returns only branches with active = true, in insertion order.
func (s *BranchStore) ListActive() ([]models.Branch, error) {
	return s.list(`SELECT ` + branchColumns + ` FROM branches WHERE active = true ORDER BY created_at, id`)
}

func (s *BranchStore) list(query string, args ...any) ([]models.Branch, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var items []models.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// FindByID retrieves a branch by ID. Returns nil if not found.
func (s *BranchStore) FindByID(id uuid.UUID) (*models.Branch, error) {
	row := s.db.QueryRow(`SELECT `+branchColumns+` FROM branches WHERE id = $1`, id)
	b, err := scanBranch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find branch by id: %w", err)
	}
	return b, nil
}

// Create inserts a new branch and returns it with the assigned id and
// creation timestamp.
func (s *BranchStore) Create(b *models.Branch) (*models.Branch, error) {
	row := s.db.QueryRow(`
		INSERT INTO branches (name, address, phone, sort_order, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+branchColumns,
		b.Name, b.Address, b.Phone, b.SortOrder, b.Active,
	)
	result, err := scanBranch(row)
	if err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}
	return result, nil
}

// Patch merges the supplied fields into an existing branch. Returns
// ErrNotFound when the id does not exist.
func (s *BranchStore) Patch(id uuid.UUID, fields map[string]any) error {
	return execPatch(s.db, "branches", branchPatchColumns, id, fields)
}

// Delete removes a branch by ID. Returns ErrNotFound when the id does
// not exist.
func (s *BranchStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete branch rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
