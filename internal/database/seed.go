package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: one category
// with a sample product, and one branch. It is a no-op when any category
// already exists, so it is safe to run on every startup in dev mode.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	var categoryID string
	err := db.QueryRow(`
		INSERT INTO categories (name, sort_order, active)
		VALUES ('Drinks', 1, true)
		RETURNING id
	`).Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO products (category_id, name, description, price, image, active, sort_order, sizes)
		VALUES ($1, 'Cola', 'Ice cold', 5, '', true, 1, '[{"size":"S","price":4},{"size":"L","price":6}]')
	`, categoryID)
	if err != nil {
		return fmt.Errorf("seed insert product: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO branches (name, address, phone, sort_order, active)
		VALUES ('Downtown', '1 Main St', '555-0101', 1, true)
	`)
	if err != nil {
		return fmt.Errorf("seed insert branch: %w", err)
	}

	slog.Info("database seeded with sample menu data")
	return nil
}
