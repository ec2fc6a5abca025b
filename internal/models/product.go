// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProductSize is a named size variant with its own price.
type ProductSize struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// SizeList is an ordered sequence of size variants, stored as a JSONB
// column. An empty list means the product is sold at its base price only.
type SizeList []ProductSize

// Value serializes the size list for storage. A nil list is stored as
// an empty JSON array so reads never see SQL NULL.
func (s SizeList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan deserializes a JSONB column into the size list.
func (s *SizeList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = SizeList{}
		return nil
	default:
		return fmt.Errorf("scan sizes: unsupported type %T", src)
	}
}

// Product is a single menu item. CategoryID references a Category by
// convention only — there is no database constraint, so a product can
// outlive its category and readers must tolerate the dangling reference.
type Product struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"` // empty string = no image
	Active      bool      `json:"active"`
	SortOrder   *int      `json:"sortOrder,omitempty"`
	Sizes       SizeList  `json:"sizes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OrderKey returns the sort order for display, treating an absent
// sortOrder as 0.
func (p *Product) OrderKey() int {
	if p.SortOrder == nil {
		return 0
	}
	return *p.SortOrder
}

// HasSizes reports whether the product has size variants. When false,
// the UI shows the base Price alone.
func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// HasImage reports whether an image URL is set.
func (p *Product) HasImage() bool {
	return p.Image != ""
}
