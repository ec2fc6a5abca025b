// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products on the public menu.
// Only active categories are shown to visitors.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder *int      `json:"sortOrder,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderKey returns the sort order for display, treating an absent
// sortOrder as 0. The stored value stays NULL — this is display-only.
func (c *Category) OrderKey() int {
	if c.SortOrder == nil {
		return 0
	}
	return *c.SortOrder
}
