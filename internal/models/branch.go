// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a physical location of the business, shown on the public
// site when active.
type Branch struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	SortOrder *int      `json:"sortOrder,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderKey returns the sort order for display, treating an absent
// sortOrder as 0.
func (b *Branch) OrderKey() int {
	if b.SortOrder == nil {
		return 0
	}
	return *b.SortOrder
}
