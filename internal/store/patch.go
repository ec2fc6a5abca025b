// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// patchColumn maps a payload field name to its SQL column and an optional
// value converter applied before binding.
type patchColumn struct {
	column  string
	convert func(any) (any, error)
}

// execPatch runs a partial update, setting only the columns present in
// the payload. The id column is never part of the SET list — callers
// strip "id" from the payload before validation. Returns ErrNotFound
// when no row matches the id. With nothing to set, it still verifies the
// row exists so the not-found contract holds for empty patches.
func execPatch(db *sql.DB, table string, columns map[string]patchColumn, id uuid.UUID, payload map[string]any) error {
	if len(payload) == 0 {
		var exists bool
		err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("patch %s: %w", table, err)
		}
		if !exists {
			return ErrNotFound
		}
		return nil
	}

	// Deterministic column order keeps the generated SQL stable.
	names := make([]string, 0, len(payload))
	for name := range payload {
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for _, name := range names {
		pc, ok := columns[name]
		if !ok {
			return fmt.Errorf("patch %s: no column for field %q", table, name)
		}
		value := payload[name]
		if pc.convert != nil {
			converted, err := pc.convert(value)
			if err != nil {
				return fmt.Errorf("patch %s field %q: %w", table, name, err)
			}
			value = converted
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", pc.column, len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		table, strings.Join(sets, ", "), len(args))

	res, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("patch %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("patch %s rows affected: %w", table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// toInt converts JSON-decoded numbers to int64 for INTEGER columns.
func toInt(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	}
	return nil, fmt.Errorf("expected integer, got %T", v)
}

// toUUID parses an id string for UUID columns.
func toUUID(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected id string, got %T", v)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	return id, nil
}

// toJSONB marshals a decoded array for JSONB columns.
func toJSONB(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return b, nil
}
