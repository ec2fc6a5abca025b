// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"menuboard/internal/menu"
	"menuboard/internal/models"
	"menuboard/internal/reactive"
	"menuboard/internal/schema"
)

// Public serves the visitor-facing menu API. It only ever sees active
// records, re-sorted for display by sortOrder (absent ordering as 0)
// and then by name.
type Public struct {
	svc *menu.Service
}

// NewPublic creates the public handler group.
func NewPublic(svc *menu.Service) *Public {
	return &Public{svc: svc}
}

// Categories lists the active categories in display order.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	items, err := p.svc.ListActiveCategories()
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	sortCategories(items)
	writeJSON(w, http.StatusOK, items)
}

// ProductsByCategory lists the active products of one category in
// display order. An unknown or deleted category yields an empty list.
func (p *Public) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed category id")
		return
	}
	items, err := p.svc.ListProductsByCategory(id)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	sortProducts(items)
	writeJSON(w, http.StatusOK, items)
}

// Branches lists the active branches in display order.
func (p *Public) Branches(w http.ResponseWriter, r *http.Request) {
	items, err := p.svc.ListActiveBranches()
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	sortBranches(items)
	writeJSON(w, http.StatusOK, items)
}

// MenuStream delivers live query results as Server-Sent Events. The
// kind query parameter picks the watched collection (categories by
// default, branches, or products with a required category parameter).
// Each event carries the full latest result; the first event is the
// state at connect time.
func (p *Public) MenuStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub, err := p.subscribe(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case result, ok := <-sub.Updates():
			if !ok {
				return
			}
			payload, err := json.Marshal(sortedForStream(result))
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// subscribe builds the live query matching the request parameters.
func (p *Public) subscribe(r *http.Request) (*reactive.Subscription, error) {
	ctx := r.Context()
	switch kind := r.URL.Query().Get("kind"); kind {
	case "", schema.KindCategories:
		return p.svc.WatchActiveCategories(ctx)
	case schema.KindBranches:
		return p.svc.WatchActiveBranches(ctx)
	case schema.KindProducts:
		cid := r.URL.Query().Get("category")
		if cid == "" {
			return nil, fmt.Errorf("products stream requires a category parameter")
		}
		id, err := uuid.Parse(cid)
		if err != nil {
			return nil, fmt.Errorf("malformed category id")
		}
		return p.svc.WatchProductsByCategory(ctx, id)
	default:
		return nil, fmt.Errorf("unknown stream kind %q", kind)
	}
}

// sortedForStream applies display ordering to a live query result.
func sortedForStream(result any) any {
	switch items := result.(type) {
	case []models.Category:
		sortCategories(items)
	case []models.Product:
		sortProducts(items)
	case []models.Branch:
		sortBranches(items)
	}
	return result
}

func sortCategories(items []models.Category) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].OrderKey() != items[j].OrderKey() {
			return items[i].OrderKey() < items[j].OrderKey()
		}
		return items[i].Name < items[j].Name
	})
}

func sortProducts(items []models.Product) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].OrderKey() != items[j].OrderKey() {
			return items[i].OrderKey() < items[j].OrderKey()
		}
		return items[i].Name < items[j].Name
	})
}

func sortBranches(items []models.Branch) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].OrderKey() != items[j].OrderKey() {
			return items[i].OrderKey() < items[j].OrderKey()
		}
		return items[i].Name < items[j].Name
	})
}
