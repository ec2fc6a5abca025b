// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"menuboard/internal/menu"
)

// Admin serves the management API: full CRUD plus visibility toggles
// for categories, products and branches, and the image upload flow.
// The admin view sees every record, active or not, in insertion order.
type Admin struct {
	svc *menu.Service
}

// NewAdmin creates the admin handler group.
func NewAdmin(svc *menu.Service) *Admin {
	return &Admin{svc: svc}
}

////////////////////////////////////////////////////////////
// Categories
////////////////////////////////////////////////////////////

// CategoriesList returns every category.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.svc.ListCategories()
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CategoryCreate inserts a new category from a full payload.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	created, err := a.svc.CreateCategory(r.Context(), payload)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate applies a full payload to an existing category.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	payload, err := readPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := a.svc.UpdateCategory(r.Context(), id, payload); err != nil {
		writeOperationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CategoryDelete removes a category. Its products keep their (now
// dangling) categoryId.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	if err := a.svc.DeleteCategory(r.Context(), id); err != nil {
		writeOperationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CategoryActivate makes a category publicly visible.
func (a *Admin) CategoryActivate(w http.ResponseWriter, r *http.Request) {
	a.setCategoryActive(w, r, true)
}

// CategoryDeactivate hides a category from the public menu. Its
// products stay individually visible through their own listings.
func (a *Admin) CategoryDeactivate(w http.ResponseWriter, r *http.Request) {
	a.setCategoryActive(w, r, false)
}

func (a *Admin) setCategoryActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	if err := a.svc.SetCategoryActive(r.Context(), id, active); err != nil {
		writeOperationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

////////////////////////////////////////////////////////////
// Products
////////////////////////////////////////////////////////////

// ProductsList returns every product.
func (a *Admin) ProductsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.svc.ListProducts()
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ProductCreate inserts a new product from a full payload.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	created, err := a.svc.CreateProduct(r.Context(), payload)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ProductUpdate applies a full payload to an existing product.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	payload, err := readPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := a.svc.UpdateProduct(r.Context(), id, payload); err != nil {
		writeOperationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProductDelete removes a product.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	if err := a.svc.DeleteProduct(r.Context(), id); err != nil {
		writeOperationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProductActivate makes a product publicly visible.
func (a *Admin) ProductActivate(w http.ResponseWriter, r *http.Request) {
	a.setProductActive(w, r, true)
}

// ProductDeactivate hides a product.
func (a *Admin) ProductDeactivate(w http.ResponseWriter, r *http.Request) {
	a.setProductActive(w, r, false)
}

func (a *Admin) setProductActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	if err := a.svc.SetProductActive(r.Context(), id, active); err != nil {
		writeOperationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

////////////////////////////////////////////////////////////
// Branches
////////////////////////////////////////////////////////////

// BranchesList returns every branch.
func (a *Admin) BranchesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.svc.ListBranches()
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// BranchCreate inserts a new branch from a full payload.
func (a *Admin) BranchCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	created, err := a.svc.CreateBranch(r.Context(), payload)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// BranchUpdate applies a full payload to an existing branch.
func (a *Admin) BranchUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	payload, err := readPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := a.svc.UpdateBranch(r.Context(), id, payload); err != nil {
		writeOperationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BranchDelete removes a branch.
func (a *Admin) BranchDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	if err := a.svc.DeleteBranch(r.Context(), id); err != nil {
		writeOperationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BranchActivate makes a branch publicly visible.
func (a *Admin) BranchActivate(w http.ResponseWriter, r *http.Request) {
	a.setBranchActive(w, r, true)
}

// BranchDeactivate hides a branch.
func (a *Admin) BranchDeactivate(w http.ResponseWriter, r *http.Request) {
	a.setBranchActive(w, r, false)
}

func (a *Admin) setBranchActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return
	}
	if err := a.svc.SetBranchActive(r.Context(), id, active); err != nil {
		writeOperationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
