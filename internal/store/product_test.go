package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"menuboard/internal/models"
)

// testProduct returns a valid product payload pointing at the given category.
func testProduct(name string, categoryID uuid.UUID) *models.Product {
	return &models.Product{
		CategoryID:  categoryID,
		Name:        name,
		Description: "",
		Price:       5,
		Image:       "",
		Active:      true,
		Sizes:       models.SizeList{},
	}
}

func TestProductCreateAndList(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)
	t.Cleanup(func() { cleanProducts(t, db, "test-prod-create") })

	created, err := s.Create(testProduct("test-prod-create", uuid.New()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("Create should assign an id")
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	count := 0
	for _, p := range all {
		if p.ID == created.ID {
			count++
			if p.Name != "test-prod-create" || p.Price != 5 {
				t.Errorf("listed product = %+v, fields do not match input", p)
			}
		}
	}
	if count != 1 {
		t.Errorf("created product appears %d times in List, want 1", count)
	}
}

func TestProductSizesRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)
	t.Cleanup(func() { cleanProducts(t, db, "test-prod-sizes") })

	p := testProduct("test-prod-sizes", uuid.New())
	p.Sizes = models.SizeList{
		{Size: "S", Price: 10},
		{Size: "L", Price: 15},
	}

	created, err := s.Create(p)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if len(got.Sizes) != 2 {
		t.Fatalf("sizes length = %d, want 2", len(got.Sizes))
	}
	// The sequence must come back in the same order.
	if got.Sizes[0] != (models.ProductSize{Size: "S", Price: 10}) {
		t.Errorf("sizes[0] = %+v, want {S 10}", got.Sizes[0])
	}
	if got.Sizes[1] != (models.ProductSize{Size: "L", Price: 15}) {
		t.Errorf("sizes[1] = %+v, want {L 15}", got.Sizes[1])
	}
}

func TestProductListByCategory(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)
	t.Cleanup(func() {
		cleanProducts(t, db, "test-prod-in", "test-prod-in-off", "test-prod-other")
	})

	cid := uuid.New()
	other := uuid.New()

	in, err := s.Create(testProduct("test-prod-in", cid))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	inactive := testProduct("test-prod-in-off", cid)
	inactive.Active = false
	if _, err := s.Create(inactive); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Create(testProduct("test-prod-other", other)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Both filters compose: right category AND active.
	got, err := s.ListByCategory(cid)
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != in.ID {
		t.Errorf("ListByCategory = %d items, want exactly the active product of the category", len(got))
	}

	// Unknown category id: empty result, not an error.
	empty, err := s.ListByCategory(uuid.New())
	if err != nil {
		t.Fatalf("ListByCategory on unknown id failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown category should yield no products, got %d", len(empty))
	}
}

func TestProductPatchSizesAndCategory(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)
	t.Cleanup(func() { cleanProducts(t, db, "test-prod-patch") })

	created, err := s.Create(testProduct("test-prod-patch", uuid.New()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newCat := uuid.New()
	err = s.Patch(created.ID, map[string]any{
		"categoryId": newCat.String(),
		"price":      7.5,
		"sizes":      []any{map[string]any{"size": "XL", "price": 20.0}},
	})
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}

	got, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.CategoryID != newCat {
		t.Errorf("categoryId = %s, want %s", got.CategoryID, newCat)
	}
	if got.Price != 7.5 {
		t.Errorf("price = %v, want 7.5", got.Price)
	}
	if len(got.Sizes) != 1 || got.Sizes[0].Size != "XL" {
		t.Errorf("sizes = %+v, want one XL entry", got.Sizes)
	}
	if got.Name != "test-prod-patch" {
		t.Error("name changed by unrelated patch")
	}
}

func TestProductDeleteNotFound(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	if err := s.Delete(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting a missing id should return ErrNotFound, got %v", err)
	}
}
