package menu

import (
	"github.com/google/uuid"

	"menuboard/internal/models"
)

// The payload converters below run only after schema validation, so the
// type assertions cannot fail on well-formed input.

func categoryFromPayload(p map[string]any) *models.Category {
	return &models.Category{
		Name:      p["name"].(string),
		SortOrder: optionalInt(p, "sortOrder"),
		Active:    p["active"].(bool),
	}
}

func productFromPayload(p map[string]any) *models.Product {
	return &models.Product{
		CategoryID:  uuid.MustParse(p["categoryId"].(string)),
		Name:        p["name"].(string),
		Description: p["description"].(string),
		Price:       asFloat(p["price"]),
		Image:       p["image"].(string),
		Active:      p["active"].(bool),
		SortOrder:   optionalInt(p, "sortOrder"),
		Sizes:       sizesFromPayload(p["sizes"]),
	}
}

func branchFromPayload(p map[string]any) *models.Branch {
	return &models.Branch{
		Name:      p["name"].(string),
		Address:   p["address"].(string),
		Phone:     p["phone"].(string),
		SortOrder: optionalInt(p, "sortOrder"),
		Active:    p["active"].(bool),
	}
}

func sizesFromPayload(v any) models.SizeList {
	entries := v.([]any)
	sizes := make(models.SizeList, 0, len(entries))
	for _, raw := range entries {
		entry := raw.(map[string]any)
		sizes = append(sizes, models.ProductSize{
			Size:  entry["size"].(string),
			Price: asFloat(entry["price"]),
		})
	}
	return sizes
}

// optionalInt reads an optional integer field; absence stays nil.
func optionalInt(p map[string]any, key string) *int {
	v, ok := p[key]
	if !ok {
		return nil
	}
	n := int(asFloat(v))
	return &n
}

// asFloat normalizes the numeric types validation accepts.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
