// Package reactive delivers live-updating query results. Every write to
// the store publishes a change event tagged by kind; active queries
// subscribe, re-evaluate on matching events, and redeliver their latest
// result. Rapid successive writes are coalesced: subscribers see every
// settled state exactly once, never an older state after a newer one.
package reactive

import "github.com/google/uuid"

// KindAll is the wildcard kind used when distinct events were collapsed
// under backpressure. It matches every query.
const KindAll = "*"

// Event describes one store mutation. For product events, CategoryID
// carries the category-index key when the writer knows which single
// category is affected; uuid.Nil means the event may affect any category
// (for example a patch that might have moved the product).
type Event struct {
	Kind       string    `json:"kind"`
	CategoryID uuid.UUID `json:"categoryId"`
}

// Matches reports whether the event concerns the given kind.
func (e Event) Matches(kind string) bool {
	return e.Kind == KindAll || e.Kind == kind
}

// MatchesCategory reports whether a product event concerns the given
// category. Untagged product events match every category.
func (e Event) MatchesCategory(kind string, categoryID uuid.UUID) bool {
	if !e.Matches(kind) {
		return false
	}
	if e.Kind == KindAll || e.CategoryID == uuid.Nil {
		return true
	}
	return e.CategoryID == categoryID
}
