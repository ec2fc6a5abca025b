// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package menu is the query/mutation façade: the only sanctioned entry
// points into the store. Each operation validates its payload against
// the schema, executes exactly one store primitive, and publishes a
// change event on success. Store errors surface unchanged — callers see
// schema.ValidationError, store.ErrNotFound, or an opaque transport
// error, never a transformed one.
package menu

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"menuboard/internal/models"
	"menuboard/internal/reactive"
	"menuboard/internal/schema"
	"menuboard/internal/storage"
	"menuboard/internal/store"
)

// ErrStorageUnavailable is returned by blob operations when no object
// storage is configured.
var ErrStorageUnavailable = errors.New("object storage is not configured")

// BlobStore is the slice of the object storage client the façade uses:
// issuing upload targets, resolving references, and discarding blobs
// that no product references anymore.
type BlobStore interface {
	RequestUploadTarget(ctx context.Context) (*storage.UploadTarget, error)
	ResolveURL(ctx context.Context, ref string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// Service wires the per-kind stores, the change broker and the blob
// storage façade into the public operation set.
type Service struct {
	categories *store.CategoryStore
	products   *store.ProductStore
	branches   *store.BranchStore
	blobs      BlobStore
	broker     reactive.Broker
}

// NewService builds the façade. blobs may be nil when object storage is
// not configured; the upload operations then fail cleanly.
func NewService(categories *store.CategoryStore, products *store.ProductStore, branches *store.BranchStore, blobs BlobStore, broker reactive.Broker) *Service {
	return &Service{
		categories: categories,
		products:   products,
		branches:   branches,
		blobs:      blobs,
		broker:     broker,
	}
}

// publish announces a mutation to subscribers. Delivery is best-effort:
// a broker failure never fails the mutation that already committed.
func (s *Service) publish(ctx context.Context, ev reactive.Event) {
	if err := s.broker.Publish(ctx, ev); err != nil {
		slog.Error("change event publish failed", "kind", ev.Kind, "error", err)
	}
}

////////////////////////////////////////////////////////////
// Categories
////////////////////////////////////////////////////////////

// ListCategories returns every category.
func (s *Service) ListCategories() ([]models.Category, error) {
	return s.categories.List()
}

// ListActiveCategories returns the categories visible on the public menu.
func (s *Service) ListActiveCategories() ([]models.Category, error) {
	return s.categories.ListActive()
}

// CreateCategory validates a full category payload and inserts it.
func (s *Service) CreateCategory(ctx context.Context, payload map[string]any) (*models.Category, error) {
	if err := schema.Validate(schema.Category, payload); err != nil {
		return nil, err
	}
	created, err := s.categories.Create(categoryFromPayload(payload))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindCategories})
	return created, nil
}

// UpdateCategory applies a full category payload to an existing id. An
// "id" field in the payload is stripped, never merged.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, payload map[string]any) error {
	delete(payload, "id")
	if err := schema.Validate(schema.Category, payload); err != nil {
		return err
	}
	if err := s.categories.Patch(id, payload); err != nil {
		return err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindCategories})
	return nil
}

// DeleteCategory removes a category. Its products are left untouched:
// there is no cascade, their categoryId is left dangling and readers
// must tolerate it.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(id); err != nil {
		return err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindCategories})
	return nil
}

// SetCategoryActive toggles a category's public visibility, leaving
// every other field unchanged.
func (s *Service) SetCategoryActive(ctx context.Context, id uuid.UUID, active bool) error {
	fields := map[string]any{"active": active}
	if err := schema.ValidatePatch(schema.Category, fields); err != nil {
		return err
	}
	if err := s.categories.Patch(id, fields); err != nil {
		return err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindCategories})
	return nil
}

////////////////////////////////////////////////////////////
// Products
////////////////////////////////////////////////////////////

// ListProducts returns every product.
func (s *Service) ListProducts() ([]models.Product, error) {
	return s.products.List()
}

// ListActiveProducts returns every active product.
func (s *Service) ListActiveProducts() ([]models.Product, error) {
	return s.products.ListActive()
}

// ListProductsByCategory returns the active products of one category.
// Both conditions are required; an empty result is valid and distinct
// from a not-found error.
func (s *Service) ListProductsByCategory(categoryID uuid.UUID) ([]models.Product, error) {
	return s.products.ListByCategory(categoryID)
}

// CreateProduct validates a full product payload and inserts it. The
// referenced category is not required to exist.
func (s *Service) CreateProduct(ctx context.Context, payload map[string]any) (*models.Product, error) {
	if err := schema.Validate(schema.Product, payload); err != nil {
		return nil, err
	}
	created, err := s.products.Create(productFromPayload(payload))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindProducts, CategoryID: created.CategoryID})
	return created, nil
}

// UpdateProduct applies a full product payload to an existing id. The
// event is left untagged because the update may have moved the product
// out of a category whose subscribers also need to re-evaluate. A
// replaced image has its old blob discarded.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, payload map[string]any) error {
	delete(payload, "id")
	if err := schema.Validate(schema.Product, payload); err != nil {
		return err
	}
	prior, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.products.Patch(id, payload); err != nil {
		return err
	}
	if prior != nil {
		next, _ := payload["image"].(string)
		if prior.Image != "" && prior.Image != next {
			s.discardBlob(ctx, prior.Image)
		}
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindProducts})
	return nil
}

// DeleteProduct removes a product and discards its image blob.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	prior, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return err
	}
	if prior != nil && prior.Image != "" {
		s.discardBlob(ctx, prior.Image)
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindProducts})
	return nil
}

// SetProductActive toggles a product's visibility, leaving every other
// field unchanged.
func (s *Service) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	fields := map[string]any{"active": active}
	if err := schema.ValidatePatch(schema.Product, fields); err != nil {
		return err
	}
	if err := s.products.Patch(id, fields); err != nil {
		return err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindProducts})
	return nil
}

////////////////////////////////////////////////////////////
// Branches
////////////////////////////////////////////////////////////

// ListBranches returns every branch.
func (s *Service) ListBranches() ([]models.Branch, error) {
	return s.branches.List()
}

// ListActiveBranches returns the branches shown on the public site.
func (s *Service) ListActiveBranches() ([]models.Branch, error) {
	return s.branches.ListActive()
}

// CreateBranch validates a full branch payload and inserts it.
func (s *Service) CreateBranch(ctx context.Context, payload map[string]any) (*models.Branch, error) {
	if err := schema.Validate(schema.Branch, payload); err != nil {
		return nil, err
	}
	created, err := s.branches.Create(branchFromPayload(payload))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindBranches})
	return created, nil
}

// UpdateBranch applies a full branch payload to an existing id.
func (s *Service) UpdateBranch(ctx context.Context, id uuid.UUID, payload map[string]any) error {
	delete(payload, "id")
	if err := schema.Validate(schema.Branch, payload); err != nil {
		return err
	}
	if err := s.branches.Patch(id, payload); err != nil {
		return err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindBranches})
	return nil
}

// DeleteBranch removes a branch.
func (s *Service) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	if err := s.branches.Delete(id); err != nil {
		return err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindBranches})
	return nil
}

// SetBranchActive toggles a branch's visibility.
func (s *Service) SetBranchActive(ctx context.Context, id uuid.UUID, active bool) error {
	fields := map[string]any{"active": active}
	if err := schema.ValidatePatch(schema.Branch, fields); err != nil {
		return err
	}
	if err := s.branches.Patch(id, fields); err != nil {
		return err
	}
	s.publish(ctx, reactive.Event{Kind: schema.KindBranches})
	return nil
}

////////////////////////////////////////////////////////////
// Uploads
////////////////////////////////////////////////////////////

// RequestUploadTarget issues a one-time write destination for an image.
func (s *Service) RequestUploadTarget(ctx context.Context) (*storage.UploadTarget, error) {
	if s.blobs == nil {
		return nil, ErrStorageUnavailable
	}
	return s.blobs.RequestUploadTarget(ctx)
}

// ResolveBlobURL converts a blob reference into a durable URL, or ""
// when the reference does not correspond to a stored blob.
func (s *Service) ResolveBlobURL(ctx context.Context, ref string) (string, error) {
	if s.blobs == nil {
		return "", ErrStorageUnavailable
	}
	return s.blobs.ResolveURL(ctx, ref)
}

// discardBlob removes the object behind an image URL that no record
// references anymore. Best effort: the mutation already committed, a
// storage failure only leaves an orphaned object behind.
func (s *Service) discardBlob(ctx context.Context, imageURL string) {
	if s.blobs == nil {
		return
	}
	key, ok := s.blobs.KeyFromURL(imageURL)
	if !ok {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		slog.Error("blob delete failed", "key", key, "error", err)
	}
}

////////////////////////////////////////////////////////////
// Live queries
////////////////////////////////////////////////////////////

// WatchActiveCategories subscribes to the public category list.
func (s *Service) WatchActiveCategories(ctx context.Context) (*reactive.Subscription, error) {
	return reactive.Watch(ctx, s.broker,
		func(ev reactive.Event) bool { return ev.Matches(schema.KindCategories) },
		func() (any, error) { return s.ListActiveCategories() },
	)
}

// WatchProductsByCategory subscribes to the active products of one
// category. Writes to other categories do not recompute it.
func (s *Service) WatchProductsByCategory(ctx context.Context, categoryID uuid.UUID) (*reactive.Subscription, error) {
	return reactive.Watch(ctx, s.broker,
		func(ev reactive.Event) bool { return ev.MatchesCategory(schema.KindProducts, categoryID) },
		func() (any, error) { return s.ListProductsByCategory(categoryID) },
	)
}

// WatchActiveBranches subscribes to the public branch list.
func (s *Service) WatchActiveBranches(ctx context.Context) (*reactive.Subscription, error) {
	return reactive.Watch(ctx, s.broker,
		func(ev reactive.Event) bool { return ev.Matches(schema.KindBranches) },
		func() (any, error) { return s.ListActiveBranches() },
	)
}
