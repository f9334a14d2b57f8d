package catalog

import (
	"catalog-engine/internal/cache"
	"catalog-engine/internal/catalogerrors"
	"catalog-engine/internal/models"
	"catalog-engine/internal/query"
	"catalog-engine/internal/repository"
	"catalog-engine/utils"
	"context"
	"errors"
	"fmt"
)

// CatalogService answers catalog reads, manages saved toggles and applies
// catalog-management writes. Reads degrade to the fallback backend; writes
// never do.
type CatalogService struct {
	backend  repository.CatalogBackend
	fallback repository.CatalogBackend
	facets   cache.FacetCache
	defaults models.FacetSummary
}

// NewCatalogService creates a CatalogService. fallback serves reads while
// backend fails and may be the same value as backend; a nil facetCache
// disables caching.
func NewCatalogService(backend, fallback repository.CatalogBackend, facetCache cache.FacetCache, defaults models.FacetSummary) *CatalogService {
	if fallback == nil {
		fallback = backend
	}
	if facetCache == nil {
		facetCache = cache.NewMemoryCache(0)
	}
	return &CatalogService{
		backend:  backend,
		fallback: fallback,
		facets:   facetCache,
		defaults: defaults,
	}
}

// Mode reports which backend variant serves the catalog
func (s *CatalogService) Mode() repository.Mode {
	return s.backend.Mode()
}

// ListFacets returns the filter options over available items. It never fails:
// a backend outage yields the static default summary.
func (s *CatalogService) ListFacets(ctx context.Context) models.FacetSummary {
	if cached, ok, err := s.facets.Get(ctx); err != nil {
		utils.Warn("facet cache read failed", map[string]any{"error": err.Error()})
	} else if ok {
		return cached
	}

	summary, err := s.backend.Facets(ctx)
	if err != nil {
		utils.Warn("facet index unavailable, serving default facets", map[string]any{"error": err.Error()})
		return s.defaults
	}

	if err := s.facets.Set(ctx, summary); err != nil {
		utils.Warn("facet cache write failed", map[string]any{"error": err.Error()})
	}
	return summary
}

// ListItems returns one page of available items matching req. subject is the
// authenticated viewer or empty for anonymous callers.
func (s *CatalogService) ListItems(ctx context.Context, req models.FilterRequest, subject string) (models.ItemPage, error) {
	plan := query.Build(req)

	items, total, err := s.backend.ListItems(ctx, plan)
	if err != nil {
		if !s.canFallBack() {
			return models.ItemPage{}, fmt.Errorf("service: failed to list items: %w", err)
		}
		utils.Warn("catalog backend unavailable, serving fallback listing", map[string]any{"error": err.Error()})
		if items, total, err = s.fallback.ListItems(ctx, plan); err != nil {
			return models.ItemPage{}, fmt.Errorf("service: failed to list fallback items: %w", err)
		}
	}

	if err := s.markSaved(ctx, subject, items); err != nil {
		utils.Warn("saved lookup failed, listing without saved flags", map[string]any{"error": err.Error()})
	}

	return models.ItemPage{
		Items: items,
		Total: total,
		Page:  plan.Page,
		Limit: plan.Limit,
		Pages: query.Pages(total, plan.Limit),
	}, nil
}

// GetItem returns one item with the viewer's saved flag and reservation and
// the facility snapshot. Unknown ids yield catalogerrors.ErrItemNotFound.
func (s *CatalogService) GetItem(ctx context.Context, itemID, subject string) (models.ItemDetail, error) {
	if itemID == "" {
		return models.ItemDetail{}, fmt.Errorf("service: %w - empty item ID", catalogerrors.ErrItemNotFound)
	}

	item, err := s.backend.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrItemNotFound) || !s.canFallBack() {
			return models.ItemDetail{}, fmt.Errorf("service: failed to get item %s: %w", itemID, err)
		}
		utils.Warn("catalog backend unavailable, serving fallback item", map[string]any{"item_id": itemID, "error": err.Error()})
		fallbackItem, fbErr := s.fallback.GetItem(ctx, itemID)
		if fbErr != nil {
			return models.ItemDetail{}, fmt.Errorf("service: failed to get item %s: %w", itemID, err)
		}
		item = fallbackItem
	}

	detail := models.ItemDetail{Item: item}

	viewer, ok := s.lookupViewer(ctx, subject)
	if ok {
		items := []models.Item{detail.Item}
		if err := s.markSavedFor(ctx, viewer.ViewerID, items); err != nil {
			utils.Warn("saved lookup failed", map[string]any{"item_id": itemID, "error": err.Error()})
		}
		detail.Item = items[0]

		res, err := s.backend.ActiveReservation(ctx, viewer.ViewerID, itemID)
		if err != nil {
			utils.Warn("reservation lookup failed", map[string]any{"item_id": itemID, "error": err.Error()})
		}
		detail.Reservation = res
	}

	facility, err := s.backend.Facility(ctx)
	if err != nil && s.canFallBack() {
		utils.Warn("facility lookup failed, serving fallback facility", map[string]any{"error": err.Error()})
		facility, err = s.fallback.Facility(ctx)
	}
	if err != nil {
		utils.Warn("facility lookup failed", map[string]any{"error": err.Error()})
	}
	detail.Facility = facility

	return detail, nil
}

// ToggleSaved inverts the viewer's saved state for an item. A lost race is
// retried once and the retry's outcome is returned.
func (s *CatalogService) ToggleSaved(ctx context.Context, subject, itemID string) (models.ToggleResult, error) {
	if subject == "" {
		return models.ToggleResult{}, fmt.Errorf("service: %w - toggling a saved item", catalogerrors.ErrUnauthorized)
	}
	if itemID == "" {
		return models.ToggleResult{}, fmt.Errorf("service: %w - empty item ID", catalogerrors.ErrItemNotFound)
	}

	viewer, err := s.backend.ViewerBySubject(ctx, subject)
	if err != nil {
		return models.ToggleResult{}, fmt.Errorf("service: failed to resolve viewer: %w", err)
	}

	saved, err := s.backend.ToggleSaved(ctx, viewer.ViewerID, itemID)
	if errors.Is(err, catalogerrors.ErrConflict) {
		utils.Warn("saved toggle conflicted, retrying", map[string]any{"viewer_id": viewer.ViewerID, "item_id": itemID})
		saved, err = s.backend.ToggleSaved(ctx, viewer.ViewerID, itemID)
	}
	if err != nil {
		return models.ToggleResult{}, fmt.Errorf("service: failed to toggle saved item %s: %w", itemID, err)
	}

	return models.ToggleResult{ItemID: itemID, Saved: saved}, nil
}

// ListSavedItems returns the viewer's saved items, most recently saved first
func (s *CatalogService) ListSavedItems(ctx context.Context, subject string) ([]models.Item, error) {
	if subject == "" {
		return nil, fmt.Errorf("service: %w - listing saved items", catalogerrors.ErrUnauthorized)
	}

	viewer, err := s.backend.ViewerBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve viewer: %w", err)
	}

	items, err := s.backend.ListSavedItems(ctx, viewer.ViewerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list saved items: %w", err)
	}
	return items, nil
}

// EnsureViewer registers the authenticated subject on first use
func (s *CatalogService) EnsureViewer(ctx context.Context, subject, name string) (models.Viewer, error) {
	if subject == "" {
		return models.Viewer{}, fmt.Errorf("service: %w - registering viewer", catalogerrors.ErrUnauthorized)
	}
	if name == "" {
		name = subject
	}

	viewer, err := s.backend.EnsureViewer(ctx, subject, name)
	if err != nil {
		return models.Viewer{}, fmt.Errorf("service: failed to register viewer: %w", err)
	}
	return viewer, nil
}

// Profile returns the viewer with the number of items they saved
func (s *CatalogService) Profile(ctx context.Context, subject string) (models.ViewerProfile, error) {
	if subject == "" {
		return models.ViewerProfile{}, fmt.Errorf("service: %w - reading profile", catalogerrors.ErrUnauthorized)
	}

	viewer, err := s.backend.ViewerBySubject(ctx, subject)
	if err != nil {
		return models.ViewerProfile{}, fmt.Errorf("service: failed to resolve viewer: %w", err)
	}

	n, err := s.backend.CountSaved(ctx, viewer.ViewerID)
	if err != nil {
		return models.ViewerProfile{}, fmt.Errorf("service: failed to count saved items: %w", err)
	}
	return models.ViewerProfile{Viewer: viewer, SavedCount: n}, nil
}

func (s *CatalogService) canFallBack() bool {
	return s.fallback != nil && s.fallback != s.backend
}

// lookupViewer resolves subject to a viewer; unknown or failing lookups are
// treated as anonymous
func (s *CatalogService) lookupViewer(ctx context.Context, subject string) (models.Viewer, bool) {
	if subject == "" {
		return models.Viewer{}, false
	}
	viewer, err := s.backend.ViewerBySubject(ctx, subject)
	if err != nil {
		if !errors.Is(err, catalogerrors.ErrViewerNotFound) {
			utils.Warn("viewer lookup failed, treating as anonymous", map[string]any{"error": err.Error()})
		}
		return models.Viewer{}, false
	}
	return viewer, true
}

// markSaved sets the saved flag on items for subject with one batch lookup
func (s *CatalogService) markSaved(ctx context.Context, subject string, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	viewer, ok := s.lookupViewer(ctx, subject)
	if !ok {
		return nil
	}
	return s.markSavedFor(ctx, viewer.ViewerID, items)
}

func (s *CatalogService) markSavedFor(ctx context.Context, viewerID string, items []models.Item) error {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ItemID
	}

	saved, err := s.backend.SavedItemIDs(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Saved = saved[items[i].ItemID]
	}
	return nil
}
