package repository

import (
	"catalog-engine/internal/catalogerrors"
	"catalog-engine/internal/models"
	"catalog-engine/internal/query"
	"catalog-engine/utils"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Mode names the backend variant selected at startup
type Mode string

const (
	ModeStatic    Mode = "static"
	ModePersisted Mode = "persisted"
)

// CatalogBackend defines the storage contract of the catalog engine.
// Both variants evaluate the same query.Plan.
type CatalogBackend interface {
	Facets(ctx context.Context) (models.FacetSummary, error)
	ListItems(ctx context.Context, plan query.Plan) ([]models.Item, int, error)
	GetItem(ctx context.Context, itemID string) (models.Item, error)

	ViewerBySubject(ctx context.Context, subject string) (models.Viewer, error)
	EnsureViewer(ctx context.Context, subject, name string) (models.Viewer, error)

	SavedItemIDs(ctx context.Context, viewerID string, itemIDs []string) (map[string]bool, error)
	ToggleSaved(ctx context.Context, viewerID, itemID string) (bool, error)
	ListSavedItems(ctx context.Context, viewerID string) ([]models.Item, error)
	CountSaved(ctx context.Context, viewerID string) (int, error)

	ActiveReservation(ctx context.Context, viewerID, itemID string) (*models.Reservation, error)
	Facility(ctx context.Context) (*models.Facility, error)

	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	UpdateItem(ctx context.Context, itemID string, update models.ItemUpdate) (models.Item, error)
	DeleteItem(ctx context.Context, itemID string) error

	Mode() Mode
}

// StaticBackend serves a fixed dataset from memory. The item set is never
// mutated after construction; viewers and saved relations live only as long
// as the process.
type StaticBackend struct {
	items    []models.Item
	byID     map[string]models.Item
	facility models.Facility
	facets   models.FacetSummary

	mu      sync.RWMutex
	viewers map[string]models.Viewer     // key: subject
	saved   map[string]map[string]uint64 // key: viewerID -> itemID -> save sequence
	seq     uint64
}

// NewStaticBackend creates a StaticBackend over the given dataset
func NewStaticBackend(ds Dataset) *StaticBackend {
	items := make([]models.Item, len(ds.Items))
	copy(items, ds.Items)

	byID := make(map[string]models.Item, len(items))
	for _, it := range items {
		byID[it.ItemID] = it
	}

	return &StaticBackend{
		items:    items,
		byID:     byID,
		facility: ds.Facility,
		facets:   SummarizeFacets(items),
		viewers:  make(map[string]models.Viewer),
		saved:    make(map[string]map[string]uint64),
	}
}

// Mode reports ModeStatic
func (r *StaticBackend) Mode() Mode { return ModeStatic }

// Facets returns the summary computed once over the dataset
func (r *StaticBackend) Facets(_ context.Context) (models.FacetSummary, error) {
	return r.facets.Clone(), nil
}

// ListItems filters, orders and pages the dataset with the plan
func (r *StaticBackend) ListItems(_ context.Context, plan query.Plan) ([]models.Item, int, error) {
	matched := make([]models.Item, 0, len(r.items))
	for _, it := range r.items {
		if plan.Matches(it) {
			matched = append(matched, cloneItem(it))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return plan.Compare(matched[i], matched[j]) < 0
	})

	total := len(matched)
	start, end, ok := plan.Window(total)
	if !ok {
		return []models.Item{}, total, nil
	}
	return matched[start:end], total, nil
}

// GetItem returns an item of any status
func (r *StaticBackend) GetItem(_ context.Context, itemID string) (models.Item, error) {
	it, ok := r.byID[itemID]
	if !ok {
		return models.Item{}, fmt.Errorf("get item %s: %w", itemID, catalogerrors.ErrItemNotFound)
	}
	return cloneItem(it), nil
}

// ViewerBySubject returns the viewer registered for an identity-provider subject
func (r *StaticBackend) ViewerBySubject(_ context.Context, subject string) (models.Viewer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.viewers[subject]
	if !ok {
		return models.Viewer{}, fmt.Errorf("get viewer %s: %w", subject, catalogerrors.ErrViewerNotFound)
	}
	return v, nil
}

// EnsureViewer returns the viewer for subject, creating it on first use
func (r *StaticBackend) EnsureViewer(_ context.Context, subject, name string) (models.Viewer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.viewers[subject]; ok {
		return v, nil
	}

	v := models.Viewer{
		ViewerID:  utils.GenerateID(),
		Subject:   subject,
		Name:      name,
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	r.viewers[subject] = v
	return v, nil
}

// SavedItemIDs reports which of itemIDs the viewer has saved, in one pass
func (r *StaticBackend) SavedItemIDs(_ context.Context, viewerID string, itemIDs []string) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]bool, len(itemIDs))
	set := r.saved[viewerID]
	for _, id := range itemIDs {
		if _, ok := set[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

// ToggleSaved inverts the saved state of (viewer, item) and returns the new state
func (r *StaticBackend) ToggleSaved(_ context.Context, viewerID, itemID string) (bool, error) {
	if _, ok := r.byID[itemID]; !ok {
		return false, fmt.Errorf("toggle saved item %s: %w", itemID, catalogerrors.ErrItemNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasViewerLocked(viewerID) {
		return false, fmt.Errorf("toggle saved for viewer %s: %w", viewerID, catalogerrors.ErrViewerNotFound)
	}

	set, ok := r.saved[viewerID]
	if !ok {
		set = make(map[string]uint64)
		r.saved[viewerID] = set
	}

	if _, exists := set[itemID]; exists {
		delete(set, itemID)
		return false, nil
	}

	r.seq++
	set[itemID] = r.seq
	return true, nil
}

// ListSavedItems returns the viewer's saved items, most recently saved first
func (r *StaticBackend) ListSavedItems(_ context.Context, viewerID string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.saved[viewerID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return set[ids[i]] > set[ids[j]] })

	items := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		it := cloneItem(r.byID[id])
		it.Saved = true
		items = append(items, it)
	}
	return items, nil
}

// CountSaved returns the number of items the viewer has saved
func (r *StaticBackend) CountSaved(_ context.Context, viewerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.saved[viewerID]), nil
}

// ActiveReservation always reports none; the dataset carries no bookings
func (r *StaticBackend) ActiveReservation(_ context.Context, _, _ string) (*models.Reservation, error) {
	return nil, nil
}

// Facility returns the dataset's facility, or nil when it has none
func (r *StaticBackend) Facility(_ context.Context) (*models.Facility, error) {
	if r.facility.FacilityID == "" {
		return nil, nil
	}
	f := r.facility
	f.WorkingHours = append([]models.WorkingHour(nil), r.facility.WorkingHours...)
	return &f, nil
}

// CreateItem is not supported by the static dataset
func (r *StaticBackend) CreateItem(_ context.Context, item models.Item) (models.Item, error) {
	return models.Item{}, fmt.Errorf("create item %s: %w", item.ItemID, catalogerrors.ErrReadOnly)
}

// UpdateItem is not supported by the static dataset
func (r *StaticBackend) UpdateItem(_ context.Context, itemID string, _ models.ItemUpdate) (models.Item, error) {
	return models.Item{}, fmt.Errorf("update item %s: %w", itemID, catalogerrors.ErrReadOnly)
}

// DeleteItem is not supported by the static dataset
func (r *StaticBackend) DeleteItem(_ context.Context, itemID string) error {
	return fmt.Errorf("delete item %s: %w", itemID, catalogerrors.ErrReadOnly)
}

func (r *StaticBackend) hasViewerLocked(viewerID string) bool {
	for _, v := range r.viewers {
		if v.ViewerID == viewerID {
			return true
		}
	}
	return false
}

func cloneItem(it models.Item) models.Item {
	it.Images = append([]string(nil), it.Images...)
	return it
}
