package catalog

import (
	"catalog-engine/internal/catalogerrors"
	"catalog-engine/internal/models"
	"catalog-engine/internal/query"
	"catalog-engine/utils"
	"context"
	"fmt"
	"strings"
	"time"
)

// MinItemYear is the earliest model year accepted for a new item
const MinItemYear = 1886

// CreateItem validates input and adds a new item to the catalog
func (s *CatalogService) CreateItem(ctx context.Context, subject string, input models.ItemInput) (models.Item, error) {
	if err := s.requireAdmin(ctx, subject); err != nil {
		return models.Item{}, err
	}
	if err := validateItemInput(input); err != nil {
		return models.Item{}, err
	}

	status := input.Status
	if status == "" {
		status = models.StatusAvailable
	}

	item := models.Item{
		ItemID:       utils.GenerateSortableID(),
		Make:         strings.TrimSpace(input.Make),
		Model:        strings.TrimSpace(input.Model),
		Year:         input.Year,
		BodyType:     strings.TrimSpace(input.BodyType),
		FuelType:     strings.TrimSpace(input.FuelType),
		Transmission: strings.TrimSpace(input.Transmission),
		Color:        strings.TrimSpace(input.Color),
		Price:        input.Price,
		Mileage:      input.Mileage,
		Images:       append([]string{}, input.Images...),
		Description:  input.Description,
		Status:       status,
		Featured:     input.Featured,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.backend.CreateItem(ctx, item)
	if err != nil {
		return models.Item{}, fmt.Errorf("service: failed to create item: %w", err)
	}

	s.invalidateFacets(ctx)
	utils.Info("catalog item created", map[string]any{"item_id": created.ItemID, "make": created.Make, "model": created.Model})
	return created, nil
}

// UpdateItem edits an item's attributes, image set, status or featured flag.
// The merged item must still satisfy the creation rules.
func (s *CatalogService) UpdateItem(ctx context.Context, subject, itemID string, update models.ItemUpdate) (models.Item, error) {
	if err := s.requireAdmin(ctx, subject); err != nil {
		return models.Item{}, err
	}
	if itemID == "" {
		return models.Item{}, fmt.Errorf("service: %w - empty item ID", catalogerrors.ErrItemNotFound)
	}
	if update.Empty() {
		return models.Item{}, fmt.Errorf("service: %w - nothing to update", catalogerrors.ErrInvalidItem)
	}
	if update.Status != nil && !update.Status.Valid() {
		return models.Item{}, fmt.Errorf("service: %w - unknown status %q", catalogerrors.ErrInvalidItem, *update.Status)
	}
	update = trimUpdate(update)

	current, err := s.backend.GetItem(ctx, itemID)
	if err != nil {
		return models.Item{}, fmt.Errorf("service: failed to update item %s: %w", itemID, err)
	}
	if err := validateItemInput(update.Apply(current).Input()); err != nil {
		return models.Item{}, err
	}

	item, err := s.backend.UpdateItem(ctx, itemID, update)
	if err != nil {
		return models.Item{}, fmt.Errorf("service: failed to update item %s: %w", itemID, err)
	}

	s.invalidateFacets(ctx)
	utils.Info("catalog item updated", map[string]any{"item_id": itemID, "status": item.Status})
	return item, nil
}

// ListAllItems is the management listing: items of every status, newest
// first, optionally narrowed by a search over make, model and color.
func (s *CatalogService) ListAllItems(ctx context.Context, subject, search string, page, limit int) (models.ItemPage, error) {
	if err := s.requireAdmin(ctx, subject); err != nil {
		return models.ItemPage{}, err
	}

	plan := query.BuildAdmin(search, page, limit)
	items, total, err := s.backend.ListItems(ctx, plan)
	if err != nil {
		return models.ItemPage{}, fmt.Errorf("service: failed to list catalog items: %w", err)
	}

	return models.ItemPage{
		Items: items,
		Total: total,
		Page:  plan.Page,
		Limit: plan.Limit,
		Pages: query.Pages(total, plan.Limit),
	}, nil
}

// DeleteItem removes an item and every saved relation pointing at it
func (s *CatalogService) DeleteItem(ctx context.Context, subject, itemID string) error {
	if err := s.requireAdmin(ctx, subject); err != nil {
		return err
	}
	if itemID == "" {
		return fmt.Errorf("service: %w - empty item ID", catalogerrors.ErrItemNotFound)
	}

	if err := s.backend.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("service: failed to delete item %s: %w", itemID, err)
	}

	s.invalidateFacets(ctx)
	utils.Info("catalog item deleted", map[string]any{"item_id": itemID})
	return nil
}

// requireAdmin rejects anonymous callers and viewers without the ADMIN role
func (s *CatalogService) requireAdmin(ctx context.Context, subject string) error {
	if subject == "" {
		return fmt.Errorf("service: %w - catalog management", catalogerrors.ErrUnauthorized)
	}

	viewer, err := s.backend.ViewerBySubject(ctx, subject)
	if err != nil {
		return fmt.Errorf("service: failed to resolve viewer: %w", err)
	}
	if viewer.Role != models.RoleAdmin {
		return fmt.Errorf("service: %w - viewer %s is not an admin", catalogerrors.ErrForbidden, viewer.ViewerID)
	}
	return nil
}

func (s *CatalogService) invalidateFacets(ctx context.Context) {
	if err := s.facets.Invalidate(ctx); err != nil {
		utils.Warn("facet cache invalidation failed", map[string]any{"error": err.Error()})
	}
}

func trimUpdate(u models.ItemUpdate) models.ItemUpdate {
	for _, p := range []**string{&u.Make, &u.Model, &u.BodyType, &u.FuelType, &u.Transmission, &u.Color} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
	return u
}

// validateItemInput checks management input against catalog business rules
func validateItemInput(input models.ItemInput) error {
	if strings.TrimSpace(input.Make) == "" || strings.TrimSpace(input.Model) == "" {
		return fmt.Errorf("service: %w - make and model are required", catalogerrors.ErrInvalidItem)
	}
	if input.Year < MinItemYear || input.Year > time.Now().UTC().Year()+1 {
		return fmt.Errorf("service: %w - year %d out of range", catalogerrors.ErrInvalidItem, input.Year)
	}
	if input.Price.IsNegative() {
		return fmt.Errorf("service: %w - negative price", catalogerrors.ErrInvalidItem)
	}
	if input.Mileage < 0 {
		return fmt.Errorf("service: %w - negative mileage", catalogerrors.ErrInvalidItem)
	}
	if input.Status != "" && !input.Status.Valid() {
		return fmt.Errorf("service: %w - unknown status %q", catalogerrors.ErrInvalidItem, input.Status)
	}
	if (input.Status == "" || input.Status == models.StatusAvailable) && len(input.Images) == 0 {
		return fmt.Errorf("service: %w - an available item needs at least one image", catalogerrors.ErrInvalidItem)
	}
	return nil
}
