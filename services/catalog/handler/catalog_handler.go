package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"catalog-engine/internal/extract"
	"catalog-engine/internal/models"
	"catalog-engine/internal/query"
	"catalog-engine/internal/repository"
	"catalog-engine/services/catalog/helpers"
	"catalog-engine/utils"

	"github.com/gin-gonic/gin"
)

type CatalogServiceInterface interface {
	Mode() repository.Mode
	ListFacets(ctx context.Context) models.FacetSummary
	ListItems(ctx context.Context, req models.FilterRequest, subject string) (models.ItemPage, error)
	GetItem(ctx context.Context, itemID, subject string) (models.ItemDetail, error)
	ToggleSaved(ctx context.Context, subject, itemID string) (models.ToggleResult, error)
	ListSavedItems(ctx context.Context, subject string) ([]models.Item, error)
	EnsureViewer(ctx context.Context, subject, name string) (models.Viewer, error)
	Profile(ctx context.Context, subject string) (models.ViewerProfile, error)
	CreateItem(ctx context.Context, subject string, input models.ItemInput) (models.Item, error)
	ListAllItems(ctx context.Context, subject, search string, page, limit int) (models.ItemPage, error)
	UpdateItem(ctx context.Context, subject, itemID string, update models.ItemUpdate) (models.Item, error)
	DeleteItem(ctx context.Context, subject, itemID string) error
}

type CatalogHandler struct {
	service   CatalogServiceInterface
	extractor extract.Extractor
}

// NewCatalogHandler wires the handler; a nil extractor disables image search
func NewCatalogHandler(service CatalogServiceInterface, extractor extract.Extractor) *CatalogHandler {
	if extractor == nil {
		extractor = extract.Disabled{}
	}
	return &CatalogHandler{service: service, extractor: extractor}
}

// HealthHandler handles GET /healthz
func (h *CatalogHandler) HealthHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, helpers.HealthResponse{Mode: string(h.service.Mode())}, "ok")
}

// ListFacetsHandler handles GET /facets
func (h *CatalogHandler) ListFacetsHandler(c *gin.Context) {
	facets := h.service.ListFacets(c.Request.Context())
	utils.JSONResponse(c, http.StatusOK, facets, "facets retrieved successfully")
}

// ListItemsHandler handles GET /items
func (h *CatalogHandler) ListItemsHandler(c *gin.Context) {
	id := helpers.IdentityFrom(c)
	req := query.ParseFilter(helpers.RawFilterFromQuery(c))

	page, err := h.service.ListItems(c.Request.Context(), req, id.Subject)
	if err != nil {
		helpers.RespondError(c, "ListItemsHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, page, "items retrieved successfully")
	helpers.LogSuccess("ListItemsHandler", "items retrieved successfully", map[string]any{
		"total": page.Total,
		"page":  page.Page,
		"count": len(page.Items),
	})
}

// GetItemHandler handles GET /items/:item_id
func (h *CatalogHandler) GetItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	id := helpers.IdentityFrom(c)

	detail, err := h.service.GetItem(c.Request.Context(), itemID, id.Subject)
	if err != nil {
		helpers.RespondError(c, "GetItemHandler", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, detail, "item retrieved successfully")
}

// ToggleSavedHandler handles POST /items/:item_id/saved
func (h *CatalogHandler) ToggleSavedHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	id := helpers.IdentityFrom(c)

	result, err := h.service.ToggleSaved(c.Request.Context(), id.Subject, itemID)
	if err != nil {
		helpers.RespondError(c, "ToggleSavedHandler", err, map[string]any{"item_id": itemID, "subject": id.Subject})
		return
	}

	message := "item removed from saved"
	if result.Saved {
		message = "item saved"
	}
	utils.JSONResponse(c, http.StatusOK, result, message)
	helpers.LogSuccess("ToggleSavedHandler", message, map[string]any{"item_id": itemID, "subject": id.Subject})
}

// ListSavedHandler handles GET /saved
func (h *CatalogHandler) ListSavedHandler(c *gin.Context) {
	id := helpers.IdentityFrom(c)

	items, err := h.service.ListSavedItems(c.Request.Context(), id.Subject)
	if err != nil {
		helpers.RespondError(c, "ListSavedHandler", err, map[string]any{"subject": id.Subject})
		return
	}

	if items == nil {
		items = []models.Item{}
	}
	utils.JSONResponse(c, http.StatusOK, items, "saved items retrieved successfully")
}

// ImageSearchHandler handles POST /items/search/image. Attributes guessed
// from the upload fill the facet filters; the query string supplies the rest.
func (h *CatalogHandler) ImageSearchHandler(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		helpers.HandleBindError(c, "ImageSearchHandler", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		helpers.HandleBindError(c, "ImageSearchHandler", err)
		return
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, extract.MaxImageBytes+1))
	if err != nil {
		helpers.HandleBindError(c, "ImageSearchHandler", err)
		return
	}

	attrs, err := h.extractor.Extract(c.Request.Context(), image, fh.Header.Get("Content-Type"))
	if err != nil {
		helpers.RespondError(c, "ImageSearchHandler", err, map[string]any{"filename": fh.Filename, "size": fh.Size})
		return
	}

	raw := attrs.RawFilter().Merge(helpers.RawFilterFromQuery(c))
	id := helpers.IdentityFrom(c)

	page, err := h.service.ListItems(c.Request.Context(), query.ParseFilter(raw), id.Subject)
	if err != nil {
		helpers.RespondError(c, "ImageSearchHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ImageSearchResponse{Attributes: attrs, Results: page}, "image search completed")
	helpers.LogSuccess("ImageSearchHandler", "image search completed", map[string]any{
		"make":      attrs.Make,
		"body_type": attrs.BodyType,
		"total":     page.Total,
	})
}

// EnsureViewerHandler handles POST /me
func (h *CatalogHandler) EnsureViewerHandler(c *gin.Context) {
	id := helpers.IdentityFrom(c)

	var req helpers.ViewerRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		helpers.HandleBindError(c, "EnsureViewerHandler", err)
		return
	}
	name := req.Name
	if name == "" {
		name = id.Name
	}

	viewer, err := h.service.EnsureViewer(c.Request.Context(), id.Subject, name)
	if err != nil {
		helpers.RespondError(c, "EnsureViewerHandler", err, map[string]any{"subject": id.Subject})
		return
	}

	utils.JSONResponse(c, http.StatusOK, viewer, "viewer registered")
}

// ProfileHandler handles GET /me
func (h *CatalogHandler) ProfileHandler(c *gin.Context) {
	id := helpers.IdentityFrom(c)

	profile, err := h.service.Profile(c.Request.Context(), id.Subject)
	if err != nil {
		helpers.RespondError(c, "ProfileHandler", err, map[string]any{"subject": id.Subject})
		return
	}

	utils.JSONResponse(c, http.StatusOK, profile, "profile retrieved successfully")
}

// ListAllItemsHandler handles GET /admin/items
func (h *CatalogHandler) ListAllItemsHandler(c *gin.Context) {
	id := helpers.IdentityFrom(c)
	paging := query.ParseFilter(query.RawFilter{Page: c.Query("page"), Limit: c.Query("limit")})

	page, err := h.service.ListAllItems(c.Request.Context(), id.Subject, c.Query("search"), paging.Page, paging.Limit)
	if err != nil {
		helpers.RespondError(c, "ListAllItemsHandler", err, map[string]any{"subject": id.Subject})
		return
	}

	utils.JSONResponse(c, http.StatusOK, page, "items retrieved successfully")
}

// CreateItemHandler handles POST /admin/items
func (h *CatalogHandler) CreateItemHandler(c *gin.Context) {
	var req helpers.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", err)
		return
	}
	id := helpers.IdentityFrom(c)

	item, err := h.service.CreateItem(c.Request.Context(), id.Subject, req.ToItemInput())
	if err != nil {
		helpers.RespondError(c, "CreateItemHandler", err, map[string]any{"subject": id.Subject})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, "item created successfully")
	helpers.LogSuccess("CreateItemHandler", "item created successfully", map[string]any{"item_id": item.ItemID})
}

// UpdateItemHandler handles PATCH /admin/items/:item_id
func (h *CatalogHandler) UpdateItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")

	var req helpers.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateItemHandler", err)
		return
	}
	id := helpers.IdentityFrom(c)

	item, err := h.service.UpdateItem(c.Request.Context(), id.Subject, itemID, req.ToItemUpdate())
	if err != nil {
		helpers.RespondError(c, "UpdateItemHandler", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, item, "item updated successfully")
}

// DeleteItemHandler handles DELETE /admin/items/:item_id
func (h *CatalogHandler) DeleteItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	id := helpers.IdentityFrom(c)

	if err := h.service.DeleteItem(c.Request.Context(), id.Subject, itemID); err != nil {
		helpers.RespondError(c, "DeleteItemHandler", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"item_id": itemID}, fmt.Sprintf("item %s deleted", itemID))
}
