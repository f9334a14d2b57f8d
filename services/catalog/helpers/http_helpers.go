package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"catalog-engine/internal/catalogerrors"
	"catalog-engine/internal/query"
	"catalog-engine/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, catalogerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, catalogerrors.ErrForbidden):
		return http.StatusForbidden, "admin role required"
	case errors.Is(err, catalogerrors.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, catalogerrors.ErrViewerNotFound):
		return http.StatusNotFound, "viewer not registered"
	case errors.Is(err, catalogerrors.ErrConflict):
		return http.StatusConflict, "concurrent update, please retry"
	case errors.Is(err, catalogerrors.ErrReadOnly):
		return http.StatusConflict, "catalog is read-only"
	case errors.Is(err, catalogerrors.ErrInvalidItem):
		return http.StatusBadRequest, "invalid item details"
	case errors.Is(err, catalogerrors.ErrExtractionFailed):
		return http.StatusUnprocessableEntity, "could not analyze image"
	case errors.Is(err, catalogerrors.ErrExtractionUnavailable):
		return http.StatusServiceUnavailable, "image search unavailable"
	case errors.Is(err, catalogerrors.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, "catalog temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError writes the mapped error response and logs it at a level
// matching its status
func RespondError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if ctx == nil {
		ctx = map[string]any{}
	}
	ctx["handler"] = handlerName
	ctx["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+message, ctx)
		return
	}
	utils.Warn(handlerName+": "+message, ctx)
}

// RawFilterFromQuery collects listing filters from the URL query string
func RawFilterFromQuery(c *gin.Context) query.RawFilter {
	return query.RawFilter{
		Search:       c.Query("search"),
		Make:         c.Query("make"),
		BodyType:     c.Query("bodyType"),
		FuelType:     c.Query("fuelType"),
		Transmission: c.Query("transmission"),
		MinPrice:     c.Query("minPrice"),
		MaxPrice:     c.Query("maxPrice"),
		SortBy:       c.Query("sortBy"),
		Page:         c.Query("page"),
		Limit:        c.Query("limit"),
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
