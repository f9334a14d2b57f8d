package integrationtests

import (
	"bytes"
	catalog "catalog-engine/internal/catalogService"
	"catalog-engine/internal/config"
	"catalog-engine/internal/repository"
	"catalog-engine/internal/server"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const adminSubject = "admin-subject"

// SetupStaticRouter initializes the router over the embedded dataset with header identity.
func SetupStaticRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds := repository.MustDefaultDataset()
	service := catalog.NewCatalogService(repository.NewStaticBackend(ds), nil, nil, ds.DefaultFacets)
	return server.SetupRouter(config.Config{CORSAllowedOrigins: []string{"*"}}, service, nil)
}

// SetupPersistedRouter initializes the router over a seeded sqlite database
// with the static dataset as read fallback and one promoted admin.
func SetupPersistedRouter(t *testing.T, cfg config.Config) (*gin.Engine, *repository.PersistedBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := repository.Open(ctx, repository.Options{
		Driver:       repository.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "catalog.db"),
		QueryTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ds := repository.MustDefaultDataset()
	_, err = db.Seed(ctx, ds)
	require.NoError(t, err)
	_, err = db.PromoteViewer(ctx, adminSubject, "Admin")
	require.NoError(t, err)

	service := catalog.NewCatalogService(db, repository.NewStaticBackend(ds), nil, ds.DefaultFacets)
	return server.SetupRouter(cfg, service, nil), db
}

// Request describes one call against the router
type Request struct {
	Method  string
	URL     string
	Subject string
	Token   string
	Body    any
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, r Request) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := r.Body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(r.Method, r.URL, bytes.NewReader(reqBody))
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Subject != "" {
		req.Header.Set(server.SubjectHeader, r.Subject)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return resp, w
}

// dataMap returns the envelope's data object
func dataMap(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "data should be an object: %v", resp)
	return data
}

// pageIDs returns the item ids of a listing envelope in order
func pageIDs(t *testing.T, resp map[string]any) []string {
	t.Helper()
	items := dataMap(t, resp)["items"].([]any)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.(map[string]any)["item_id"].(string))
	}
	return ids
}
