package catalog

import (
	"catalog-engine/internal/cache"
	"catalog-engine/internal/catalogerrors"
	"catalog-engine/internal/models"
	"catalog-engine/internal/query"
	"catalog-engine/internal/repository"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var errDown = fmt.Errorf("list items: %w: dial tcp: connection refused", catalogerrors.ErrBackendUnavailable)

func staticBackend(t *testing.T) *repository.StaticBackend {
	t.Helper()
	return repository.NewStaticBackend(repository.MustDefaultDataset())
}

func defaultFacets() models.FacetSummary {
	return repository.MustDefaultDataset().DefaultFacets
}

func newItem(id string, price int64) models.Item {
	return models.Item{
		ItemID:    id,
		Make:      "Toyota",
		Model:     "Camry",
		Price:     decimal.NewFromInt(price),
		Images:    []string{"/1.png"},
		Status:    models.StatusAvailable,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Tests ListFacets
func TestCatalogService_ListFacets(t *testing.T) {
	ctx := context.Background()
	live := models.FacetSummary{Makes: []string{"Honda"}, PriceRange: models.PriceRange{Min: decimal.NewFromInt(1), Max: decimal.NewFromInt(2)}}

	t.Run("backend_result_is_cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := repository.NewMockCatalogBackend(ctrl)
		service := NewCatalogService(mockRepo, nil, cache.NewMemoryCache(time.Minute), defaultFacets())

		mockRepo.EXPECT().Facets(gomock.Any()).Return(live, nil).Times(1)

		require.Equal(t, live, service.ListFacets(ctx))
		require.Equal(t, live, service.ListFacets(ctx), "second call should be served from cache")
	})

	t.Run("backend_failure_serves_defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := repository.NewMockCatalogBackend(ctrl)
		facetCache := cache.NewMemoryCache(time.Minute)
		service := NewCatalogService(mockRepo, nil, facetCache, defaultFacets())

		mockRepo.EXPECT().Facets(gomock.Any()).Return(models.FacetSummary{}, errDown)

		got := service.ListFacets(ctx)
		require.Equal(t, defaultFacets(), got)
		require.Equal(t, "500000", got.PriceRange.Min.String())
		require.Equal(t, "10000000", got.PriceRange.Max.String())

		_, ok, _ := facetCache.Get(ctx)
		require.False(t, ok, "defaults must not be cached")
	})
}

// Tests ListItems
func TestCatalogService_ListItems(t *testing.T) {
	ctx := context.Background()
	page := []models.Item{newItem("a", 100), newItem("b", 200)}
	viewer := models.Viewer{ViewerID: "viewer-1", Subject: "sub-1", Role: models.RoleUser}

	tests := []struct {
		name      string
		subject   string
		mockSetup func(m *repository.MockCatalogBackend)
		wantSaved []bool
	}{
		{
			name:    "anonymous_viewer_never_saved",
			subject: "",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(page, 8, nil)
			},
			wantSaved: []bool{false, false},
		},
		{
			name:    "authenticated_viewer_single_batch_lookup",
			subject: "sub-1",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(page, 8, nil)
				m.EXPECT().ViewerBySubject(gomock.Any(), "sub-1").Return(viewer, nil)
				m.EXPECT().SavedItemIDs(gomock.Any(), "viewer-1", []string{"a", "b"}).Return(map[string]bool{"b": true}, nil).Times(1)
			},
			wantSaved: []bool{false, true},
		},
		{
			name:    "unknown_viewer_treated_as_anonymous",
			subject: "sub-unknown",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(page, 8, nil)
				m.EXPECT().ViewerBySubject(gomock.Any(), "sub-unknown").Return(models.Viewer{}, catalogerrors.ErrViewerNotFound)
			},
			wantSaved: []bool{false, false},
		},
		{
			name:    "saved_lookup_failure_degrades",
			subject: "sub-1",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(page, 8, nil)
				m.EXPECT().ViewerBySubject(gomock.Any(), "sub-1").Return(viewer, nil)
				m.EXPECT().SavedItemIDs(gomock.Any(), "viewer-1", gomock.Any()).Return(nil, errDown)
			},
			wantSaved: []bool{false, false},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockRepo := repository.NewMockCatalogBackend(ctrl)
			service := NewCatalogService(mockRepo, nil, nil, defaultFacets())
			tc.mockSetup(mockRepo)

			result, err := service.ListItems(ctx, models.FilterRequest{Page: 2, Limit: 2}, tc.subject)
			require.NoError(t, err)
			require.Equal(t, 8, result.Total)
			require.Equal(t, 2, result.Page)
			require.Equal(t, 2, result.Limit)
			require.Equal(t, 4, result.Pages)

			saved := make([]bool, 0, len(result.Items))
			for _, it := range result.Items {
				saved = append(saved, it.Saved)
			}
			require.Equal(t, tc.wantSaved, saved)
		})
	}
}

func TestCatalogService_ListItemsPassesNormalizedPlan(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockRepo := repository.NewMockCatalogBackend(ctrl)
	service := NewCatalogService(mockRepo, nil, nil, defaultFacets())

	mockRepo.EXPECT().ListItems(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, plan query.Plan) ([]models.Item, int, error) {
			require.Equal(t, models.StatusAvailable, plan.Status)
			require.Equal(t, 1, plan.Page)
			require.Equal(t, query.DefaultLimit, plan.Limit)
			require.Equal(t, []query.Equal{{Field: query.FieldMake, Value: "honda"}}, plan.Facets)
			return []models.Item{}, 0, nil
		})

	result, err := service.ListItems(context.Background(), models.FilterRequest{Make: "Honda", Page: -3}, "")
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.Zero(t, result.Total)
	require.Zero(t, result.Pages)
}

func TestCatalogService_ListItemsFallsBack(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockRepo := repository.NewMockCatalogBackend(ctrl)
	service := NewCatalogService(mockRepo, staticBackend(t), nil, defaultFacets())

	mockRepo.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(nil, 0, errDown)

	result, err := service.ListItems(context.Background(), models.FilterRequest{Make: "toyota"}, "")
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Equal(t, "mock-1", result.Items[0].ItemID)
}

func TestCatalogService_ListItemsWithoutFallbackFails(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockRepo := repository.NewMockCatalogBackend(ctrl)
	service := NewCatalogService(mockRepo, nil, nil, defaultFacets())

	mockRepo.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(nil, 0, errDown)

	_, err := service.ListItems(context.Background(), models.FilterRequest{}, "")
	require.ErrorIs(t, err, catalogerrors.ErrBackendUnavailable)
}

// Tests GetItem
func TestCatalogService_GetItem(t *testing.T) {
	ctx := context.Background()
	viewer := models.Viewer{ViewerID: "viewer-1", Subject: "sub-1"}
	facility := &models.Facility{FacilityID: "f-1", Name: "Main"}

	t.Run("not_found_is_not_masked_by_fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := repository.NewMockCatalogBackend(ctrl)
		service := NewCatalogService(mockRepo, staticBackend(t), nil, defaultFacets())

		mockRepo.EXPECT().GetItem(gomock.Any(), "mock-1").Return(models.Item{}, catalogerrors.ErrItemNotFound)

		_, err := service.GetItem(ctx, "mock-1", "")
		require.ErrorIs(t, err, catalogerrors.ErrItemNotFound)
	})

	t.Run("backend_failure_serves_fallback_item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := repository.NewMockCatalogBackend(ctrl)
		service := NewCatalogService(mockRepo, staticBackend(t), nil, defaultFacets())

		mockRepo.EXPECT().GetItem(gomock.Any(), "mock-2").Return(models.Item{}, errDown)
		mockRepo.EXPECT().Facility(gomock.Any()).Return(nil, errDown)

		detail, err := service.GetItem(ctx, "mock-2", "")
		require.NoError(t, err)
		require.Equal(t, "Civic", detail.Model)
		require.NotNil(t, detail.Facility)
		require.Equal(t, "Vehiql Motors", detail.Facility.Name)
	})

	t.Run("backend_failure_and_unknown_to_fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := repository.NewMockCatalogBackend(ctrl)
		service := NewCatalogService(mockRepo, staticBackend(t), nil, defaultFacets())

		mockRepo.EXPECT().GetItem(gomock.Any(), "01HZ").Return(models.Item{}, errDown)

		_, err := service.GetItem(ctx, "01HZ", "")
		require.ErrorIs(t, err, catalogerrors.ErrBackendUnavailable)
		require.NotErrorIs(t, err, catalogerrors.ErrItemNotFound)
	})

	t.Run("viewer_context_is_attached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := repository.NewMockCatalogBackend(ctrl)
		service := NewCatalogService(mockRepo, nil, nil, defaultFacets())
		reservation := &models.Reservation{ReservationID: "r-1", Status: "CONFIRMED"}

		mockRepo.EXPECT().GetItem(gomock.Any(), "a").Return(newItem("a", 100), nil)
		mockRepo.EXPECT().ViewerBySubject(gomock.Any(), "sub-1").Return(viewer, nil)
		mockRepo.EXPECT().SavedItemIDs(gomock.Any(), "viewer-1", []string{"a"}).Return(map[string]bool{"a": true}, nil)
		mockRepo.EXPECT().ActiveReservation(gomock.Any(), "viewer-1", "a").Return(reservation, nil)
		mockRepo.EXPECT().Facility(gomock.Any()).Return(facility, nil)

		detail, err := service.GetItem(ctx, "a", "sub-1")
		require.NoError(t, err)
		require.True(t, detail.Saved)
		require.Equal(t, reservation, detail.Reservation)
		require.Equal(t, facility, detail.Facility)
	})

	t.Run("empty_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewCatalogService(repository.NewMockCatalogBackend(ctrl), nil, nil, defaultFacets())

		_, err := service.GetItem(ctx, "", "")
		require.ErrorIs(t, err, catalogerrors.ErrItemNotFound)
	})
}

// Tests ToggleSaved
func TestCatalogService_ToggleSaved(t *testing.T) {
	viewer := models.Viewer{ViewerID: "viewer-1", Subject: "sub-1"}

	tests := []struct {
		name          string
		subject       string
		itemID        string
		mockSetup     func(m *repository.MockCatalogBackend)
		expectSaved   bool
		expectedError error
	}{
		{
			name:          "unauthenticated_rejected_before_lookup",
			subject:       "",
			itemID:        "a",
			mockSetup:     func(m *repository.MockCatalogBackend) {},
			expectedError: catalogerrors.ErrUnauthorized,
		},
		{
			name:    "viewer_not_found",
			subject: "sub-x",
			itemID:  "a",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ViewerBySubject(gomock.Any(), "sub-x").Return(models.Viewer{}, catalogerrors.ErrViewerNotFound)
			},
			expectedError: catalogerrors.ErrViewerNotFound,
		},
		{
			name:    "item_not_found",
			subject: "sub-1",
			itemID:  "missing",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ViewerBySubject(gomock.Any(), "sub-1").Return(viewer, nil)
				m.EXPECT().ToggleSaved(gomock.Any(), "viewer-1", "missing").Return(false, catalogerrors.ErrItemNotFound)
			},
			expectedError: catalogerrors.ErrItemNotFound,
		},
		{
			name:    "saves",
			subject: "sub-1",
			itemID:  "a",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ViewerBySubject(gomock.Any(), "sub-1").Return(viewer, nil)
				m.EXPECT().ToggleSaved(gomock.Any(), "viewer-1", "a").Return(true, nil)
			},
			expectSaved: true,
		},
		{
			name:    "conflict_retried_once",
			subject: "sub-1",
			itemID:  "a",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ViewerBySubject(gomock.Any(), "sub-1").Return(viewer, nil)
				gomock.InOrder(
					m.EXPECT().ToggleSaved(gomock.Any(), "viewer-1", "a").Return(false, catalogerrors.ErrConflict),
					m.EXPECT().ToggleSaved(gomock.Any(), "viewer-1", "a").Return(false, nil),
				)
			},
			expectSaved: false,
		},
		{
			name:    "second_conflict_surfaces",
			subject: "sub-1",
			itemID:  "a",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ViewerBySubject(gomock.Any(), "sub-1").Return(viewer, nil)
				m.EXPECT().ToggleSaved(gomock.Any(), "viewer-1", "a").Return(false, catalogerrors.ErrConflict).Times(2)
			},
			expectedError: catalogerrors.ErrConflict,
		},
		{
			name:    "backend_failure_is_reported",
			subject: "sub-1",
			itemID:  "a",
			mockSetup: func(m *repository.MockCatalogBackend) {
				m.EXPECT().ViewerBySubject(gomock.Any(), "sub-1").Return(viewer, nil)
				m.EXPECT().ToggleSaved(gomock.Any(), "viewer-1", "a").Return(false, errDown)
			},
			expectedError: catalogerrors.ErrBackendUnavailable,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockRepo := repository.NewMockCatalogBackend(ctrl)
			service := NewCatalogService(mockRepo, staticBackend(t), nil, defaultFacets())
			tc.mockSetup(mockRepo)

			result, err := service.ToggleSaved(context.Background(), tc.subject, tc.itemID)
			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected %v, got %v", tc.expectedError, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.itemID, result.ItemID)
			require.Equal(t, tc.expectSaved, result.Saved)
		})
	}
}

// The saved flag, saved list and profile agree after toggles on a real backend
func TestCatalogService_SavedRoundTrip(t *testing.T) {
	t.Parallel()

	backend := staticBackend(t)
	service := NewCatalogService(backend, nil, nil, defaultFacets())
	ctx := context.Background()

	viewer, err := service.EnsureViewer(ctx, "sub-1", "")
	require.NoError(t, err)
	require.Equal(t, "sub-1", viewer.Name, "name defaults to the subject")

	for _, id := range []string{"mock-1", "mock-4", "mock-6", "mock-4"} {
		_, err := service.ToggleSaved(ctx, "sub-1", id)
		require.NoError(t, err)
	}

	saved, err := service.ListSavedItems(ctx, "sub-1")
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.Equal(t, "mock-6", saved[0].ItemID)
	require.Equal(t, "mock-1", saved[1].ItemID)

	page, err := service.ListItems(ctx, models.FilterRequest{Limit: 100}, "sub-1")
	require.NoError(t, err)
	flags := map[string]bool{}
	for _, it := range page.Items {
		flags[it.ItemID] = it.Saved
	}
	require.Equal(t, map[string]bool{
		"mock-1": true, "mock-2": false, "mock-3": false, "mock-4": false, "mock-5": false, "mock-6": true,
	}, flags)

	anonymous, err := service.ListItems(ctx, models.FilterRequest{Limit: 100}, "")
	require.NoError(t, err)
	for _, it := range anonymous.Items {
		require.False(t, it.Saved)
	}

	profile, err := service.Profile(ctx, "sub-1")
	require.NoError(t, err)
	require.Equal(t, 2, profile.SavedCount)

	detail, err := service.GetItem(ctx, "mock-6", "sub-1")
	require.NoError(t, err)
	require.True(t, detail.Saved)
	require.Nil(t, detail.Reservation)
	require.NotNil(t, detail.Facility)
}

func TestCatalogService_ViewerOperationsRequireSubject(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := NewCatalogService(repository.NewMockCatalogBackend(ctrl), nil, nil, defaultFacets())
	ctx := context.Background()

	_, err := service.ListSavedItems(ctx, "")
	require.ErrorIs(t, err, catalogerrors.ErrUnauthorized)

	_, err = service.EnsureViewer(ctx, "", "x")
	require.ErrorIs(t, err, catalogerrors.ErrUnauthorized)

	_, err = service.Profile(ctx, "")
	require.ErrorIs(t, err, catalogerrors.ErrUnauthorized)
}
