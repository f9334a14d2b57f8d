package server

import (
	"catalog-engine/internal/config"
	"catalog-engine/internal/extract"
	"catalog-engine/services/catalog/handler"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(cfg config.Config, service handler.CatalogServiceInterface, extractor extract.Extractor) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	router.Use(IdentityMiddleware(cfg.JWTSecret))

	router.MaxMultipartMemory = extract.MaxImageBytes + 1<<20

	catalogHandler := handler.NewCatalogHandler(service, extractor)

	router.GET("/healthz", catalogHandler.HealthHandler)
	router.GET("/facets", catalogHandler.ListFacetsHandler)
	router.GET("/saved", catalogHandler.ListSavedHandler)

	items := router.Group("/items")
	{
		items.GET("", catalogHandler.ListItemsHandler)
		items.POST("/search/image", catalogHandler.ImageSearchHandler)
		items.GET("/:item_id", catalogHandler.GetItemHandler)
		items.POST("/:item_id/saved", catalogHandler.ToggleSavedHandler)
	}

	me := router.Group("/me")
	{
		me.GET("", catalogHandler.ProfileHandler)
		me.POST("", catalogHandler.EnsureViewerHandler)
	}

	admin := router.Group("/admin/items")
	{
		admin.GET("", catalogHandler.ListAllItemsHandler)
		admin.POST("", catalogHandler.CreateItemHandler)
		admin.PATCH("/:item_id", catalogHandler.UpdateItemHandler)
		admin.DELETE("/:item_id", catalogHandler.DeleteItemHandler)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", SubjectHeader, NameHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
