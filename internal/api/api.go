package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jaego-dev/jaegoboard/internal/api/handlers"
	"github.com/jaego-dev/jaegoboard/internal/api/middleware"
	"github.com/jaego-dev/jaegoboard/internal/service"
)

func NewRouter(analytics *service.AnalyticsService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if analytics != nil {
		handler := handlers.NewAnalyticsHandler(analytics)
		analyticsGroup := router.Group("/api/v1/analytics")
		{
			analyticsGroup.GET("/dashboard", handler.GetDashboard)
			analyticsGroup.GET("/skus", handler.GetSkus)
			analyticsGroup.GET("/groups", handler.GetGroups)
			analyticsGroup.GET("/risks", handler.GetRisks)
			analyticsGroup.GET("/dead_stock", handler.GetDeadStock)
			analyticsGroup.GET("/anchor", handler.GetAnchor)
			analyticsGroup.POST("/recompute", handler.Recompute)

			ingestGroup := analyticsGroup.Group("/ingest")
			{
				ingestGroup.POST("/sales", handler.IngestSales)
				ingestGroup.POST("/snapshots", handler.IngestSnapshots)
				ingestGroup.POST("/registry", handler.UpsertRegistry)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
