package api

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bazaar-tracker/internal/api/handlers"
	"bazaar-tracker/internal/metrics"
	"bazaar-tracker/internal/services"
)

func SetupRouter(pipeline *services.Pipeline, snapshots *services.SnapshotService, profit *services.ProfitCalculator, opportunities *services.OpportunityMatcher, flips *services.FlipService, corsOrigins []string, dashboardDir string) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from config or use defaults
	config := cors.DefaultConfig()
	if len(corsOrigins) > 0 {
		config.AllowOrigins = corsOrigins
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.AllowCredentials = false // Explicitly set
	router.Use(cors.New(config))

	router.Use(metricsMiddleware())

	// Initialize handlers
	marketHandler := handlers.NewMarketHandler(snapshots, profit, opportunities, flips)
	pipelineHandler := handlers.NewPipelineHandler(pipeline)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/stats", marketHandler.GetStats)
		api.GET("/opportunities", marketHandler.GetOpportunities)
		api.GET("/flips", marketHandler.GetFlips)

		snapshotRoutes := api.Group("/snapshots")
		{
			snapshotRoutes.GET("/daily/:date", marketHandler.GetDailySnapshot)
			snapshotRoutes.GET("/hours", marketHandler.GetHourlyPartitions)
		}

		pipelineRoutes := api.Group("/pipeline")
		{
			pipelineRoutes.GET("/status", pipelineHandler.GetStatus)
			pipelineRoutes.POST("/run", pipelineHandler.Run)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve the static dashboard pages that consume the JS exports
	if dashboardDir != "" && dirExists(dashboardDir) {
		router.Static("/dashboard", dashboardDir)
	}

	return router
}

// metricsMiddleware feeds the HTTP request counter and latency histogram.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
