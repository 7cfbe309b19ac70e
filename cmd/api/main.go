package main

import (
	"fmt"
	"log"
	"os"

	"lbo-model/internal/api/handlers"
	"lbo-model/internal/api/middleware"
	"lbo-model/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Log working directory and deal directory for debugging
	wd, err := os.Getwd()
	if err == nil {
		log.Printf("Working directory: %s", wd)
		dealDir := data.DefaultDealDir()
		if info, err := os.Stat(dealDir); err == nil && info.IsDir() {
			log.Printf("Deal directory found: %s", dealDir)
		} else {
			log.Printf("Deal directory not found at: %s (error: %v)", dealDir, err)
		}
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers; model and sensitivity share the run store
	runs := data.GetRunStore()
	modelHandler := handlers.NewModelHandler(runs)
	sensitivityHandler := handlers.NewSensitivityHandler(runs)
	dealHandler := handlers.NewDealHandler()
	dimensionHandler := handlers.NewDimensionHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Diagnostic endpoint to check deal directory
	router.GET("/debug/deal-dir", func(c *gin.Context) {
		wd, _ := os.Getwd()
		dealDir := dealHandler.GetDealDir()
		_, statErr := os.Stat(dealDir)

		var entries []string
		if dirEntries, err := os.ReadDir(dealDir); err == nil {
			for _, e := range dirEntries {
				entries = append(entries, e.Name())
			}
		}

		c.JSON(200, gin.H{
			"working_directory": wd,
			"deal_dir":          dealDir,
			"deal_dir_exists":   statErr == nil,
			"entries":           entries,
			"entry_count":       len(entries),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/model", modelHandler.RunModel)
		api.POST("/sensitivity", sensitivityHandler.RunSensitivity)

		api.GET("/runs/:id", modelHandler.GetRun)
		api.GET("/runs/:id/pdf", modelHandler.GetRunPDF)

		api.GET("/deals", dealHandler.ListDeals)
		api.GET("/dimensions", dimensionHandler.ListDimensions)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
