package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/talentbridge/dashboard-gateway/api"
	"github.com/talentbridge/dashboard-gateway/config"
	"github.com/talentbridge/dashboard-gateway/internal/dashboard"
	"github.com/talentbridge/dashboard-gateway/internal/platform"
)

func main() {
	// Define command-line flags
	var (
		help        = flag.Bool("help", false, "Show help message")
		version     = flag.Bool("version", false, "Show version information")
		port        = flag.String("port", "8080", "Port to run the server on")
		upstreamURL = flag.String("upstream-url", "", "Base URL of the platform API (overrides PLATFORM_API_URL)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("TalentBridge Dashboard Gateway - listing and aggregation backend for the admin dashboard\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                        # Start on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                            # Start on port 9000\n", os.Args[0])
		fmt.Printf("  %s --upstream-url https://api.example.com # Point at a platform API\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("TalentBridge Dashboard Gateway v1.0.0\n")
		return
	}

	// .env is optional; environment variables win when both are present.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	baseURL := *upstreamURL
	if baseURL == "" {
		baseURL = os.Getenv("PLATFORM_API_URL")
	}
	if baseURL == "" {
		log.Fatal("No platform API URL configured: set --upstream-url or PLATFORM_API_URL")
	}

	var allowedOrigins []string
	if origins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	// Initialize the collection registry and the dashboard service
	collections := config.DefaultCollections()
	client := platform.NewClient(baseURL, collections)
	service := dashboard.NewService(client, collections)
	log.Printf("Using platform API at %s with %d collections", baseURL, len(collections))

	// Initialize Gin router
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, service, allowedOrigins)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
