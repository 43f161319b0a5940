package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"lostfound/config"
	"lostfound/jobs"
	"lostfound/routes"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Load .env file before config.LoadConfig reads the environment
	loadEnvFile()

	utils.InitLogger()
	config.LoadConfig()
	cfg := config.AppConfig

	// The remote mirror is optional: when MongoDB is unreachable the
	// app still serves everything from local storage and the sync
	// worker pushes once the mirror comes back.
	db := connectMongo(cfg)

	serviceContainer, err := routes.NewServiceContainer(cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	api := router.Group("/api")
	routes.SetupRoutes(api, serviceContainer)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	if cfg.SyncInterval > 0 {
		syncWorker := jobs.NewSyncWorker(serviceContainer.SyncService, cfg.SyncInterval)
		go syncWorker.Start()
		log.Printf("Started sync worker running every %v", cfg.SyncInterval)
	}

	log.Printf("Starting lost and found server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// connectMongo returns the mirror database, or nil when mirroring is
// disabled or the server is unreachable.
func connectMongo(cfg *config.Config) *mongo.Database {
	if !cfg.MirrorWrites {
		log.Println("Remote mirroring disabled by configuration")
		return nil
	}

	ctx, cancel := config.CreateContext(10 * time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Printf("Failed to connect to MongoDB, running in local-only mode: %v", err)
		return nil
	}

	if err = mongoClient.Ping(ctx, nil); err != nil {
		log.Printf("Failed to ping MongoDB, running in local-only mode: %v", err)
		return nil
	}

	log.Println("Connected to MongoDB successfully")
	return mongoClient.Database(cfg.DatabaseName)
}

// loadEnvFile handles loading .env file from multiple possible locations
func loadEnvFile() {
	pwd, err := os.Getwd()
	if err != nil {
		log.Printf("Could not get working directory: %v", err)
		return
	}

	envPaths := []string{
		".env",
		"../.env",
		"cmd/../.env",
		filepath.Join(pwd, ".env"),
		filepath.Join(filepath.Dir(pwd), ".env"),
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err == nil {
				absPath, _ := filepath.Abs(envPath)
				log.Printf("Loaded environment variables from: %s", absPath)
				return
			}
		}
	}

	log.Println("No .env file found, using system environment variables")
}

// CORS middleware shared by every route
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestOrigin := c.Request.Header.Get("Origin")

		var allowOrigin string
		if len(allowedOrigins) == 0 {
			allowOrigin = "*"
		} else {
			for _, allowedOrigin := range allowedOrigins {
				if allowedOrigin == "*" || allowedOrigin == requestOrigin {
					allowOrigin = allowedOrigin
					break
				}
			}
			if allowOrigin == "" {
				allowOrigin = allowedOrigins[0]
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
