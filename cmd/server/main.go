package main

import (
	"context"
	"fmt"
	"log"
	"meeting-summaries-backend/auth"
	"meeting-summaries-backend/internal/config"
	"meeting-summaries-backend/internal/db"
	"meeting-summaries-backend/internal/directory"
	"meeting-summaries-backend/internal/doccenter"
	"meeting-summaries-backend/internal/labeling"
	"meeting-summaries-backend/internal/middleware"
	"meeting-summaries-backend/internal/store"
	"meeting-summaries-backend/internal/summary"
	"meeting-summaries-backend/internal/worker"
	"meeting-summaries-backend/redis"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Connect to database
	db.ConnectDb()
	defer db.CloseDb()

	// Migrate database schema
	db.Migrate()

	// Seed vocabulary lists (for development)
	db.SeedData()

	// Initialize Redis
	redis.InitRedis()
	cache := redis.NewCache(redis.RedisClient)

	// Initialize stores
	vocabularyStore := store.NewVocabularyStore(db.AppDb)
	recordStore := store.NewRecordStore(db.AppDb)
	contactRepo := directory.NewRepository(db.AppDb)

	// Background worker pool for the secondary writes
	pool := worker.NewPool(4, 64)
	defer pool.Shutdown()

	docCenterClient := doccenter.NewClient(config.AppConfig.DocCenterAddress)

	// Initialize services
	catalogLoader := labeling.NewCatalogLoader(vocabularyStore, config.AppConfig.CatalogTop)
	labelingService := labeling.NewService(
		catalogLoader,
		recordStore,
		cache,
		config.AppConfig.SiteRoot,
		config.AppConfig.CatalogTTL,
	)
	directoryService := directory.NewService(contactRepo, recordStore)
	summaryService := summary.NewService(
		recordStore,
		labelingService,
		directoryService,
		pool,
		docCenterClient,
		config.AppConfig.FrontendAddress,
	)

	// Initialize handlers
	labelingHandler := labeling.NewHandler(labelingService)
	summaryHandler := summary.NewHandler(summaryService)
	directoryHandler := directory.NewHandler(directoryService)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}

	if config.AppConfig.Environment == "development" {
		// Allow all origins in development
		corsConfig.AllowAllOrigins = true
	} else {
		// Restrict origins in production
		corsConfig.AllowOrigins = []string{config.AppConfig.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// Contact directory routes
	router.POST("/register", directoryHandler.Register)
	router.POST("/login", directoryHandler.Login)
	router.DELETE("/logout", auth.AuthMiddleWare(), directoryHandler.Logout)
	router.GET("/profile", auth.AuthMiddleWare(), directoryHandler.GetProfile)
	router.GET("/contacts", auth.AuthMiddleWare(), directoryHandler.SearchContacts)
	router.GET("/contacts/:id", auth.AuthMiddleWare(), directoryHandler.ShowContact)

	// Labeling routes: catalog reads plus the stateless row-session operations
	router.GET("/labeling/catalog", auth.AuthMiddleWare(), labelingHandler.ShowCatalog)
	router.POST("/labeling/options", auth.AuthMiddleWare(), labelingHandler.ShowOptions)
	router.POST("/labeling/rows/set-field", auth.AuthMiddleWare(), labelingHandler.SetRowField)
	router.POST("/labeling/rows/add", auth.AuthMiddleWare(), labelingHandler.AddRow)
	router.POST("/labeling/rows/delete", auth.AuthMiddleWare(), labelingHandler.DeleteRow)
	router.POST("/labeling/validate", auth.AuthMiddleWare(), labelingHandler.Validate)
	router.POST("/labeling/preview", auth.AuthMiddleWare(), labelingHandler.Preview)

	// Meeting summary routes
	router.POST("/summaries", auth.AuthMiddleWare(), summaryHandler.Submit)
	router.GET("/summaries/:id", auth.AuthMiddleWare(), summaryHandler.Show)
	router.PUT("/summaries/:id", auth.AuthMiddleWare(), summaryHandler.Update)

	// internal use routes
	router.POST("/internal/vocabularies/:list", auth.InternalAuthMiddleware(config.AppConfig.InternalSecret), labelingHandler.AddVocabularyEntry)

	// Server configuration
	serverPort := config.AppConfig.ServerPort
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		log.Printf("Server listening on port %s", serverPort)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	<-ctx.Done()
	log.Println("Server shutdown complete")
}
