package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"reelhouse/api"
	"reelhouse/config"
	"reelhouse/handlers"
	"reelhouse/internal/database"
	"reelhouse/services/preferences"
	"reelhouse/services/search"
	"reelhouse/services/tmdb"
	"reelhouse/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}

	if cfg.Log.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		}
		log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	}

	db, err := database.NewDB(database.Config{DatabasePath: cfg.Database.Path})
	if err != nil {
		log.Fatalf("[main] database: %v", err)
	}
	defer db.Close()

	tmdbClient := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, nil)
	searchService := search.NewService(tmdbClient)
	likesService := preferences.NewLikes(db.Likes)
	listService := preferences.NewList(db.List)

	router := utils.NewRouter(cfg.Server.AllowedOrigins)
	router.Use(api.RequestLogMiddleware())

	limiter := api.NewQuotaLimiter(cfg.Server.SearchRatePerMinute)
	defer limiter.Close()

	// Browse and search fan out to the upstream metadata API, so only
	// those routes sit behind the per-client quota.
	limited := router.NewRoute().Subrouter()
	limited.Use(limiter.Middleware())
	handlers.NewCatalogHandler(tmdbClient).Register(limited)
	handlers.NewSearchHandler(searchService).Register(limited)

	handlers.NewLikesHandler(likesService).Register(router)
	handlers.NewMyListHandler(listService).Register(router)
	handlers.NewVersionHandler().Register(router)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
