package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/kartik0209/music-backend/internal/cron"
	"github.com/kartik0209/music-backend/internal/handler"
	"github.com/kartik0209/music-backend/internal/middleware"
	"github.com/kartik0209/music-backend/internal/repository"
	"github.com/kartik0209/music-backend/internal/service"
	"github.com/kartik0209/music-backend/pkg/config"
	"github.com/kartik0209/music-backend/pkg/jwt"
	"github.com/kartik0209/music-backend/pkg/logger"
	redisutil "github.com/kartik0209/music-backend/pkg/redis"
	"github.com/kartik0209/music-backend/pkg/telemetry"
)

const serviceName = "music-backend"

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Caller: true,
	})
	log.Info("starting music-backend")

	ctx := context.Background()

	_, shutdownTelemetry, err := telemetry.Init(ctx, &telemetry.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Telemetry.Environment,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		Enabled:      cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal("failed to initialize telemetry", logger.Error(err))
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	db, err := repository.Connect(connectCtx, &cfg.Mongo)
	cancel()
	if err != nil {
		log.Fatal("failed to connect to mongo", logger.Error(err))
	}

	var redisClient *redisutil.Client
	redisClient, err = redisutil.NewClient(&redisutil.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		// The cache is an optimization; the service runs without it.
		log.Warn("redis unavailable, song cache disabled", logger.Error(err))
		redisClient = nil
	}

	songRepo := repository.NewSongRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	userRepo := repository.NewUserRepository(db)

	var (
		songReader repository.SongReader = songRepo
		songCache  service.SongCache
	)
	if redisClient != nil {
		cached := repository.NewCachedSongReader(songRepo, redisClient, cfg.Redis.SongCacheTTL, log)
		songReader = cached
		songCache = cached
	}

	ratingService := service.NewRatingService(songRepo, userRepo, songCache, log)
	playlistService := service.NewPlaylistService(playlistRepo, songReader, log)
	songService := service.NewSongService(songRepo, songCache, log)
	maintenanceService := service.NewMaintenanceService(playlistRepo, songRepo, log)

	cronManager := cron.NewManager(maintenanceService, log)
	if err := cronManager.Start(); err != nil {
		log.Fatal("failed to start cron manager", logger.Error(err))
	}

	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:      cfg.JWT.Secret,
		Issuer:      cfg.JWT.Issuer,
		TokenExpiry: cfg.JWT.TokenExpiry,
	})

	router := buildRouter(cfg, log, jwtManager, ratingService, playlistService, songService)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server listening", logger.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", logger.Error(err))
	}

	cronManager.Stop()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("redis close failed", logger.Error(err))
		}
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		log.Error("mongo disconnect failed", logger.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error("telemetry shutdown failed", logger.Error(err))
	}

	log.Info("music-backend stopped")
}

func buildRouter(
	cfg *config.Config,
	log logger.Logger,
	jwtManager *jwt.Manager,
	ratingService *service.RatingService,
	playlistService *service.PlaylistService,
	songService *service.SongService,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Tracing(serviceName))
	router.Use(middleware.Logging(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ratingHandler := handler.NewRatingHandler(ratingService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	songHandler := handler.NewSongHandler(songService)

	api := router.Group("/api/v1")

	// Reads work anonymously on public content.
	public := api.Group("")
	public.Use(middleware.OptionalAuth(jwtManager))
	{
		public.GET("/songs/:id", songHandler.GetSong)
		public.GET("/playlists/:id", playlistHandler.GetPlaylist)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(jwtManager))
	{
		authed.POST("/ratings/:songId", ratingHandler.RateSong)
		authed.DELETE("/ratings/:songId", ratingHandler.RemoveRating)

		authed.POST("/songs/:id/like", songHandler.ToggleLike)

		authed.POST("/playlists", playlistHandler.CreatePlaylist)
		authed.GET("/playlists", playlistHandler.ListPlaylists)
		authed.PUT("/playlists/:id", playlistHandler.UpdatePlaylist)
		authed.DELETE("/playlists/:id", playlistHandler.DeletePlaylist)

		authed.POST("/playlists/:id/songs", playlistHandler.AddSong)
		authed.DELETE("/playlists/:id/songs/:songId", playlistHandler.RemoveSong)
		authed.PUT("/playlists/:id/songs/:songId/position", playlistHandler.ReorderSong)

		authed.POST("/playlists/:id/follow", playlistHandler.ToggleFollow)

		authed.POST("/playlists/:id/collaborators", playlistHandler.SetCollaborator)
		authed.DELETE("/playlists/:id/collaborators/:userId", playlistHandler.RemoveCollaborator)
	}

	return router
}
