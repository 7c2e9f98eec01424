package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/config"
	controller "github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/controllers"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/database"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/routes"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/services"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// .env first, then the process environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// stdout plus a rotating file under LOG_PATH
	logger, err := utils.InitLogger(cfg.Log.Path, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect, ping and create indexes under one deadline
	connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := database.Connect(connectCtx, cfg.Mongo.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(connectCtx, db); err != nil {
		return err
	}
	logger.Info("Connected to MongoDB",
		zap.String("database", cfg.Mongo.Database),
		zap.Bool("transactions", cfg.Mongo.Transactions),
	)

	// Repositories, then the services built on them
	users := database.NewUserRepository(db, logger)
	sessions := database.NewSessionRepository(db, logger)
	movies := database.NewMovieRepository(db, logger)
	reviews := database.NewReviewRepository(db, logger)

	authService := services.NewAuthService(users, sessions, cfg.Session.TTL, logger)
	movieService := services.NewMovieService(movies)
	// Review creation runs in a transaction only when MONGODB_TRANSACTIONS=true
	reviewService := services.NewReviewService(reviews, movies, database.NewTransactor(client, cfg.Mongo.Transactions), logger)

	// Secure and SameSite of the session cookie follow ENV
	ctl := &controller.Controller{
		Auth:    authService,
		Movies:  movieService,
		Reviews: reviewService,
		Cookies: utils.NewCookieConfig(cfg.Session.CookieName, cfg.Session.CookieDomain, cfg.Session.Secret, cfg.IsProduction()),
		Timeout: cfg.Server.RequestTimeout,
		Log:     logger.With(zap.String("component", "controller")),
	}

	for _, origin := range cfg.Server.AllowedOrigins {
		logger.Info("Allowed origin", zap.String("origin", origin))
	}

	router := routes.NewRouter(ctl, routes.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Sessions:       authService,
		Logger:         logger.With(zap.String("component", "http")),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	// On SIGINT/SIGTERM stop accepting connections and drain within SHUTDOWN_TIMEOUT
	shutdown := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("Signal caught", zap.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		shutdown <- srv.Shutdown(ctx)
	}()

	logger.Info("Server has started", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdown; err != nil {
		return err
	}

	logger.Info("Server has stopped", zap.String("addr", srv.Addr))
	return nil
}
