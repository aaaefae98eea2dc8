// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student-records-api/config"
	"student-records-api/db"
	"student-records-api/handler"
	"student-records-api/logger"
	"student-records-api/render"
	"student-records-api/repository"
	"student-records-api/router"
	"student-records-api/service"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	if config.AppConfig.Log.File != "" {
		logger.SetOutputFile(config.AppConfig.Log.File)
	}
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	if config.AppConfig.JWT.SecretKey == config.InsecureDefaultSecret {
		logger.Log.Warn("Using the insecure development signing key; set JWT_SECRET_KEY")
	}

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	r, err := buildRouter(database, redisClient)
	if err != nil {
		logger.Log.Fatalf("Error wiring application: %v", err)
	}

	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires repositories, services and handlers together. The
// signing key and store handles are fixed here, at startup, and passed in
// explicitly; request handlers read no global state.
func buildRouter(database *sql.DB, redisClient *redis.Client) (http.Handler, error) {
	negotiator, err := render.NewNegotiator()
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(database)
	studentRepo := repository.NewStudentRepository(database)

	authService := service.NewAuthService(userRepo, config.AppConfig.JWT.SecretKey)
	sessionService := service.NewSessionService(redisClient)
	studentService := service.NewStudentService(studentRepo)

	authHandler := handler.NewAuthHandler(authService, sessionService, negotiator)
	studentHandler := handler.NewStudentHandler(studentService, negotiator)
	authMW := handler.NewAuthMiddleware(authService, sessionService, negotiator)

	return router.NewRouter(authHandler, studentHandler, authMW, negotiator), nil
}

// TestApp exposes the wired router plus raw store handles for integration
// tests.
type TestApp struct {
	DB     *sql.DB
	Redis  *redis.Client
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	r, err := buildRouter(database, redisClient)
	if err != nil {
		logger.Log.Fatalf("Error wiring test application: %v", err)
	}
	return &TestApp{DB: database, Redis: redisClient, Router: r}
}
