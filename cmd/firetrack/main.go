package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/sebuszqo/firetrack/internal/auth"
	"github.com/sebuszqo/firetrack/internal/category"
	"github.com/sebuszqo/firetrack/internal/config"
	database "github.com/sebuszqo/firetrack/internal/db"
	"github.com/sebuszqo/firetrack/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("JSON encoding error", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		slog.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusNotFound, Response{Message: "Path not found"})
}

type Server struct {
	router          *http.ServeMux
	dbService       *database.DBService
	authHandler     *auth.Handler
	authService     auth.Service
	userHandler     *user.Handler
	categoryHandler *category.Handler
}

func NewServer(dbService *database.DBService, authHandler *auth.Handler, authService auth.Service, userHandler *user.Handler, categoryHandler *category.Handler) *Server {
	return &Server{
		dbService:       dbService,
		authHandler:     authHandler,
		authService:     authService,
		userHandler:     userHandler,
		categoryHandler: categoryHandler,
		router:          http.NewServeMux(),
	}
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	health := s.dbService.Health(r.Context())
	status := http.StatusOK
	if health["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, health)
}

func (s *Server) RegisterRoutes() {
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	protected := s.authService.JWTAccessTokenMiddleware()
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", protected(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))

	// CATEGORIES API
	protectedRoutes.Handle("POST /api/protected/categories", protected(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	protectedRoutes.Handle("GET /api/protected/categories/{categoryID}", protected(s.categoryHandler.ValidatePathParamsMiddleware(http.HandlerFunc(s.categoryHandler.GetCategory), "categoryID")))
	protectedRoutes.Handle("DELETE /api/protected/categories/{categoryID}", protected(s.categoryHandler.ValidatePathParamsMiddleware(http.HandlerFunc(s.categoryHandler.DeleteCategory), "categoryID")))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

// runServer serves on ln until ctx is cancelled. It returns only after in-flight requests have
// finished or shutdownTimeout has passed, so resources closed by the caller outlive every handler.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}

// exitOnError logs err and terminates the process. Only used while starting up.
func exitOnError(err error, msg string) {
	if err == nil {
		return
	}
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func setupLogger(environment string) {
	level := slog.LevelInfo
	if environment == "dev" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func main() {
	cfg, err := config.Load()
	exitOnError(err, "Missing configuration, update to start server")
	setupLogger(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbService, err := database.NewDBService(ctx, cfg.DBConnectionString)
	exitOnError(err, "Could not initialize database")
	defer dbService.Close()

	exitOnError(dbService.Migrate(ctx), "Could not apply database schema")

	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	exitOnError(err, "Could not create JWT manager")

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService, respondJSON, respondError)

	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService, respondJSON, respondError)

	categoryStore := category.NewStore(dbService.DB)
	categoryHandler := category.NewHandler(categoryStore, respondJSON, respondError)

	server := NewServer(dbService, authHandler, authService, userHandler, categoryHandler)
	server.RegisterRoutes()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(server.router)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           loggingMiddleware(corsHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", httpServer.Addr)
	exitOnError(err, "Server failed to start")

	slog.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
	exitOnError(runServer(ctx, httpServer, ln, 10*time.Second), "Server failed")
	slog.Info("server stopped")
}
