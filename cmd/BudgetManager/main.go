package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	database "github.com/sebuszqo/BudgetManager/db"
	"github.com/sebuszqo/BudgetManager/internal/auth"
	"github.com/sebuszqo/BudgetManager/internal/budget/application"
	"github.com/sebuszqo/BudgetManager/internal/budget/infrastructure"
	"github.com/sebuszqo/BudgetManager/internal/budget/interfaces"
	"github.com/sebuszqo/BudgetManager/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router          *http.ServeMux
	dbService       *database.DBService
	authHandler     *auth.Handler
	authService     auth.Service
	userHandler     *user.Handler
	budgetHandler   *interfaces.BudgetHandler
	categoryHandler *interfaces.CategoryHandler
}

func NewServer(
	dbService *database.DBService,
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	budgetHandler *interfaces.BudgetHandler,
	categoryHandler *interfaces.CategoryHandler,
) *Server {
	return &Server{
		router:          http.NewServeMux(),
		dbService:       dbService,
		authHandler:     authHandler,
		authService:     authService,
		userHandler:     userHandler,
		budgetHandler:   budgetHandler,
		categoryHandler: categoryHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func methodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	status := http.StatusOK
	if health["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, health)
}

func (s *Server) RegisterRoutes() {
	protect := s.authService.TokenAuthMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/user/create/{$}", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/user/token/{$}", http.HandlerFunc(s.authHandler.HandleCreateToken))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Profile routes support retrieve and partial update only. Other
	// methods on the same path get an explicit 405 instead of a 404.
	publicRoutes.Handle("GET /api/user/me/{$}", protect(http.HandlerFunc(s.userHandler.HandleGetMe)))
	publicRoutes.Handle("PATCH /api/user/me/{$}", protect(http.HandlerFunc(s.userHandler.HandleUpdateMe)))
	publicRoutes.Handle("/api/user/me/{$}", http.HandlerFunc(methodNotAllowedHandler))

	// Category and budget routes all require a resolved identity.
	publicRoutes.Handle("GET /api/category/{$}", protect(http.HandlerFunc(s.categoryHandler.ListCategories)))
	publicRoutes.Handle("POST /api/category/{$}", protect(http.HandlerFunc(s.categoryHandler.CreateCategory)))

	publicRoutes.Handle("GET /api/budget/{$}", protect(http.HandlerFunc(s.budgetHandler.ListBudgets)))
	publicRoutes.Handle("POST /api/budget/{$}", protect(http.HandlerFunc(s.budgetHandler.CreateBudget)))
	publicRoutes.Handle("GET /api/budget/{budgetID}/{$}", protect(http.HandlerFunc(s.budgetHandler.GetBudget)))
	publicRoutes.Handle("POST /api/budget/{budgetID}/share/{$}", protect(http.HandlerFunc(s.budgetHandler.AddShare)))
	publicRoutes.Handle("DELETE /api/budget/{budgetID}/share/{$}", protect(http.HandlerFunc(s.budgetHandler.RemoveShare)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB); err != nil {
		log.Fatalf("Could not apply database migrations: %v", err)
	}

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)

	tokenRepo := auth.NewTokenRepository(dbService.DB)
	authService := auth.NewAuthService(tokenRepo, userService)
	authHandler := auth.NewHandler(authService)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)
	budgetService := application.NewBudgetService(budgetRepo, categoryService, userService)
	budgetHandler := interfaces.NewBudgetHandler(budgetService, respondJSON, respondError)

	server := NewServer(dbService, authHandler, authService, userHandler, budgetHandler, categoryHandler)
	server.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, loggingMiddleware(server.router)); err != nil {
		log.Fatalf("Could not start server: %v", err)
	}
}
