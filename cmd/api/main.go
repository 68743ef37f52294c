// @title           KharchaSplit API
// @version         1.0
// @description     Group expense splitting and settlement ledger
// @BasePath        /api/v1
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/kharchasplit/kharchasplit-server/docs"
	"github.com/kharchasplit/kharchasplit-server/internal/config"
	"github.com/kharchasplit/kharchasplit-server/internal/database"
	"github.com/kharchasplit/kharchasplit-server/internal/expense"
	expensesplit "github.com/kharchasplit/kharchasplit-server/internal/expense/split"
	"github.com/kharchasplit/kharchasplit-server/internal/group"
	"github.com/kharchasplit/kharchasplit-server/internal/ledger"
	"github.com/kharchasplit/kharchasplit-server/internal/settlement"
	"github.com/kharchasplit/kharchasplit-server/internal/user"
	"github.com/kharchasplit/kharchasplit-server/pkg/logging"
	mw "github.com/kharchasplit/kharchasplit-server/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database")

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewStrategyFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupRepo, splitFactory)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature (balance checks go through the ledger)
	settlementRepo := settlement.NewRepository(db)
	ledgerService := ledger.NewService(expenseRepo, settlementRepo, groupRepo)
	ledgerHandler := ledger.NewHandler(ledgerService)
	settlementService := settlement.NewService(settlementRepo, ledgerService)
	settlementHandler := settlement.NewHandler(settlementService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.ActorMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/balances", ledgerHandler.Routes())
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
