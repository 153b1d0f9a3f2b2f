package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hemanth0810/expense-tracker-app/internal/auth"
	"github.com/Hemanth0810/expense-tracker-app/internal/config"
	"github.com/Hemanth0810/expense-tracker-app/internal/expenses"
	"github.com/Hemanth0810/expense-tracker-app/internal/handlers"
	"github.com/Hemanth0810/expense-tracker-app/internal/reports"
	"github.com/Hemanth0810/expense-tracker-app/internal/sessionlog"
	"github.com/Hemanth0810/expense-tracker-app/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "db_path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logins := sessionlog.NewLedger(db)
	creds := auth.NewService(db, logins)
	ledger := expenses.NewLedger(db)
	engine := reports.NewEngine(db)

	if err := seedAdmin(context.Background(), db, cfg); err != nil {
		slog.Error("Failed to seed admin user", "error", err)
		os.Exit(1)
	}

	h := handlers.NewHandlers(db, creds, logins, ledger, engine, cfg.TemplateDir, cfg.SecureCookie, cfg.SessionTTL)
	mux := setupRouter(h, cfg.StaticDir)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        mux,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	slog.Info("Starting expense tracker", "port", cfg.Port, "db_path", cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("Server stopped gracefully")
}

// setupRouter wires the HTTP surface. Authenticated routes sit behind the
// session middleware; admin routes additionally behind the admin check.
func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /register", h.RegisterForm)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)

	authed := func(fn http.HandlerFunc) http.Handler { return h.RequireAuth(fn) }
	mux.Handle("GET /logout", authed(h.Logout))
	mux.Handle("GET /dashboard", authed(h.Dashboard))
	mux.Handle("GET /expenses", authed(h.ListExpenses))
	mux.Handle("POST /expenses", authed(h.CreateExpense))
	mux.Handle("GET /edit-expense/{id}", authed(h.EditExpense))
	mux.Handle("POST /edit-expense/{id}", authed(h.UpdateExpense))
	mux.Handle("POST /delete-expense/{id}", authed(h.DeleteExpense))
	mux.Handle("GET /profile/activity", authed(h.ProfileActivity))
	mux.Handle("GET /api/chart-data", authed(h.ChartData))

	mux.Handle("GET /admin/dashboard", h.RequireAuth(h.RequireAdmin(http.HandlerFunc(h.AdminDashboard))))
	mux.Handle("GET /admin/users", h.RequireAuth(h.RequireAdmin(http.HandlerFunc(h.AdminUsers))))

	return mux
}

// seedAdmin provisions the configured admin account when it does not exist
// yet. The admin flag lives on the user row; this seed is the only implicit
// admin.
func seedAdmin(ctx context.Context, db *storage.DB, cfg config.Config) error {
	if cfg.AdminUser == "" {
		return nil
	}

	if _, err := db.GetUserByUsername(ctx, cfg.AdminUser); err == nil {
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	email := cfg.AdminEmail
	if email == "" {
		email = cfg.AdminUser + "@localhost"
	}

	user, err := db.CreateUser(ctx, cfg.AdminUser, email, hash, true)
	if err != nil {
		return err
	}

	slog.Info("Seeded admin user", "user_id", user.ID, "username", user.Username)
	return nil
}
