package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"residencia-backend/internal/bootstrap"
	"residencia-backend/internal/cache"
	"residencia-backend/internal/config"
	"residencia-backend/internal/database"
	"residencia-backend/internal/engine"
	"residencia-backend/internal/handlers"
	"residencia-backend/internal/health"
	h "residencia-backend/internal/http"
	"residencia-backend/internal/middleware"
	"residencia-backend/internal/realtime"
	"residencia-backend/internal/services"
	"residencia-backend/internal/storage"
	"residencia-backend/internal/store"
)

// selectStore picks the persistence backend: direct Postgres when a DSN is
// configured, the Supabase REST gateway when real credentials are present,
// otherwise the no-op store for demo installs.
func selectStore(cfg *config.Config) (store.Store, bool) {
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		st, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("[Store] Postgres unavailable, falling back to demo mode: %v", err)
			return store.NewNullStore(), true
		}
		if err := database.NewMigrator(st.Pool()).RunMigrations(ctx); err != nil {
			log.Printf("[Store] Migrations failed, falling back to demo mode: %v", err)
			st.Close()
			return store.NewNullStore(), true
		}
		log.Println("[Store] Using direct Postgres store")
		return st, false
	}

	if !cfg.IsDemo() {
		st, err := store.NewSupabaseStore(store.SupabaseConfig{
			ProjectURL:     cfg.Supabase.URL,
			AnonKey:        cfg.Supabase.AnonKey,
			ServiceRoleKey: cfg.Supabase.ServiceRoleKey,
		})
		if err != nil {
			log.Printf("[Store] Supabase misconfigured, falling back to demo mode: %v", err)
			return store.NewNullStore(), true
		}
		log.Println("[Store] Using Supabase REST store")
		return st, false
	}

	log.Println("[Store] No backend configured, running in demo mode")
	return store.NewNullStore(), true
}

func main() {
	cfg := config.Load()

	st, demo := selectStore(cfg)

	// Redis is optional: a dead cache only costs recomputation
	if cfg.Redis.Addr != "" {
		if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Printf("[Redis] Cache disabled: %v", err)
		} else {
			log.Println("[Redis] Cache connected")
		}
	}

	r2, err := storage.NewClient(context.Background(), cfg)
	if err != nil {
		log.Printf("[Storage] R2 disabled: %v", err)
		r2 = nil
	} else if r2 != nil {
		log.Println("[Storage] R2 uploads enabled")
	}

	eng := engine.New(st)

	loader := &bootstrap.Loader{Store: st, Engine: eng, Demo: demo}
	live := loader.LoadAll(context.Background())
	if !live {
		demo = true
	}

	// Push every state change to connected dashboards
	hub := realtime.NewHub()
	eng.Subscribe(func(s engine.State) { hub.Broadcast(s) })

	reservationService := services.NewReservationService(eng)
	receiptService := services.NewReceiptService(eng)
	statsService := services.NewStatsService(eng)

	checker := health.NewHealthChecker(st, demo)

	router := h.NewRouter(
		handlers.NewStateHandler(eng),
		handlers.NewRoomHandler(eng),
		handlers.NewResidentHandler(eng, r2),
		handlers.NewReservationHandler(eng, reservationService),
		handlers.NewPaymentHandler(eng, receiptService),
		handlers.NewExpenseHandler(eng),
		handlers.NewMaintenanceHandler(eng, r2),
		handlers.NewConfigHandler(eng),
		handlers.NewStatsHandler(statsService),
		handlers.NewFileHandler(r2),
		handlers.NewHealthHandler(checker),
		hub,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			middleware.MetricsMiddleware(
				corsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{Addr: addr, Handler: handler}

	go func() {
		mode := "live"
		if demo {
			mode = "demo"
		}
		log.Printf("Server running on %s (mode: %s)", addr, mode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	// Let in-flight persistence writes finish before the process exits
	eng.Drain()
}
