package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "physionomie/internal/adapters/email"
	web "physionomie/internal/adapters/http"
	"physionomie/internal/adapters/http/perf"
	"physionomie/internal/adapters/storage"
	catalogStore "physionomie/internal/adapters/storage/catalog"
	"physionomie/internal/adapters/storage/kv"
	ledgerStore "physionomie/internal/adapters/storage/ledger"
	rosterStore "physionomie/internal/adapters/storage/roster"
	sessionStore "physionomie/internal/adapters/storage/session"
	"physionomie/internal/application/orchestrators"
	"physionomie/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := os.Getenv("PHYSIO_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database with WAL mode and busy timeout
	dsn := cfg.Server.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap the kv layer with timing
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedKV := storage.NewTimedKV(kv.NewSQLiteStore(db), collector)

	stores := &web.Stores{
		Roster:   rosterStore.NewKVStore(timedKV),
		Catalog:  catalogStore.NewKVStore(timedKV),
		Ledger:   ledgerStore.NewKVStore(timedKV),
		Sessions: sessionStore.NewKVStore(timedKV),
	}

	// Seed default catalog and roster on first run
	seedDeps := orchestrators.SeedDeps{Roster: stores.Roster, Catalog: stores.Catalog}
	if err := orchestrators.ExecuteSeed(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed defaults: %v", err)
	}

	// Configure email sender
	if cfg.Email.APIKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.Email.APIKey, cfg.Email.From), cfg.Email.From, cfg.Email.ReplyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.Email.From, cfg.Email.ReplyTo)
		if cfg.IsProduction() {
			log.Println("WARNING: email api_key is not set, statement delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set api_key for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + dashboard)
	mux := web.NewMux(cfg, stores, collector)

	log.Printf("Physionomie %s starting on %s (env=%s)", version, cfg.Server.Addr, cfg.Server.Env)

	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
