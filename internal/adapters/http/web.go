// Package web wires the HTTP surface: routes, middleware and the JSON API
// handlers for the tracker, catalog, roster and analytics.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"physionomie/internal/adapters/email"
	"physionomie/internal/adapters/http/middleware"
	"physionomie/internal/adapters/http/perf"
	catalogStore "physionomie/internal/adapters/storage/catalog"
	ledgerStore "physionomie/internal/adapters/storage/ledger"
	rosterStore "physionomie/internal/adapters/storage/roster"
	sessionStore "physionomie/internal/adapters/storage/session"
	"physionomie/internal/config"
	"physionomie/internal/domain/auth"
)

// Stores holds all storage dependencies.
type Stores struct {
	Roster   rosterStore.Store
	Catalog  catalogStore.Store
	Ledger   ledgerStore.Store
	Sessions sessionStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global in-memory session registry (set by NewMux)
var sessions *middleware.SessionStore

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender = email.NewNoopSender()

var emailFromAddress string
var emailReplyTo string

// Credential configuration (set by NewMux)
var adminEmail string
var adminPassword string
var verifier auth.CredentialVerifier = auth.PlainVerifier{}

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// loadCSRFKey resolves the CSRF secret from the config (hex-encoded, 32
// bytes). In production the key MUST be set; in development a random key is
// generated per startup.
func loadCSRFKey(cfg config.Config) []byte {
	if keyHex := cfg.Server.CSRFKey; keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("csrf_key must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if cfg.IsProduction() {
		log.Fatal("csrf_key is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set csrf_key for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(cfg config.Config, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	adminEmail = cfg.Admin.Email
	adminPassword = cfg.Admin.Password
	middleware.SecureCookies = cfg.IsProduction()

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := loadCSRFKey(cfg)
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitPerMin, time.Minute)

	// Middleware order, outermost first:
	// Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> counters -> Mux
	return middleware.Chain(countRequests(mux),
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
