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

	"carecamps/auth"
	"carecamps/camps"
	"carecamps/config"
	"carecamps/contact"
	"carecamps/db"
	"carecamps/mailer"
	"carecamps/middleware"
	"carecamps/pay"
	"carecamps/ratelim"
	"carecamps/rdx"
	"carecamps/registrations"
	"carecamps/reviews"
	"carecamps/routes"
	"carecamps/stats"
	"carecamps/stripe"
	"carecamps/subscribers"
	"carecamps/users"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "server running")
}

func buildDeps(cfg *config.Config, colls *db.Collections, cache *rdx.Cache) *routes.Deps {
	tokens := auth.NewTokenService(cfg.JWTSecret)
	userStore := users.NewStore(colls.Users)
	mail := mailer.New(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailAppPassword, cfg.OperatorInbox)

	return &routes.Deps{
		Auth:          auth.NewHandler(tokens),
		Users:         users.NewHandler(userStore),
		Camps:         camps.NewHandler(camps.NewStore(colls.Camps), cache),
		Registrations: registrations.NewHandler(registrations.NewStore(colls.Registrations, colls.Camps), cache, mail),
		Reviews:       reviews.NewHandler(reviews.NewStore(colls.Reviews)),
		Pay:           pay.NewHandler(pay.NewStore(colls.Payments), stripe.New(cfg.StripeSecretKey)),
		Stats:         stats.NewHandler(stats.NewStore(colls.Camps, colls.Registrations, colls.Payments), cache),
		Subscribers:   subscribers.NewHandler(subscribers.NewStore(colls.Subscribers)),
		Contact:       contact.NewHandler(contact.NewStore(colls.Messages), mail),
		Gate:          middleware.NewGate(tokens, userStore),
		Limiter:       ratelim.NewRateLimiter(),
	}
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	client, colls, err := db.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	cache := rdx.New(cfg.RedisAddr)

	router := httprouter.New()
	router.GET("/health", Index)
	routes.RoutesWrapper(router, buildDeps(cfg, colls, cache))

	// middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
