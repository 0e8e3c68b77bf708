package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"speakup/handlers"
	"speakup/utils"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}
	log.Println("environment:", os.Getenv("APP_ENV"))

	pgDSN := os.Getenv("DATABASE_URL")

	// Initialize the database connection pool
	dbPool, pgErr := utils.OpenDB(pgDSN)
	if pgErr != nil {
		log.Fatalf("Failed to connect to database: %v", pgErr)
	}
	defer dbPool.Close()

	store := utils.NewStore(dbPool)
	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	redisDSN := os.Getenv("REDIS_URL")
	redisPool := utils.OpenRedisPool(redisDSN)
	defer redisPool.Close()

	sessions := utils.NewSessionManager(redisPool)

	// Set up the HTTP server and handlers
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	})

	mux.HandleFunc("GET /register", func(w http.ResponseWriter, r *http.Request) {
		handlers.RegisterForm(w, r, sessions)
	})
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		handlers.Register(w, r, store, sessions)
	})
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, r *http.Request) {
		handlers.LoginForm(w, r, sessions)
	})
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		handlers.Login(w, r, store, sessions)
	})
	mux.HandleFunc("GET /logout", func(w http.ResponseWriter, r *http.Request) {
		handlers.Logout(w, r, sessions)
	})

	mux.HandleFunc("GET /users/{username}", func(w http.ResponseWriter, r *http.Request) {
		handlers.UserPage(w, r, store, store, sessions)
	})
	mux.HandleFunc("POST /users/{username}/delete", func(w http.ResponseWriter, r *http.Request) {
		handlers.DeleteUser(w, r, store, sessions)
	})

	mux.HandleFunc("GET /users/{username}/feedback/add", func(w http.ResponseWriter, r *http.Request) {
		handlers.AddFeedbackForm(w, r, store, sessions)
	})
	mux.HandleFunc("POST /users/{username}/feedback/add", func(w http.ResponseWriter, r *http.Request) {
		handlers.AddFeedback(w, r, store, store, sessions)
	})
	mux.HandleFunc("GET /feedback/{id}/update", func(w http.ResponseWriter, r *http.Request) {
		handlers.UpdateFeedbackForm(w, r, store, sessions)
	})
	mux.HandleFunc("POST /feedback/{id}/update", func(w http.ResponseWriter, r *http.Request) {
		handlers.UpdateFeedback(w, r, store, sessions)
	})
	mux.HandleFunc("POST /feedback/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
		handlers.DeleteFeedback(w, r, store, sessions)
	})

	// Everything else: notice and redirect home instead of a raw 404.
	mux.HandleFunc("/", handlers.NotFound)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Start the server
	log.Println("Starting server on", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
