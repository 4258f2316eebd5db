package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"google.golang.org/api/option"

	"acheiBack/internal/config"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	cfg := config.LoadConfig()

	addrDefault := cfg.Server.Address
	if port := os.Getenv("PORT"); port != "" {
		addrDefault = ":" + port
	}
	if addrDefault == "" {
		addrDefault = ":4000"
	}
	addr := flag.String("addr", addrDefault, "HTTP network address")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	db, err := openDB(cfg.Database.URL)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer db.Close()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			errorLog.Printf("redis unavailable, candidate cache disabled: %v", err)
			rdb = nil
		}
	}

	fcmClient := newMessagingClient(errorLog)

	app, err := initializeApp(db, rdb, fcmClient, cfg, infoLog, errorLog)
	if err != nil {
		errorLog.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.wsManager = NewWebSocketManager()
	go app.wsManager.Run(ctx)

	go app.pipeline.Run(ctx)
	startMatchSweeper(ctx, app.pipeline, cfg.Matcher.SweepInterval, infoLog, errorLog)
	startSessionCleaner(ctx, app.userRepo, infoLog, errorLog)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Refresh-Token"},
	})

	srv := &http.Server{
		Addr:         *addr,
		ErrorLog:     errorLog,
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	infoLog.Printf("Starting server on %s", *addr)
	if err := srv.ListenAndServe(); err != nil {
		errorLog.Fatal(err)
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// newMessagingClient returns nil when Firebase credentials are not configured;
// match alerts then fall back to the log notifier.
func newMessagingClient(errorLog *log.Logger) *messaging.Client {
	credsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credsFile == "" {
		return nil
	}

	ctx := context.Background()
	fbApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credsFile))
	if err != nil {
		errorLog.Printf("firebase init failed, push notifications disabled: %v", err)
		return nil
	}
	client, err := fbApp.Messaging(ctx)
	if err != nil {
		errorLog.Printf("firebase messaging init failed, push notifications disabled: %v", err)
		return nil
	}
	return client
}
