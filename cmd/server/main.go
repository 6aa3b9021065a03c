package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/config"
	internalhttp "github.com/Prabesh2159/prestige-builds-locale-wise/internal/http"
	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/session"
	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/staging"
	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := buildVerifier(cfg)
	if err != nil {
		log.Fatalf("verifier setup failed: %v", err)
	}

	backend, cleanup, err := buildBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("session backend setup failed: %v", err)
	}
	defer cleanup()

	blobs, err := buildBlobStore(cfg)
	if err != nil {
		log.Fatalf("blob store setup failed: %v", err)
	}

	sessions := session.NewManager(verifier, backend, cfg.SessionTTL)
	server := internalhttp.NewServer(cfg, store.NewSeeded(), sessions, staging.NewStager(), blobs)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("prestige-builds listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildVerifier selects the credential policy. "static" pins the configured
// admin account; "format" accepts any well-formed credential pair, matching
// the demo behaviour the site shipped with.
func buildVerifier(cfg config.Config) (session.CredentialVerifier, error) {
	switch cfg.VerifierMode {
	case "static":
		return session.NewStaticVerifier(cfg.AdminEmail, cfg.AdminPassword)
	default:
		return session.FormatVerifier{}, nil
	}
}

func buildBackend(ctx context.Context, cfg config.Config) (session.Backend, func(), error) {
	if cfg.RedisAddr == "" {
		return session.NewMemoryBackend(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return session.NewRedisBackend(client), func() { _ = client.Close() }, nil
}

func buildBlobStore(cfg config.Config) (staging.BlobStore, error) {
	if cfg.UploadDir == "" {
		return staging.NewMemoryBlobStore(cfg.BaseURL), nil
	}
	return staging.NewDiskBlobStore(cfg.UploadDir, cfg.BaseURL)
}
