// cmd/web/main.go
//
// Lumio marketing site – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (host-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Optionally connect to Vault, then load and validate configuration.
//
//  4. Open the content snapshot and seed defaults on first run.
//
//  5. Wire the enquiry intake: optional MySQL lead archive, optional SMTP
//     notification mail.
//
//  6. Build the chi router (public site + admin JSON API + /metrics) and
//     wrap it with ForceHTTPS.
//
//  7. Serve until SIGINT/SIGTERM, then drain for up to 10 seconds.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lumioedu/web/internal/archive"
	"github.com/lumioedu/web/internal/config"
	"github.com/lumioedu/web/internal/content"
	"github.com/lumioedu/web/internal/intake"
	"github.com/lumioedu/web/internal/logger"
	"github.com/lumioedu/web/internal/media"
	"github.com/lumioedu/web/internal/message"
	"github.com/lumioedu/web/internal/middleware"
	"github.com/lumioedu/web/internal/requestinfo"
	"github.com/lumioedu/web/internal/session"
	"github.com/lumioedu/web/internal/vault"
	"github.com/lumioedu/web/internal/view"
	"github.com/lumioedu/web/internal/web"
)

const serverEnvPath = "/usr/local/etc/lumio/global.env"

// loadEnv prefers the host-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Configuration (with optional Vault secrets) ─────────────────
	//
	var secrets config.SecretResolver
	if os.Getenv("VAULT_ADDR") != "" {
		vc, err := vault.New(ctx, logOut.Infof)
		if err != nil {
			logOut.Fatalf("connect vault: %v", err)
		}
		secrets = vc
	}

	cfg, err := config.Load(ctx, secrets)
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	intake.ConfigureCSRF(cfg.Security.CSRFKey)
	if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
		logOut.Warnf("geoip disabled: %v", err)
	}

	//
	// ── 2.  Content store ───────────────────────────────────────────────
	//
	fs, err := content.NewFileStore(cfg.Paths.DataDir)
	if err != nil {
		logOut.Fatalf("open data dir: %v", err)
	}
	store := content.Open(fs, logOut)

	lib, err := media.New(cfg.Paths.DataDir, store, logOut)
	if err != nil {
		logOut.Fatalf("open media dir: %v", err)
	}

	//
	// ── 3.  Intake wiring: archive + mail are both optional ─────────────
	//
	var sink intake.Sink
	if cfg.Archive.DSN != "" {
		ar, err := archive.Open(cfg.Archive.DSN)
		if err != nil {
			logOut.Fatalf("connect lead archive: %v", err)
		}
		defer ar.Close()
		sink = ar
		logOut.Infof("lead archive online")
	}

	mailer := message.New(cfg.SMTP, logOut)
	var notifier intake.Notifier
	if mailer.Enabled() {
		notifier = mailer
	}

	svc := intake.New(store, sink, notifier, logOut)

	//
	// ── 4.  HTTP surface ────────────────────────────────────────────────
	//
	views := view.NewEngine(filepath.Join(cfg.Paths.Root, "web", "templates"),
		os.Getenv("LUMIO_DEV") != "")
	sessions := session.New(cfg.Security.SessionKey, cfg.HTTP.ForceHTTPS)

	srv := web.New(cfg, store, views, svc, lib, sessions,
		filepath.Join(cfg.Paths.Root, "web", "static"), logOut)

	handler := middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, srv.Router())

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logOut.Infof("listening on %s", cfg.HTTP.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logOut.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logOut.Errorf("shutdown: %v", err)
	}
}
