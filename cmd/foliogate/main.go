package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/foliogate/internal/api"
	"github.com/terraincognita07/foliogate/internal/batch"
	"github.com/terraincognita07/foliogate/internal/cli"
	"github.com/terraincognita07/foliogate/internal/db"
	"github.com/terraincognita07/foliogate/internal/services"
)

func main() {
	dbPath := getEnv("DB_PATH", filepath.Join("data", "foliogate.db"))

	if len(os.Args) > 1 {
		runSubcommand(dbPath, os.Args[1:])
		return
	}

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	port := getEnv("PORT", "8080")
	batchURL := getEnv("BATCH_URL", "http://localhost:9090/batch/trigger")
	batchTimeout := time.Duration(getEnvInt("BATCH_TIMEOUT_SECONDS", 60)) * time.Second
	maxUploadBytes := int64(getEnvInt("MAX_UPLOAD_BYTES", 1<<20))

	inviteCode := os.Getenv("INVITE_CODE")
	if inviteCode == "" {
		generated, err := services.GenerateInviteCode()
		if err != nil {
			log.Fatalf("invite code generation failed: %v", err)
		}
		inviteCode = generated
		log.Printf("INVITE_CODE not set, generated one for this process: %s", inviteCode)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler, err := api.NewHandler(database, api.Config{
		SecretKey:      secretKey,
		InviteCode:     inviteCode,
		MaxUploadBytes: maxUploadBytes,
		BatchTimeout:   batchTimeout,
		BatchRunner:    batch.NewHTTPRunner(batchURL, batchTimeout),
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Foliogate",
		DisableStartupMessage: true,
		BodyLimit:             int(maxUploadBytes) + 64*1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Foliogate listening on http://0.0.0.0:%s (db: %s, batch: %s)", port, dbPath, batchURL)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runSubcommand(dbPath string, args []string) {
	switch args[0] {
	case "promote-admin":
		if len(args) != 2 {
			log.Fatal("usage: foliogate promote-admin <email>")
		}
		if err := cli.RunPromoteAdminCommand(dbPath, args[1]); err != nil {
			log.Fatalf("promote-admin failed: %v", err)
		}
	case "demote-admin":
		if len(args) != 2 {
			log.Fatal("usage: foliogate demote-admin <email>")
		}
		if err := cli.RunDemoteAdminCommand(dbPath, args[1]); err != nil {
			log.Fatalf("demote-admin failed: %v", err)
		}
	default:
		log.Fatalf("unknown command %q (available: promote-admin, demote-admin)", args[0])
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("invalid %s %q, falling back to %d", key, raw, fallback)
		return fallback
	}
	return value
}
