package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/foliogate/internal/batch"
	"github.com/terraincognita07/foliogate/internal/db"
	"github.com/terraincognita07/foliogate/internal/services"
	"gorm.io/gorm"
)

const (
	sessionTokenTTL = 30 * 24 * time.Hour

	defaultMaxUploadBytes = 1 << 20
	defaultBatchTimeout   = 60 * time.Second

	contextUserKey = "current_user"
)

// Config carries the process-wide settings the handler needs; everything is
// fixed at startup.
type Config struct {
	SecretKey      string
	InviteCode     string
	MaxUploadBytes int64
	BatchTimeout   time.Duration
	BatchRunner    batch.Runner
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	invite       *services.InvitePolicy
	ingest       *services.IngestPolicy
	batchRunner  batch.Runner
	batchTimeout time.Duration

	repositories         *db.Repositories
	authService          *services.AuthService
	registrationService  *services.RegistrationService
	impersonationService *services.ImpersonationService
}

func NewHandler(database *gorm.DB, config Config) (*Handler, error) {
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if config.InviteCode == "" {
		return nil, errors.New("invite code is required")
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = defaultMaxUploadBytes
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = defaultBatchTimeout
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(config.SecretKey),
		invite:       services.NewInvitePolicy(config.InviteCode),
		ingest:       services.NewIngestPolicy(config.MaxUploadBytes),
		batchRunner:  config.BatchRunner,
		batchTimeout: config.BatchTimeout,
	}
	handler.ensureDependencies()
	return handler, nil
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users)
	}
	if handler.registrationService == nil {
		handler.registrationService = services.NewRegistrationService(handler.repositories.Users, handler.invite)
	}
	if handler.impersonationService == nil {
		handler.impersonationService = services.NewImpersonationService(handler.repositories.Users, handler.repositories.Impersonations)
	}
}
