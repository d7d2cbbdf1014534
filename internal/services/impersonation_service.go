package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/foliogate/internal/db"
	"github.com/terraincognita07/foliogate/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTargetNotFound       = errors.New("impersonation target not found")
	ErrTargetIsSuperuser    = errors.New("impersonation target is a superuser")
	ErrAlreadyImpersonating = errors.New("impersonation session already active")
	ErrNoActiveSession      = errors.New("no active impersonation session")
)

// ImpersonationWindow bounds every session; there is no way to extend one.
const ImpersonationWindow = 8 * time.Hour

type ImpersonationUserRepository interface {
	FindByID(userID uint) (models.User, error)
}

type ImpersonationSessionRepository interface {
	Start(session *models.ImpersonationSession) error
	FindActive(operatorID uint, now time.Time) (models.ImpersonationSession, error)
	End(operatorID uint, now time.Time) (models.ImpersonationSession, error)
}

// ImpersonationService drives the NONE -> ACTIVE -> ENDED session machine.
// Exclusivity under concurrent starts is the store's partial unique index;
// this layer supplies the target checks and the expiry semantics.
type ImpersonationService struct {
	users    ImpersonationUserRepository
	sessions ImpersonationSessionRepository
}

func NewImpersonationService(users ImpersonationUserRepository, sessions ImpersonationSessionRepository) *ImpersonationService {
	return &ImpersonationService{users: users, sessions: sessions}
}

// Start opens a session for the operator over the target. The caller has
// already proven the operator's superuser flag against fresh store state.
// Superuser targets are rejected so an impersonated identity can never
// reach the admin surface, which also rules out nesting.
func (service *ImpersonationService) Start(operatorID uint, targetID uint, now time.Time) (models.ImpersonationSession, models.User, error) {
	target, err := service.users.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ImpersonationSession{}, models.User{}, ErrTargetNotFound
		}
		return models.ImpersonationSession{}, models.User{}, err
	}
	if target.IsSuperuser {
		return models.ImpersonationSession{}, models.User{}, ErrTargetIsSuperuser
	}

	session := models.ImpersonationSession{
		ID:         uuid.NewString(),
		OperatorID: operatorID,
		TargetID:   targetID,
		StartedAt:  now,
		ExpiresAt:  now.Add(ImpersonationWindow),
	}
	if err := service.sessions.Start(&session); err != nil {
		if errors.Is(err, db.ErrActiveSessionExists) {
			return models.ImpersonationSession{}, models.User{}, ErrAlreadyImpersonating
		}
		return models.ImpersonationSession{}, models.User{}, err
	}

	return session, target, nil
}

// Stop transitions the operator's active session to ENDED.
func (service *ImpersonationService) Stop(operatorID uint, now time.Time) (models.ImpersonationSession, error) {
	session, err := service.sessions.End(operatorID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ImpersonationSession{}, ErrNoActiveSession
		}
		return models.ImpersonationSession{}, err
	}
	return session, nil
}

// Active reports the operator's current session, if one is neither ended
// nor expired. An expired session counts as ended even without a stop call.
func (service *ImpersonationService) Active(operatorID uint, now time.Time) (models.ImpersonationSession, bool, error) {
	session, err := service.sessions.FindActive(operatorID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ImpersonationSession{}, false, nil
		}
		return models.ImpersonationSession{}, false, err
	}
	return session, session.ActiveAt(now), nil
}
