package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/foliogate/internal/models"
	"gorm.io/gorm"
)

var ErrActiveSessionExists = errors.New("active impersonation session exists")

type ImpersonationRepository struct {
	database *gorm.DB
}

func NewImpersonationRepository(database *gorm.DB) *ImpersonationRepository {
	return &ImpersonationRepository{database: database}
}

// Start inserts a new session for the operator. Expired-but-unended rows are
// closed in the same transaction first, so logical expiry never blocks a
// legitimate restart; the partial unique index on (operator_id) WHERE
// ended_at IS NULL then rejects a genuinely concurrent second start.
func (repo *ImpersonationRepository) Start(session *models.ImpersonationSession) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := closeExpiredSessions(tx, session.OperatorID, session.StartedAt); err != nil {
			return err
		}
		if err := tx.Create(session).Error; err != nil {
			if IsUniqueViolation(err) {
				return ErrActiveSessionExists
			}
			return err
		}
		return nil
	})
}

// FindActive returns the operator's session that is neither ended nor
// expired at the given instant.
func (repo *ImpersonationRepository) FindActive(operatorID uint, now time.Time) (models.ImpersonationSession, error) {
	var session models.ImpersonationSession
	err := repo.database.
		Where("operator_id = ? AND ended_at IS NULL AND expires_at > ?", operatorID, now).
		First(&session).Error
	if err != nil {
		return models.ImpersonationSession{}, err
	}
	return session, nil
}

// End closes the operator's active session, recording when it ended.
// Returns gorm.ErrRecordNotFound if no session is active at the instant.
func (repo *ImpersonationRepository) End(operatorID uint, now time.Time) (models.ImpersonationSession, error) {
	var session models.ImpersonationSession
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("operator_id = ? AND ended_at IS NULL AND expires_at > ?", operatorID, now).
			First(&session).Error; err != nil {
			return err
		}
		session.EndedAt = &now
		return tx.Model(&models.ImpersonationSession{}).
			Where("id = ?", session.ID).
			Update("ended_at", now).Error
	})
	if err != nil {
		return models.ImpersonationSession{}, err
	}
	return session, nil
}

func closeExpiredSessions(tx *gorm.DB, operatorID uint, now time.Time) error {
	return tx.Model(&models.ImpersonationSession{}).
		Where("operator_id = ? AND ended_at IS NULL AND expires_at <= ?", operatorID, now).
		Update("ended_at", gorm.Expr("expires_at")).Error
}
