package models

import "time"

// ImpersonationSession records one bounded identity override by a superuser.
// A session is active while ended_at is unset and expires_at is in the
// future; expiry alone is enough to deactivate it, an explicit stop only
// records when the operator gave the identity back.
type ImpersonationSession struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	OperatorID uint       `json:"operator_id" gorm:"not null"`
	TargetID   uint       `json:"target_id" gorm:"not null"`
	StartedAt  time.Time  `json:"started_at" gorm:"not null"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"not null"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

func (ImpersonationSession) TableName() string {
	return "impersonation_sessions"
}

func (session *ImpersonationSession) ActiveAt(now time.Time) bool {
	return session.EndedAt == nil && now.Before(session.ExpiresAt)
}
