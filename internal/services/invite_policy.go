package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/terraincognita07/foliogate/internal/security"
)

var ErrInvalidInvite = errors.New("invalid invite code")

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const generatedInviteCodeLength = 16

// InvitePolicy validates the single process-wide invite secret. Rotating the
// secret (restart with a new INVITE_CODE) invalidates every outstanding
// unused code at once.
type InvitePolicy struct {
	secret []byte
}

func NewInvitePolicy(secret string) *InvitePolicy {
	return &InvitePolicy{secret: []byte(strings.TrimSpace(secret))}
}

// Validate compares the candidate against the configured secret in constant
// time. Both sides are digested first so the comparison never short-circuits
// on a length mismatch.
func (policy *InvitePolicy) Validate(candidate string) bool {
	if len(policy.secret) == 0 {
		return false
	}
	candidateDigest := sha256.Sum256([]byte(strings.TrimSpace(candidate)))
	secretDigest := sha256.Sum256(policy.secret)
	return subtle.ConstantTimeCompare(candidateDigest[:], secretDigest[:]) == 1
}

// DisplayCode derives a cosmetic per-email label for invitation emails,
// formatted FOLIO-XXXX-XXXX. It carries no authorization weight and is never
// accepted in place of the secret.
func (policy *InvitePolicy) DisplayCode(email string) string {
	mac := hmac.New(sha256.New, policy.secret)
	mac.Write([]byte(NormalizeAuthEmail(email)))
	digest := mac.Sum(nil)

	letters := make([]byte, 8)
	for index := range letters {
		letters[index] = inviteCodeAlphabet[int(digest[index])%len(inviteCodeAlphabet)]
	}
	return "FOLIO-" + string(letters[:4]) + "-" + string(letters[4:])
}

// GenerateInviteCode produces a random secret for deployments that start
// without INVITE_CODE configured.
func GenerateInviteCode() (string, error) {
	return security.RandomString(generatedInviteCodeLength, inviteCodeAlphabet)
}
