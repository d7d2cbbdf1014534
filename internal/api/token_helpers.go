package api

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/foliogate/internal/models"
)

var (
	errTokenInvalid = errors.New("token invalid")
	errTokenExpired = errors.New("token expired")
)

type authClaims struct {
	Email       string `json:"email"`
	IsSuperuser bool   `json:"is_superuser"`
	// ActorID is set only on impersonation tokens: the superuser the
	// issuance is logged against, never the acting subject.
	ActorID uint `json:"act,omitempty"`
	jwt.RegisteredClaims
}

func (claims *authClaims) subjectID() (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, errTokenInvalid
	}
	return uint(id), nil
}

// buildToken mints a signed session credential for the user. The privilege
// flag is a snapshot taken at issuance; admin routes re-read the store
// instead of trusting it.
func (handler *Handler) buildToken(user *models.User, ttl time.Duration, actorID uint) (string, error) {
	if ttl <= 0 {
		ttl = sessionTokenTTL
	}
	now := time.Now()

	claims := authClaims{
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
		ActorID:     actorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

// parseToken verifies signature and expiry; it never consults the store.
func (handler *Handler) parseToken(rawToken string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, errTokenInvalid
	}
	if !token.Valid {
		return nil, errTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errTokenExpired
	}
	return claims, nil
}
