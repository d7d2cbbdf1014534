package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/foliogate/internal/taxonomy"
)

const bearerPrefix = "Bearer "

// AuthRequired verifies the bearer token statelessly, then resolves the
// subject against the store so a deleted account is rejected even while its
// token is still formally valid. The fresh record, not the claims, is what
// downstream handlers see.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	rawToken := bearerToken(c)
	if rawToken == "" {
		return apiError(c, taxonomy.CodeTokenMissing)
	}

	claims, err := handler.parseToken(rawToken)
	if err != nil {
		if errors.Is(err, errTokenExpired) {
			return apiError(c, taxonomy.CodeTokenExpired)
		}
		return apiError(c, taxonomy.CodeTokenInvalid)
	}

	subjectID, err := claims.subjectID()
	if err != nil {
		return apiError(c, taxonomy.CodeTokenInvalid)
	}

	handler.ensureDependencies()
	user, err := handler.authService.FindByID(subjectID)
	if err != nil {
		return apiError(c, taxonomy.CodeUserNotFound)
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}
