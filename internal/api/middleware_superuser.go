package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/foliogate/internal/taxonomy"
)

// SuperuserOnly gates the admin surface on the privilege flag of the user
// record AuthRequired just re-read from the store. The token's own
// is_superuser claim is deliberately ignored here: a demotion takes effect
// on the next request even though the old token stays verifiable, and a
// promotion does not require a fresh login.
func (handler *Handler) SuperuserOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, taxonomy.CodeTokenMissing)
	}
	if !user.IsSuperuser {
		return apiError(c, taxonomy.CodeForbidden)
	}
	return c.Next()
}
