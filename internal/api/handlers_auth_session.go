package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/foliogate/internal/services"
	"github.com/terraincognita07/foliogate/internal/taxonomy"
)

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, taxonomy.CodeInvalidCredentials)
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return apiError(c, taxonomy.CodeInvalidCredentials)
		}
		return apiError(c, taxonomy.CodeInternal)
	}

	token, err := handler.buildToken(&user, sessionTokenTTL, 0)
	if err != nil {
		return apiError(c, taxonomy.CodeInternal)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         summarizeUser(&user),
	})
}

// Me reports the freshly resolved identity behind the presented token; for
// an impersonation token that is the target, which is the point.
func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, taxonomy.CodeTokenMissing)
	}
	return c.JSON(fiber.Map{"user": summarizeUser(user)})
}
