package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/foliogate/internal/db"
	"github.com/terraincognita07/foliogate/internal/models"
	"github.com/terraincognita07/foliogate/internal/services"
	"github.com/terraincognita07/foliogate/internal/taxonomy"
)

func apiError(c *fiber.Ctx, code taxonomy.Code) error {
	entry := taxonomy.Lookup(code)
	return c.Status(entry.Status).JSON(fiber.Map{
		"error": fiber.Map{"code": entry.Code, "message": entry.Message},
	})
}

// rowErrorList surfaces every collected row error at once; the file is the
// one place where multiple simultaneous problems must all reach the caller.
func rowErrorList(c *fiber.Ctx, rowErrors []services.RowError) error {
	items := make([]fiber.Map, 0, len(rowErrors))
	for _, rowError := range rowErrors {
		entry := taxonomy.Lookup(rowError.Code)
		items = append(items, fiber.Map{
			"line":    rowError.Line,
			"field":   rowError.Field,
			"code":    entry.Code,
			"message": entry.Message,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": items})
}

type userSummary struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsSuperuser bool   `json:"is_superuser"`
}

func summarizeUser(user *models.User) userSummary {
	return userSummary{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		IsSuperuser: user.IsSuperuser,
	}
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// registrationErrorCode translates the service sentinels into the closed
// taxonomy; anything unrecognized collapses into the internal entry so a
// store error can never leak through registration.
func registrationErrorCode(err error) taxonomy.Code {
	switch {
	case errors.Is(err, services.ErrInviteRequired):
		return taxonomy.CodeInviteRequired
	case errors.Is(err, services.ErrInvalidInvite):
		return taxonomy.CodeInvalidInvite
	case errors.Is(err, services.ErrEmailRequired):
		return taxonomy.CodeEmailRequired
	case errors.Is(err, services.ErrEmailInvalid):
		return taxonomy.CodeEmailInvalid
	case errors.Is(err, services.ErrEmailExists):
		return taxonomy.CodeEmailExists
	case errors.Is(err, services.ErrPasswordRequired):
		return taxonomy.CodePasswordRequired
	case errors.Is(err, services.ErrWeakPassword):
		return taxonomy.CodeWeakPassword
	case errors.Is(err, services.ErrFullNameRequired):
		return taxonomy.CodeFullNameRequired
	default:
		return taxonomy.CodeInternal
	}
}

func structuralFileErrorCode(err error) taxonomy.Code {
	switch {
	case errors.Is(err, services.ErrFileRequired):
		return taxonomy.CodeFileRequired
	case errors.Is(err, services.ErrFileTooLarge):
		return taxonomy.CodeFileTooLarge
	case errors.Is(err, services.ErrWrongFileType):
		return taxonomy.CodeWrongFileType
	case errors.Is(err, services.ErrEmptyFile):
		return taxonomy.CodeEmptyFile
	case errors.Is(err, services.ErrMissingHeaders):
		return taxonomy.CodeMissingHeaders
	default:
		return taxonomy.CodeInternal
	}
}

func impersonationErrorCode(err error) taxonomy.Code {
	switch {
	case errors.Is(err, services.ErrTargetNotFound):
		return taxonomy.CodeTargetNotFound
	case errors.Is(err, services.ErrTargetIsSuperuser):
		return taxonomy.CodeTargetIsSuperuser
	case errors.Is(err, services.ErrAlreadyImpersonating):
		return taxonomy.CodeAlreadyImpersonating
	case errors.Is(err, services.ErrNoActiveSession):
		return taxonomy.CodeNoActiveSession
	default:
		return taxonomy.CodeInternal
	}
}

func portfolioErrorCode(err error) taxonomy.Code {
	if errors.Is(err, db.ErrPortfolioExists) {
		return taxonomy.CodePortfolioExists
	}
	return taxonomy.CodeInternal
}
