package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/foliogate/internal/taxonomy"
)

type impersonateInput struct {
	TargetUserID uint `json:"target_user_id" form:"target_user_id"`
}

// Impersonate opens a bounded session over the target and mints a
// short-lived token whose subject is the target. Issuance is logged against
// the operator; the token's privilege flag is the target's own, so the
// borrowed identity cannot reach the admin surface.
func (handler *Handler) Impersonate(c *fiber.Ctx) error {
	operator, ok := currentUser(c)
	if !ok {
		return apiError(c, taxonomy.CodeTokenMissing)
	}

	input := impersonateInput{}
	if err := c.BodyParser(&input); err != nil || input.TargetUserID == 0 {
		return apiError(c, taxonomy.CodeTargetNotFound)
	}

	handler.ensureDependencies()
	now := time.Now()
	session, target, err := handler.impersonationService.Start(operator.ID, input.TargetUserID, now)
	if err != nil {
		return apiError(c, impersonationErrorCode(err))
	}

	token, err := handler.buildToken(&target, session.ExpiresAt.Sub(now), operator.ID)
	if err != nil {
		return apiError(c, taxonomy.CodeInternal)
	}

	log.Printf("impersonation started: operator=%d target=%d session=%s expires=%s",
		operator.ID, target.ID, session.ID, session.ExpiresAt.Format(time.RFC3339))

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"expires_at":   session.ExpiresAt,
		"target":       summarizeUser(&target),
	})
}

func (handler *Handler) StopImpersonation(c *fiber.Ctx) error {
	operator, ok := currentUser(c)
	if !ok {
		return apiError(c, taxonomy.CodeTokenMissing)
	}

	handler.ensureDependencies()
	session, err := handler.impersonationService.Stop(operator.ID, time.Now())
	if err != nil {
		return apiError(c, impersonationErrorCode(err))
	}

	log.Printf("impersonation stopped: operator=%d target=%d session=%s",
		operator.ID, session.TargetID, session.ID)

	return c.JSON(fiber.Map{"ended": true, "ended_at": session.EndedAt})
}

func (handler *Handler) ImpersonationStatus(c *fiber.Ctx) error {
	operator, ok := currentUser(c)
	if !ok {
		return apiError(c, taxonomy.CodeTokenMissing)
	}

	handler.ensureDependencies()
	session, active, err := handler.impersonationService.Active(operator.ID, time.Now())
	if err != nil {
		return apiError(c, taxonomy.CodeInternal)
	}
	if !active {
		return c.JSON(fiber.Map{"active": false})
	}
	return c.JSON(fiber.Map{
		"active":     true,
		"target_id":  session.TargetID,
		"started_at": session.StartedAt,
		"expires_at": session.ExpiresAt,
	})
}

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	handler.ensureDependencies()
	users, err := handler.authService.ListUsers()
	if err != nil {
		return apiError(c, taxonomy.CodeInternal)
	}

	summaries := make([]userSummary, 0, len(users))
	for index := range users {
		summaries = append(summaries, summarizeUser(&users[index]))
	}
	return c.JSON(fiber.Map{"users": summaries})
}
