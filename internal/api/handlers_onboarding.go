package api

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/foliogate/internal/batch"
	"github.com/terraincognita07/foliogate/internal/models"
	"github.com/terraincognita07/foliogate/internal/services"
	"github.com/terraincognita07/foliogate/internal/taxonomy"
)

type registrationInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	FullName   string `json:"full_name" form:"full_name"`
	InviteCode string `json:"invite_code" form:"invite_code"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registrationInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, taxonomy.CodeEmailRequired)
	}

	handler.ensureDependencies()
	user, err := handler.registrationService.Register(input.Email, input.Password, input.FullName, input.InviteCode)
	if err != nil {
		return apiError(c, registrationErrorCode(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": summarizeUser(&user)})
}

// CreatePortfolio runs the onboarding pipeline for the authenticated user:
// structural file checks, full row validation, all-or-nothing commit, then
// the synchronous batch trigger. Commit and batch are separate failure
// domains: a failed batch leaves the committed portfolio in place and both
// outcomes reach the caller.
func (handler *Handler) CreatePortfolio(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, taxonomy.CodeTokenMissing)
	}

	fileName, data, err := handler.readPortfolioUpload(c)
	if err != nil {
		return apiError(c, structuralFileErrorCode(err))
	}

	rows, rowErrors, err := handler.ingest.Parse(fileName, data)
	if err != nil {
		return apiError(c, structuralFileErrorCode(err))
	}
	if len(rowErrors) > 0 {
		return rowErrorList(c, rowErrors)
	}
	if len(rows) == 0 {
		return apiError(c, taxonomy.CodePortfolioEmpty)
	}

	handler.ensureDependencies()
	exists, err := handler.repositories.Portfolios.ExistsForUser(user.ID)
	if err != nil {
		return apiError(c, taxonomy.CodeInternal)
	}
	if exists {
		return apiError(c, taxonomy.CodePortfolioExists)
	}

	portfolio := models.Portfolio{UserID: user.ID, CreatedAt: time.Now()}
	positions := positionsFromRows(rows)
	if err := handler.repositories.Portfolios.CommitBatch(&portfolio, positions); err != nil {
		return apiError(c, portfolioErrorCode(err))
	}

	batchResult := handler.triggerBatch(c.UserContext(), user.ID, portfolio.ID)
	return c.JSON(fiber.Map{
		"portfolio_id":       portfolio.ID,
		"positions_imported": len(positions),
		"batch":              batchResult,
	})
}

func (handler *Handler) readPortfolioUpload(c *fiber.Ctx) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, services.ErrFileRequired
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, services.ErrFileRequired
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, services.ErrFileRequired
	}
	return fileHeader.Filename, data, nil
}

func positionsFromRows(rows []services.PositionRow) []models.Position {
	positions := make([]models.Position, 0, len(rows))
	for _, row := range rows {
		positions = append(positions, models.Position{
			Symbol:        row.Symbol,
			Quantity:      row.Quantity,
			CostBasis:     row.CostBasis,
			TradeDate:     row.TradeDate,
			EquityBalance: row.EquityBalance,
		})
	}
	return positions
}

// triggerBatch blocks until the engine answers or the configured deadline
// lapses. The portfolio is already committed; whatever happens here is
// reported alongside, never rolled into, that outcome.
func (handler *Handler) triggerBatch(parent context.Context, userID uint, portfolioID uint) fiber.Map {
	if handler.batchRunner == nil {
		return fiber.Map{"status": "skipped"}
	}
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithTimeout(parent, handler.batchTimeout)
	defer cancel()

	err := handler.batchRunner.Run(ctx, userID, portfolioID)
	if err == nil {
		return fiber.Map{"status": "completed"}
	}

	log.Printf("batch trigger failed: user=%d portfolio=%d err=%v", userID, portfolioID, err)
	if errors.Is(err, batch.ErrBatchTimeout) {
		entry := taxonomy.Lookup(taxonomy.CodeBatchTimeout)
		return fiber.Map{"status": "timeout", "code": entry.Code, "message": entry.Message}
	}
	entry := taxonomy.Lookup(taxonomy.CodeBatchFailed)
	return fiber.Map{"status": "failed", "code": entry.Code, "message": entry.Message}
}
