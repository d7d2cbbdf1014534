package db

import (
	"errors"

	"github.com/terraincognita07/foliogate/internal/models"
	"gorm.io/gorm"
)

var ErrPortfolioExists = errors.New("portfolio already exists")

type PortfolioRepository struct {
	database *gorm.DB
}

func NewPortfolioRepository(database *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{database: database}
}

func (repo *PortfolioRepository) FindByUserID(userID uint) (models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := repo.database.Where("user_id = ?", userID).First(&portfolio).Error; err != nil {
		return models.Portfolio{}, err
	}
	return portfolio, nil
}

func (repo *PortfolioRepository) ExistsForUser(userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Portfolio{}).
		Where("user_id = ?", userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// CommitBatch persists the portfolio and every position in one transaction.
// The unique index on portfolios.user_id is the authority for the
// one-portfolio-per-user invariant: a concurrent loser surfaces here as
// ErrPortfolioExists with nothing persisted.
func (repo *PortfolioRepository) CommitBatch(portfolio *models.Portfolio, positions []models.Position) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(portfolio).Error; err != nil {
			if IsUniqueViolation(err) {
				return ErrPortfolioExists
			}
			return err
		}
		for index := range positions {
			positions[index].PortfolioID = portfolio.ID
		}
		if len(positions) > 0 {
			if err := tx.Create(&positions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *PortfolioRepository) CountPositions(portfolioID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Position{}).
		Where("portfolio_id = ?", portfolioID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
