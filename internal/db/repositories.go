package db

import "gorm.io/gorm"

type Repositories struct {
	Users          *UserRepository
	Portfolios     *PortfolioRepository
	Impersonations *ImpersonationRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(database),
		Portfolios:     NewPortfolioRepository(database),
		Impersonations: NewImpersonationRepository(database),
	}
}
