package models

import "time"

type Portfolio struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

type Position struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PortfolioID   uint      `json:"portfolio_id" gorm:"index;not null"`
	Symbol        string    `json:"symbol" gorm:"not null"`
	Quantity      float64   `json:"quantity" gorm:"not null"`
	CostBasis     float64   `json:"cost_basis" gorm:"not null"`
	TradeDate     time.Time `json:"trade_date" gorm:"not null"`
	EquityBalance float64   `json:"equity_balance" gorm:"not null"`
}

func (Position) TableName() string {
	return "positions"
}
