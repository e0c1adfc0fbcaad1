package models

import "finanzas/internal/domain"

// Debt is a row of the debts table.
type Debt struct {
	Base
	UserID       string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string      `gorm:"not null" json:"name"`
	TotalAmount  int64       `gorm:"column:total_amount;not null" json:"total_amount"`
	Balance      int64       `gorm:"not null" json:"balance"`
	Deadline     domain.Date `gorm:"type:date" json:"deadline"`
	Category     string      `gorm:"not null;default:''" json:"category"`
	InterestRate *float64    `gorm:"column:interest_rate" json:"interest_rate,omitempty"`
	PaymentDay   *int        `gorm:"column:payment_day;index" json:"payment_day,omitempty"`
}
