package models

import "finanzas/internal/domain"

// Transaction is a row of the transactions table.
type Transaction struct {
	Base
	UserID      string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Date        domain.Date `gorm:"type:date;not null;index" json:"date"`
	Type        string      `gorm:"type:varchar(10);not null" json:"type"`
	Category    string      `gorm:"not null;default:''" json:"category"`
	Amount      int64       `gorm:"not null" json:"amount"`
	Description string      `gorm:"not null;default:''" json:"description"`
}
