package models

import "finanzas/internal/domain"

// SavingsGoal is a row of the savings_goals table.
type SavingsGoal struct {
	Base
	UserID        string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string      `gorm:"not null" json:"name"`
	TargetAmount  int64       `gorm:"column:target_amount;not null" json:"target_amount"`
	CurrentAmount int64       `gorm:"column:current_amount;not null;default:0" json:"current_amount"`
	Deadline      domain.Date `gorm:"type:date" json:"deadline"`
	Color         string      `gorm:"type:varchar(7)" json:"color"`
}
