// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finanzas/internal/aggregator"
	"finanzas/internal/domain"
	"finanzas/internal/session"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("calendar_date", validateCalendarDate)
		_ = v.RegisterValidation("timeframe", validateTimeframe)
		_ = v.RegisterValidation("theme", validateTheme)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return domain.TransactionType(fl.Field().String()).Valid()
}

// validateCalendarDate accepts YYYY-MM-DD strings that name a real day.
func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}

func validateTimeframe(fl validator.FieldLevel) bool {
	_, err := aggregator.ParseTimeframe(fl.Field().String())
	return err == nil
}

func validateTheme(fl validator.FieldLevel) bool {
	return session.ValidTheme(fl.Field().String())
}
