package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)
	_ = v.RegisterValidation("timeframe", validateTimeframe)
	_ = v.RegisterValidation("theme", validateTheme)
	return v
}

func TestCustomTags(t *testing.T) {
	v := newValidate()

	tests := []struct {
		tag   string
		value string
		valid bool
	}{
		{"hex_color", "#10B981", true},
		{"hex_color", "#fff", true},
		{"hex_color", "10B981", false},
		{"hex_color", "#GGGGGG", false},
		{"transaction_type", "income", true},
		{"transaction_type", "expense", true},
		{"transaction_type", "transfer", false},
		{"transaction_type", "ingreso", false},
		{"calendar_date", "2024-02-29", true},
		{"calendar_date", "2023-02-29", false},
		{"calendar_date", "29/02/2024", false},
		{"calendar_date", "", false},
		{"timeframe", "1M", true},
		{"timeframe", "1Y", true},
		{"timeframe", "2M", false},
		{"theme", "dark", true},
		{"theme", "light", true},
		{"theme", "blue", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.value, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if tt.valid && err != nil {
				t.Errorf("expected %q to pass %s: %v", tt.value, tt.tag, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("expected %q to fail %s", tt.value, tt.tag)
			}
		})
	}
}
