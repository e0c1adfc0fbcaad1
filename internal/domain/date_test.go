package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	t.Run("round trips calendar days", func(t *testing.T) {
		d := NewDate(2024, time.March, 5)
		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `"2024-03-05"` {
			t.Errorf("expected \"2024-03-05\", got %s", data)
		}

		var back Date
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !back.Equal(d) {
			t.Errorf("expected %s, got %s", d, back)
		}
	})

	t.Run("empty and null are unset", func(t *testing.T) {
		for _, raw := range []string{`""`, `null`} {
			var d Date
			if err := json.Unmarshal([]byte(raw), &d); err != nil {
				t.Fatalf("unexpected error for %s: %v", raw, err)
			}
			if d.IsSet() {
				t.Errorf("expected unset date for %s", raw)
			}
		}
		data, _ := json.Marshal(Date{})
		if string(data) != "null" {
			t.Errorf("expected null, got %s", data)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`"05/03/2024"`), &d); err == nil {
			t.Error("expected error")
		}
	})
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-01-31" {
		t.Errorf("expected 2024-01-31, got %s", d)
	}
	if err := d.Scan("2024-02-01T00:00:00Z"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-02-01" {
		t.Errorf("expected 2024-02-01, got %s", d)
	}
	if err := d.Scan(nil); err != nil || d.IsSet() {
		t.Errorf("expected nil to reset the date, err=%v", err)
	}
}

func TestDateArithmetic(t *testing.T) {
	a := NewDate(2024, time.February, 28)
	b := a.AddDays(2)
	if b.String() != "2024-03-01" {
		t.Errorf("expected leap-year rollover to 2024-03-01, got %s", b)
	}
	if a.DaysUntil(b) != 2 {
		t.Errorf("expected 2 days, got %d", a.DaysUntil(b))
	}
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Error("ordering is inconsistent")
	}
}

func TestDebtPaymentCategory(t *testing.T) {
	if got := (Debt{}).PaymentCategory(); got != "Deudas" {
		t.Errorf("expected Deudas, got %q", got)
	}
	if got := (Debt{Category: "Tarjeta"}).PaymentCategory(); got != "Tarjeta" {
		t.Errorf("expected Tarjeta, got %q", got)
	}
}
