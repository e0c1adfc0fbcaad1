package aggregator

import (
	"testing"
	"time"

	"finanzas/internal/domain"
)

func TestSearch(t *testing.T) {
	d := day(2024, time.January, 1)
	txs := []domain.Transaction{
		{ID: "1", Date: d, Type: domain.TransactionTypeExpense, Category: "Comida", Description: "Mercado semanal"},
		{ID: "2", Date: d, Type: domain.TransactionTypeExpense, Category: "Transporte", Description: "Taxi"},
		{ID: "3", Date: d, Type: domain.TransactionTypeIncome, Category: "Salario", Description: "Pago MERCADO libre"},
	}

	t.Run("short terms match nothing", func(t *testing.T) {
		if got := Search(txs, "m", 0); len(got) != 0 {
			t.Errorf("expected no results, got %d", len(got))
		}
	})

	t.Run("case-insensitive on description and category", func(t *testing.T) {
		got := Search(txs, "mercado", 0)
		if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
			t.Errorf("unexpected results: %+v", got)
		}
		got = Search(txs, "TRANS", 0)
		if len(got) != 1 || got[0].ID != "2" {
			t.Errorf("unexpected results: %+v", got)
		}
	})

	t.Run("limit", func(t *testing.T) {
		if got := Search(txs, "a", 1); len(got) != 0 {
			t.Error("single-letter term must not match")
		}
		if got := Search(txs, "me", 1); len(got) != 1 {
			t.Errorf("expected 1 result, got %d", len(got))
		}
	})
}

func TestFilterByType(t *testing.T) {
	d := day(2024, time.January, 1)
	txs := []domain.Transaction{income(d, "a", 1), expense(d, "b", 2), income(d, "c", 3)}
	if got := FilterByType(txs, domain.TransactionTypeIncome); len(got) != 2 {
		t.Errorf("expected 2 income transactions, got %d", len(got))
	}
}
