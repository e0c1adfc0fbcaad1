package aggregator

import (
	"sort"

	"finanzas/internal/domain"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// CategoryTotals sums transactions of type t per category, largest first.
// Categories with equal totals keep the order they were first seen in.
func CategoryTotals(transactions []domain.Transaction, t domain.TransactionType) []CategoryTotal {
	index := make(map[string]int)
	totals := []CategoryTotal{}
	for _, tx := range transactions {
		if tx.Type != t {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, CategoryTotal{Category: tx.Category})
		}
		totals[i].Total += tx.Amount
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	return totals
}

// TopCategories returns at most n entries of CategoryTotals.
func TopCategories(transactions []domain.Transaction, t domain.TransactionType, n int) []CategoryTotal {
	totals := CategoryTotals(transactions, t)
	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}
