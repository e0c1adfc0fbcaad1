package aggregator

import (
	"strings"
	"unicode/utf8"

	"finanzas/internal/domain"
)

// minSearchRunes is the shortest term that triggers a search.
const minSearchRunes = 2

// Search returns up to limit transactions whose description or category
// contains term, ignoring case. Terms shorter than two characters match
// nothing. A limit of zero or less means no limit.
func Search(transactions []domain.Transaction, term string, limit int) []domain.Transaction {
	out := []domain.Transaction{}
	if utf8.RuneCountInString(term) < minSearchRunes {
		return out
	}
	needle := strings.ToLower(term)
	for _, t := range transactions {
		if strings.Contains(strings.ToLower(t.Description), needle) ||
			strings.Contains(strings.ToLower(t.Category), needle) {
			out = append(out, t)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// FilterByType returns the transactions of type t.
func FilterByType(transactions []domain.Transaction, t domain.TransactionType) []domain.Transaction {
	out := []domain.Transaction{}
	for _, tx := range transactions {
		if tx.Type == t {
			out = append(out, tx)
		}
	}
	return out
}
