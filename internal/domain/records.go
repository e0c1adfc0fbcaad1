// Package domain holds the application-level records shared by the state
// container, the aggregator and the HTTP layer.
package domain

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// DefaultDebtCategory is used for debt payments when the debt has no category.
const DefaultDebtCategory = "Deudas"

// DefaultGoalColor is the swatch given to goals created without one.
const DefaultGoalColor = "#0ea5e9"

// Transaction is a single income or expense entry. Amounts are whole currency units.
type Transaction struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
}

// Debt is an outstanding obligation. Balance is what remains to be paid.
type Debt struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TotalAmount  int64    `json:"totalAmount"`
	Balance      int64    `json:"balance"`
	Deadline     Date     `json:"deadline"`
	Category     string   `json:"category"`
	InterestRate *float64 `json:"interestRate,omitempty"`
	PaymentDay   *int     `json:"paymentDay,omitempty"`
}

// PaymentCategory returns the category a payment on d is booked under.
func (d Debt) PaymentCategory() string {
	if d.Category == "" {
		return DefaultDebtCategory
	}
	return d.Category
}

// SavingsGoal is a target amount the user is saving towards.
type SavingsGoal struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TargetAmount  int64  `json:"targetAmount"`
	CurrentAmount int64  `json:"currentAmount"`
	Deadline      Date   `json:"deadline"`
	Color         string `json:"color"`
}

// Tag is a user-defined category label for one transaction type.
type Tag struct {
	UserID string          `json:"userId"`
	Type   TransactionType `json:"type"`
	Name   string          `json:"name"`
}

// Default category vocabularies offered before any user tags.
var (
	DefaultIncomeTags  = []string{"Salario", "Negocio", "Extra"}
	DefaultExpenseTags = []string{"Comida", "Arriendo", "Servicios", "Transporte", "Deudas"}
)

// DefaultTags returns a fresh copy of the default vocabulary for t.
func DefaultTags(t TransactionType) []string {
	var src []string
	if t == TransactionTypeIncome {
		src = DefaultIncomeTags
	} else {
		src = DefaultExpenseTags
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Snapshot is the full per-user collection set.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Debts        []Debt        `json:"debts"`
	Goals        []SavingsGoal `json:"goals"`
	IncomeTags   []string      `json:"incomeTags"`
	ExpenseTags  []string      `json:"expenseTags"`
}
