package advisor

import (
	"fmt"
	"strings"

	"finanzas/internal/aggregator"
)

const defaultUserName = "Usuario"

// SnapshotPrompt builds the prompt for a whole-history assessment.
func SnapshotPrompt(s aggregator.Summary, userName string) string {
	if strings.TrimSpace(userName) == "" {
		userName = defaultUserName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Eres un asesor financiero personal. Revisa la situación de %s con estos datos:\n\n", userName)
	fmt.Fprintf(&b, "- Ingresos acumulados: %d\n", s.TotalIncome)
	fmt.Fprintf(&b, "- Gastos acumulados: %d\n", s.TotalExpense)
	fmt.Fprintf(&b, "- Saldo disponible: %d\n", s.NetBalance)
	fmt.Fprintf(&b, "- Tasa de ahorro: %d%%\n", s.SavingsRate)
	fmt.Fprintf(&b, "- Deuda pendiente: %d\n\n", s.TotalDebt)
	b.WriteString(`Responde únicamente con un objeto JSON válido, sin markdown, con esta forma:
{
  "analysis": "Dos frases sobre su salud financiera, directas y empáticas.",
  "savingsTarget": "Ahorro mensual sugerido en formato moneda, por ejemplo '$ 200.000 COP'.",
  "recommendations": [
    {"type": "CDT, ETF, Fondo o Deuda", "title": "Título corto", "description": "Por qué conviene ahora.", "riskLevel": "Bajo, Medio o Alto"}
  ],
  "alert": "Una alerta si la deuda supera el 40% de los ingresos o el saldo es negativo; si no, cadena vacía."
}`)
	return b.String()
}

// PeriodPrompt builds the prompt for a period assessment.
func PeriodPrompt(r aggregator.PeriodReport) string {
	top := make([]string, 0, len(r.TopCategories))
	for _, c := range r.TopCategories {
		top = append(top, fmt.Sprintf("%s ($%d)", c.Category, c.Total))
	}
	topText := strings.Join(top, ", ")
	if topText == "" {
		topText = "sin gastos registrados"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Eres un analista financiero evaluando el periodo %s (%s a %s).\n\n", r.Label, r.From, r.To)
	fmt.Fprintf(&b, "- Ingresos: %d\n", r.Income)
	fmt.Fprintf(&b, "- Gastos: %d\n", r.Expense)
	fmt.Fprintf(&b, "- Flujo de caja: %d\n", r.Balance)
	fmt.Fprintf(&b, "- Categorías con mayor gasto: %s\n\n", topText)
	b.WriteString(`Responde únicamente con un objeto JSON válido, sin markdown, con esta forma:
{
  "summary": "Tu opinión sobre el desempeño del periodo y la razón.",
  "expenseAnalysis": "Si las categorías principales son necesarias o evitables, y cómo reducir la mayor.",
  "investmentTip": "Qué hacer con el excedente si el flujo es positivo, o cómo cubrir el déficit si es negativo.",
  "actionItem": "Una única acción concreta para el próximo periodo."
}`)
	return b.String()
}
