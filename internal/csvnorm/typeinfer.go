package csvnorm

import (
	"strings"

	"fpereira/extrato-csv/internal/models"
	"fpereira/extrato-csv/internal/textnorm"
)

// Signals in an explicit type column that mark money coming in. Anything else
// in that column is treated as an expense.
var incomeTypeKeywords = []string{"receita", "entrada", "credito"}

// Description keywords that force expense classification even when the amount
// came in positive (some exports report everything unsigned).
var expenseOverrideKeywords = []string{
	"pagamento", "compra", "debito", "saque", "tarifa", "boleto", "fatura",
}

// InferType decides income vs expense. An explicit type column wins; without
// one the amount sign decides, except that expense-indicating description
// keywords override a positive sign.
func InferType(typeCell, description string, negative bool) models.TransactionType {
	if typeCell != "" {
		normalized := textnorm.Normalize(typeCell)
		for _, keyword := range incomeTypeKeywords {
			if strings.Contains(normalized, keyword) {
				return models.TypeIncome
			}
		}
		return models.TypeExpense
	}

	normalizedDescription := textnorm.Normalize(description)
	for _, keyword := range expenseOverrideKeywords {
		if strings.Contains(normalizedDescription, keyword) {
			return models.TypeExpense
		}
	}

	if negative {
		return models.TypeExpense
	}
	return models.TypeIncome
}
