package models

import "github.com/shopspring/decimal"

// CanonicalTransaction is the unified, engine-ready representation of one
// financial movement produced by the CSV pipeline or manual entry. The amount
// is always positive; direction is carried by Type.
type CanonicalTransaction struct {
	Date        string          `csv:"data"`
	Description string          `csv:"descricao"`
	Amount      decimal.Decimal `csv:"valor"`
	Type        TransactionType `csv:"tipo"`
	Category    string          `csv:"categoria"`
}

// CategorizationResult is the outcome of a single classification call.
// It is ephemeral and owned by the caller.
type CategorizationResult struct {
	Matched       bool
	Category      string
	Confidence    float64
	Source        ResultSource
	MatchedRuleID string
}

// ProcessingSummary reports aggregate counts for one CSV import.
type ProcessingSummary struct {
	Total        int
	Valid        int
	Invalid      int
	IncomeCount  int
	ExpenseCount int
}

// ProcessingOutcome is the full result of normalizing one CSV file: the
// accepted transactions, one error string per rejected row, and a summary.
type ProcessingOutcome struct {
	Transactions []CanonicalTransaction
	Errors       []string
	Summary      ProcessingSummary
}
