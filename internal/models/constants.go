package models

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

// Transaction types
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	// TypeBoth is only valid as a rule's ApplicableType, never on a transaction.
	TypeBoth TransactionType = "both"
)

// AppliesTo reports whether a rule with this applicable type matches
// transactions of the given type.
func (t TransactionType) AppliesTo(txType TransactionType) bool {
	return t == TypeBoth || t == txType
}

// ResultSource identifies which stage of the engine produced a categorization.
type ResultSource string

// Categorization sources
const (
	SourceRule       ResultSource = "rule"
	SourceHistory    ResultSource = "history"
	SourceSimilarity ResultSource = "similarity"
	SourceNone       ResultSource = "none"
)

// Categories
const (
	CategoryUncategorized = "Uncategorized"
	CategoryFood          = "Alimentação"
	CategoryTransport     = "Transporte"
	CategoryHousing       = "Moradia"
	CategoryHealth        = "Saúde"
	CategoryEducation     = "Educação"
	CategoryLeisure       = "Lazer"
	CategoryShopping      = "Compras"
	CategoryServices      = "Serviços"
	CategorySalary        = "Salário"
	CategoryInvestments   = "Investimentos"
	CategoryTransfers     = "Transferências"
	CategoryTaxes         = "Impostos"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDataFile   = 0644
	PermissionDirectory  = 0750
)
