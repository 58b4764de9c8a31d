package convert

import (
	"testing"

	"fpereira/extrato-csv/cmd/root"
	"fpereira/extrato-csv/internal/engine"
	"fpereira/extrato-csv/internal/history"
	"fpereira/extrato-csv/internal/logging"
	"fpereira/extrato-csv/internal/models"
	"fpereira/extrato-csv/internal/rules"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *root.App {
	t.Helper()
	ruleStore := rules.NewStore(nil)
	require.NoError(t, rules.SeedDefaults(ruleStore))
	historyIndex := history.NewIndex(history.DefaultOptions(), nil)
	logger := logging.NewMockLogger()
	return &root.App{
		Logger:  logger,
		Rules:   ruleStore,
		History: historyIndex,
		Engine:  engine.New(ruleStore, historyIndex, engine.DefaultOptions(), logger),
	}
}

func TestCategorize(t *testing.T) {
	app := newTestApp(t)

	transactions := []models.CanonicalTransaction{
		{
			Date:        "2024-03-15",
			Description: "Uber viagem centro",
			Amount:      decimal.RequireFromString("23.50"),
			Type:        models.TypeExpense,
		},
		{
			Date:        "2024-03-16",
			Description: "zzz",
			Amount:      decimal.RequireFromString("10.00"),
			Type:        models.TypeExpense,
		},
	}

	categorized := Categorize(app, transactions)
	require.Len(t, categorized, 2)
	assert.Equal(t, models.CategoryTransport, categorized[0].Category)
	assert.Equal(t, models.CategoryUncategorized, categorized[1].Category)

	// Matched transactions are fed back into history.
	pattern, _, ok := app.History.BestMatch("Uber viagem centro")
	require.True(t, ok)
	assert.Equal(t, models.CategoryTransport, pattern.Category)
}
