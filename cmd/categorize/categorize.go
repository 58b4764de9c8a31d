// Package categorize implements one-off categorization of a transaction
// description from the command line.
package categorize

import (
	"fmt"

	"fpereira/extrato-csv/cmd/root"
	"fpereira/extrato-csv/internal/models"

	"github.com/spf13/cobra"
)

var (
	txType   string
	override string
	confirm  bool
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [descrição]",
	Short: "Categorize a single transaction description",
	Long: `Categorize a transaction description using your rules and history.
Use --corrigir to teach the engine the right category when it gets one wrong.`,
	Args: cobra.ExactArgs(1),
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&txType, "tipo", "t", string(models.TypeExpense), "Transaction type (income|expense)")
	Cmd.Flags().StringVarP(&override, "corrigir", "c", "", "Correct category to learn for this description")
	Cmd.Flags().BoolVar(&confirm, "confirmar", false, "Record the result into history")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	app := root.Application
	description := args[0]

	transactionType := models.TransactionType(txType)
	if transactionType != models.TypeIncome && transactionType != models.TypeExpense {
		return fmt.Errorf("invalid --tipo %q: use income or expense", txType)
	}

	if override != "" {
		if err := app.Engine.LearnFromOverride(description, override, transactionType); err != nil {
			return err
		}
		app.Engine.Confirm(description, override)
		cmd.Printf("Aprendido: %q -> %s\n", description, override)
		return nil
	}

	result := app.Engine.Classify(description, transactionType)
	if !result.Matched {
		cmd.Printf("Sem categoria para %q (confiança %.2f)\n", description, result.Confidence)
		return nil
	}

	cmd.Printf("Categoria: %s (origem %s, confiança %.2f)\n", result.Category, result.Source, result.Confidence)
	if confirm {
		app.Engine.Confirm(description, result.Category)
	}
	return nil
}
