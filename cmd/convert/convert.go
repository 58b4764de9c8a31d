// Package convert implements conversion of one bank CSV export into the
// canonical, categorized CSV format.
package convert

import (
	"fmt"
	"os"
	"strings"

	"fpereira/extrato-csv/cmd/root"
	"fpereira/extrato-csv/internal/csvnorm"
	"fpereira/extrato-csv/internal/export"
	"fpereira/extrato-csv/internal/logging"
	"fpereira/extrato-csv/internal/models"

	"github.com/spf13/cobra"
)

var (
	inputFile  string
	outputFile string
	bank       string
	categorize bool
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a bank CSV export to the canonical categorized format",
	RunE:  convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (default: stdout)")
	Cmd.Flags().StringVarP(&bank, "bank", "b", "generic",
		"Bank profile: "+strings.Join(csvnorm.Banks(), "|"))
	Cmd.Flags().BoolVar(&categorize, "categorize", true, "Assign categories to the converted transactions")
	_ = Cmd.MarkFlagRequired("input")
}

func convertFunc(cmd *cobra.Command, _ []string) error {
	app := root.Application

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputFile, err)
	}

	normalizer, err := csvnorm.ForBank(bank, app.Logger)
	if err != nil {
		return err
	}

	outcome := normalizer.Process(string(data))
	transactions := outcome.Transactions
	if categorize {
		transactions = Categorize(app, transactions)
	}

	PrintSummary(cmd, outcome)

	if outputFile == "" {
		return export.Write(cmd.OutOrStdout(), transactions)
	}
	return export.WriteFile(outputFile, transactions)
}

// Categorize resolves a category for each transaction and feeds matches back
// into the history index so repeated descriptions converge.
func Categorize(app *root.App, transactions []models.CanonicalTransaction) []models.CanonicalTransaction {
	for i := range transactions {
		result := app.Engine.Classify(transactions[i].Description, transactions[i].Type)
		transactions[i].Category = result.Category
		if result.Matched {
			app.Engine.Confirm(transactions[i].Description, result.Category)
		} else {
			app.Logger.Debug("transaction left uncategorized",
				logging.Field{Key: "description", Value: transactions[i].Description})
		}
	}
	return transactions
}

// PrintSummary reports per-file counts and row errors to the user.
func PrintSummary(cmd *cobra.Command, outcome models.ProcessingOutcome) {
	s := outcome.Summary
	cmd.PrintErrf("%d de %d linhas importadas (%d receitas, %d despesas)\n",
		s.Valid, s.Total, s.IncomeCount, s.ExpenseCount)
	for _, rowErr := range outcome.Errors {
		cmd.PrintErrln(rowErr)
	}
}
