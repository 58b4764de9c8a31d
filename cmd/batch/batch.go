// Package batch implements bulk conversion of a directory of CSV exports.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fpereira/extrato-csv/cmd/convert"
	"fpereira/extrato-csv/cmd/root"
	"fpereira/extrato-csv/internal/csvnorm"
	"fpereira/extrato-csv/internal/export"
	"fpereira/extrato-csv/internal/logging"

	"github.com/spf13/cobra"
)

var (
	inputDir  string
	outputDir string
	bank      string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every CSV file in a directory",
	RunE:  batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input-dir", "i", "", "Directory containing CSV exports")
	Cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for converted files")
	Cmd.Flags().StringVarP(&bank, "bank", "b", "generic", "Bank profile applied to every file")
	_ = Cmd.MarkFlagRequired("input-dir")
	_ = Cmd.MarkFlagRequired("output-dir")
}

func batchFunc(cmd *cobra.Command, _ []string) error {
	app := root.Application

	normalizer, err := csvnorm.ForBank(bank, app.Logger)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}

	converted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		inPath := filepath.Join(inputDir, entry.Name())
		data, err := os.ReadFile(inPath)
		if err != nil {
			app.Logger.WithError(err).Warn("Skipping unreadable file",
				logging.Field{Key: "file", Value: inPath})
			continue
		}

		outcome := normalizer.Process(string(data))
		transactions := convert.Categorize(app, outcome.Transactions)

		cmd.PrintErrln(entry.Name() + ":")
		convert.PrintSummary(cmd, outcome)

		outPath := filepath.Join(outputDir, entry.Name())
		if err := export.WriteFile(outPath, transactions); err != nil {
			return err
		}
		converted++
	}

	app.Logger.Info("Batch conversion finished",
		logging.Field{Key: "files", Value: converted})
	return nil
}
