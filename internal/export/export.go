// Package export writes canonical transactions to the standard output CSV
// format consumed by downstream tools.
package export

import (
	"fmt"
	"io"
	"os"

	"fpereira/extrato-csv/internal/models"

	"github.com/gocarina/gocsv"
)

// Write renders the transactions as CSV onto w, header included.
func Write(w io.Writer, transactions []models.CanonicalTransaction) error {
	if err := gocsv.Marshal(&transactions, w); err != nil {
		return fmt.Errorf("writing transactions: %w", err)
	}
	return nil
}

// WriteFile writes the transactions to a CSV file at path.
func WriteFile(path string, transactions []models.CanonicalTransaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Write(f, transactions)
}
