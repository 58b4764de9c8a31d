// Package csvnorm normalizes heterogeneous Brazilian bank CSV exports into
// canonical transactions: it detects the delimiter, maps columns by header
// pattern, parses regional date and amount formats, and infers the transaction
// type. Row-level problems are collected per line; only structural problems
// abort the whole file.
package csvnorm

import (
	"fmt"
	"regexp"
	"strings"

	"fpereira/extrato-csv/internal/logging"
	"fpereira/extrato-csv/internal/models"
	"fpereira/extrato-csv/internal/textnorm"
)

// Candidate separators, tried in order; ties on average column count keep the
// earliest one.
var candidateSeparators = []string{",", ";", "\t", "|"}

// Header cells are matched (normalized, case-insensitive) against these
// patterns. The first header matching a role's pattern wins that role.
var headerPatterns = map[string]*regexp.Regexp{
	"date":        regexp.MustCompile(`data|date|\bdia\b|vencimento`),
	"description": regexp.MustCompile(`descri|historico|lancamento|memo|detalhe|estabelecimento|title`),
	"amount":      regexp.MustCompile(`valor|amount|quantia|montante|value`),
	"type":        regexp.MustCompile(`^tipo|^type|natureza|operacao|entrada.saida`),
}

// Normalizer runs the CSV pipeline. A bank profile may add a description
// cleanup step on top of the generic processing.
type Normalizer struct {
	profile *bankProfile
	logger  logging.Logger
}

// New creates a generic Normalizer.
func New(logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Normalizer{logger: logger}
}

// Process normalizes raw CSV text (already decoded) into canonical
// transactions plus a per-row error list and summary counts.
func (n *Normalizer) Process(rawText string) models.ProcessingOutcome {
	outcome := models.ProcessingOutcome{}

	lines := splitLines(rawText)
	if len(lines) < 2 {
		outcome.Errors = append(outcome.Errors, "Arquivo CSV vazio ou sem linhas de dados")
		return outcome
	}

	separator := detectSeparator(lines)
	n.logger.Debug("separator detected", logging.Field{Key: "separator", Value: separator})

	header := splitRow(lines[0].text, separator)
	columns, ok := mapColumns(header)
	if !ok {
		outcome.Errors = append(outcome.Errors,
			"Não foi possível identificar as colunas obrigatórias (data, descrição, valor)")
		return outcome
	}

	headerLen := len(header)
	for _, line := range lines[1:] {
		outcome.Summary.Total++
		cells := splitRow(line.text, separator)
		cells = mergeSplitDecimal(cells, columns.amount, headerLen)

		tx, rowErr := n.parseRow(cells, columns, line.number)
		if rowErr != "" {
			outcome.Errors = append(outcome.Errors, rowErr)
			outcome.Summary.Invalid++
			continue
		}
		outcome.Transactions = append(outcome.Transactions, tx)
		outcome.Summary.Valid++
		if tx.Type == models.TypeIncome {
			outcome.Summary.IncomeCount++
		} else {
			outcome.Summary.ExpenseCount++
		}
	}

	n.logger.Info("csv processed",
		logging.Field{Key: "valid", Value: outcome.Summary.Valid},
		logging.Field{Key: "invalid", Value: outcome.Summary.Invalid})
	return outcome
}

// parseRow turns one data row into a canonical transaction, or a "Linha N"
// error string when the row must be rejected.
func (n *Normalizer) parseRow(cells []string, columns columnMap, lineNumber int) (models.CanonicalTransaction, string) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[idx])
	}

	description := cell(columns.description)
	if n.profile != nil {
		description = n.profile.cleanDescription(description)
	}
	if description == "" {
		return models.CanonicalTransaction{}, fmt.Sprintf("Linha %d: Descrição vazia", lineNumber)
	}

	date := NormalizeDate(cell(columns.date))
	if date == "" {
		return models.CanonicalTransaction{}, fmt.Sprintf("Linha %d: Data inválida", lineNumber)
	}

	amount, negative, ok := NormalizeAmount(cell(columns.amount))
	if !ok {
		return models.CanonicalTransaction{}, fmt.Sprintf("Linha %d: Valor inválido", lineNumber)
	}

	txType := InferType(cell(columns.txType), description, negative)

	return models.CanonicalTransaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txType,
	}, ""
}

// numberedLine pairs a line's text with its physical 1-indexed position in the
// file, so row errors point at the real input line.
type numberedLine struct {
	number int
	text   string
}

func splitLines(rawText string) []numberedLine {
	var lines []numberedLine
	for i, line := range strings.Split(strings.ReplaceAll(rawText, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, numberedLine{number: i + 1, text: line})
	}
	return lines
}

// detectSeparator picks the candidate with the highest average column count
// over the first sample lines, counting only lines it actually splits.
func detectSeparator(lines []numberedLine) string {
	sample := lines
	if len(sample) > 5 {
		sample = sample[:5]
	}

	best := candidateSeparators[0]
	bestAvg := 0.0
	for _, sep := range candidateSeparators {
		total, counted := 0, 0
		for _, line := range sample {
			cols := len(strings.Split(line.text, sep))
			if cols > 1 {
				total += cols
				counted++
			}
		}
		if counted == 0 {
			continue
		}
		avg := float64(total) / float64(counted)
		if avg > bestAvg {
			bestAvg = avg
			best = sep
		}
	}
	return best
}

// splitRow splits a raw line and unquotes each cell. Separators inside a
// quoted cell do not split, and "" inside quotes is an escaped quote.
func splitRow(line, separator string) []string {
	sep := separator[0]
	var cells []string
	var cell strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cell.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == sep && !inQuotes:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(c)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}

var decimalOverflowPattern = regexp.MustCompile(`^[0-9]{1,2}$`)

// mergeSplitDecimal repairs rows where a decimal-comma amount was split by a
// comma separator ("45,90" arriving as cells "45" and "90"): when the row has
// exactly one extra cell and the cell after the amount looks like a decimal
// fraction, the two are rejoined.
func mergeSplitDecimal(cells []string, amountIdx, headerLen int) []string {
	if len(cells) != headerLen+1 || amountIdx < 0 || amountIdx+1 >= len(cells) {
		return cells
	}
	if !strings.ContainsAny(cells[amountIdx], "0123456789") {
		return cells
	}
	if !decimalOverflowPattern.MatchString(cells[amountIdx+1]) {
		return cells
	}
	merged := make([]string, 0, len(cells)-1)
	merged = append(merged, cells[:amountIdx]...)
	merged = append(merged, cells[amountIdx]+","+cells[amountIdx+1])
	merged = append(merged, cells[amountIdx+2:]...)
	return merged
}

// columnMap holds the index of each semantic role, -1 when absent.
type columnMap struct {
	date        int
	description int
	amount      int
	txType      int
}

// mapColumns assigns semantic roles to header cells. The type column is
// optional; date, description and amount are required. Amount is tried before
// description so a header like "Valor do lançamento" maps to amount even
// though "lancamento" also matches the description pattern.
func mapColumns(header []string) (columnMap, bool) {
	columns := columnMap{date: -1, description: -1, amount: -1, txType: -1}
	for i, cell := range header {
		normalized := textnorm.Normalize(cell)
		if columns.date == -1 && headerPatterns["date"].MatchString(normalized) {
			columns.date = i
			continue
		}
		if columns.amount == -1 && headerPatterns["amount"].MatchString(normalized) {
			columns.amount = i
			continue
		}
		if columns.description == -1 && headerPatterns["description"].MatchString(normalized) {
			columns.description = i
			continue
		}
		if columns.txType == -1 && headerPatterns["type"].MatchString(normalized) {
			columns.txType = i
		}
	}
	if columns.date == -1 || columns.description == -1 || columns.amount == -1 {
		return columnMap{}, false
	}
	return columns, true
}
