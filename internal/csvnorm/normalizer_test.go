package csvnorm

import (
	"strings"
	"testing"

	"fpereira/extrato-csv/internal/logging"
	"fpereira/extrato-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func process(t *testing.T, rawText string) models.ProcessingOutcome {
	t.Helper()
	return New(logging.NewMockLogger()).Process(rawText)
}

func TestProcessCommaSeparatedWithDecimalComma(t *testing.T) {
	csv := "data,descricao,valor,tipo\n" +
		"15/03/2024,Ifood pedido,45,90,despesa\n"

	outcome := process(t, csv)
	require.Empty(t, outcome.Errors)
	require.Len(t, outcome.Transactions, 1)

	tx := outcome.Transactions[0]
	assert.Equal(t, "2024-03-15", tx.Date)
	assert.Equal(t, "Ifood pedido", tx.Description)
	assert.Equal(t, "45.9", tx.Amount.String())
	assert.Equal(t, models.TypeExpense, tx.Type)
}

func TestProcessSemicolonSeparated(t *testing.T) {
	csv := "Data;Histórico;Valor\n" +
		"02/01/2024;Pagamento boleto energia;-150,00\n" +
		"03/01/2024;TED recebida;2.500,00\n"

	outcome := process(t, csv)
	require.Empty(t, outcome.Errors)
	require.Len(t, outcome.Transactions, 2)

	assert.Equal(t, models.TypeExpense, outcome.Transactions[0].Type)
	assert.Equal(t, "150", outcome.Transactions[0].Amount.String())

	assert.Equal(t, models.TypeIncome, outcome.Transactions[1].Type)
	assert.Equal(t, "2500", outcome.Transactions[1].Amount.String())

	assert.Equal(t, 2, outcome.Summary.Valid)
	assert.Equal(t, 1, outcome.Summary.IncomeCount)
	assert.Equal(t, 1, outcome.Summary.ExpenseCount)
}

func TestProcessRowErrorsAreNonFatal(t *testing.T) {
	csv := "data;descricao;valor\n" +
		"31/02/2024;Compra mercado;50,00\n" +
		"10/02/2024;;50,00\n" +
		"11/02/2024;Almoço;abc\n" +
		"12/02/2024;Almoço;35,50\n"

	outcome := process(t, csv)
	require.Len(t, outcome.Transactions, 1)
	require.Len(t, outcome.Errors, 3)

	assert.Equal(t, "Linha 2: Data inválida", outcome.Errors[0])
	assert.Equal(t, "Linha 3: Descrição vazia", outcome.Errors[1])
	assert.Equal(t, "Linha 4: Valor inválido", outcome.Errors[2])

	assert.Equal(t, 4, outcome.Summary.Total)
	assert.Equal(t, 1, outcome.Summary.Valid)
	assert.Equal(t, 3, outcome.Summary.Invalid)
}

func TestProcessMissingRequiredColumn(t *testing.T) {
	csv := "descricao;valor\n" +
		"Compra;10,00\n" +
		"Outra compra;20,00\n"

	outcome := process(t, csv)
	assert.Empty(t, outcome.Transactions)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "colunas obrigatórias")
}

func TestProcessEmptyFile(t *testing.T) {
	for _, input := range []string{"", "   \n  ", "data;descricao;valor"} {
		outcome := process(t, input)
		assert.Empty(t, outcome.Transactions)
		assert.Len(t, outcome.Errors, 1)
	}
}

func TestProcessQuotedCellWithSeparator(t *testing.T) {
	csv := "data,descricao,valor\n" +
		`10/03/2024,"Pagamento, aluguel","1.200,00"` + "\n"

	outcome := process(t, csv)
	require.Empty(t, outcome.Errors)
	require.Len(t, outcome.Transactions, 1)

	tx := outcome.Transactions[0]
	assert.Equal(t, "Pagamento, aluguel", tx.Description)
	assert.Equal(t, "1200", tx.Amount.String())
	assert.Equal(t, models.TypeExpense, tx.Type)
}

func TestProcessAmountHeaderMentioningLancamento(t *testing.T) {
	csv := "Data,Valor do Lançamento,Histórico\n" +
		"12/03/2024,-80,00,Conta de luz\n"

	outcome := process(t, csv)
	require.Empty(t, outcome.Errors)
	require.Len(t, outcome.Transactions, 1)

	tx := outcome.Transactions[0]
	assert.Equal(t, "Conta de luz", tx.Description)
	assert.Equal(t, "80", tx.Amount.String())
	assert.Equal(t, models.TypeExpense, tx.Type)
}

func TestProcessTypeColumn(t *testing.T) {
	csv := "data;descricao;valor;tipo\n" +
		"01/03/2024;Venda serviço;100,00;Receita\n" +
		"02/03/2024;Mensalidade;80,00;Despesa\n" +
		"03/03/2024;Estorno;30,00;Crédito\n"

	outcome := process(t, csv)
	require.Len(t, outcome.Transactions, 3)
	assert.Equal(t, models.TypeIncome, outcome.Transactions[0].Type)
	assert.Equal(t, models.TypeExpense, outcome.Transactions[1].Type)
	assert.Equal(t, models.TypeIncome, outcome.Transactions[2].Type)
}

func TestProcessTypeInferredFromSignAndKeywords(t *testing.T) {
	csv := "data;descricao;valor\n" +
		"01/03/2024;Deposito cliente;500,00\n" +
		"02/03/2024;Pagamento academia;90,00\n" +
		"03/03/2024;Mensalidade clube;-60,00\n"

	outcome := process(t, csv)
	require.Len(t, outcome.Transactions, 3)
	// Positive with no override keyword: income.
	assert.Equal(t, models.TypeIncome, outcome.Transactions[0].Type)
	// Positive, but "pagamento" forces expense.
	assert.Equal(t, models.TypeExpense, outcome.Transactions[1].Type)
	// Negative: expense.
	assert.Equal(t, models.TypeExpense, outcome.Transactions[2].Type)
}

func TestProcessDateFormats(t *testing.T) {
	csv := "data;descricao;valor\n" +
		"15/03/24;Compra um;10,00\n" +
		"2024/03/16;Compra dois;10,00\n" +
		"17032024;Compra tres;10,00\n" +
		"20240318;Compra quatro;10,00\n" +
		"19-03-2024;Compra cinco;10,00\n" +
		"20.03.2024;Compra seis;10,00\n"

	outcome := process(t, csv)
	require.Empty(t, outcome.Errors)
	dates := make([]string, 0, len(outcome.Transactions))
	for _, tx := range outcome.Transactions {
		dates = append(dates, tx.Date)
	}
	assert.Equal(t, []string{
		"2024-03-15", "2024-03-16", "2024-03-17",
		"2024-03-18", "2024-03-19", "2024-03-20",
	}, dates)
}

func TestProcessPipeAndTabSeparators(t *testing.T) {
	pipe := "data|descricao|valor\n01/04/2024|Almoço|25,00\n"
	outcome := process(t, pipe)
	require.Len(t, outcome.Transactions, 1)

	tab := "data\tdescricao\tvalor\n01/04/2024\tJantar\t42,00\n"
	outcome = process(t, tab)
	require.Len(t, outcome.Transactions, 1)
}

func TestNormalizeAmount(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
		negative bool
		ok       bool
	}{
		{"1.234,56", "1234.56", false, true},
		{"1,234.56", "1234.56", false, true},
		{"-50,00", "50", true, true},
		{"(75,00)", "75", true, true},
		{"R$ 45,90", "45.9", false, true},
		{"1,234", "1234", false, true},
		{"12,3", "123", false, true},
		{"1234.56", "1234.56", false, true},
		{"+300", "300", false, true},
		{"0,00", "", false, false},
		{"abc", "", false, false},
		{"", "", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			amount, negative, ok := NormalizeAmount(tc.raw)
			require.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			assert.Equal(t, tc.expected, amount.String())
			assert.Equal(t, tc.negative, negative)
		})
	}
}

func TestNormalizeDateRejectsImpossibleDates(t *testing.T) {
	for _, raw := range []string{"31/02/2024", "00/01/2024", "15/13/2024", "99999999", "hoje"} {
		assert.Empty(t, NormalizeDate(raw), raw)
	}
}

func TestBankProfiles(t *testing.T) {
	csv := "data,descricao,valor\n" +
		"05/03/2024,Transferência enviada pelo Pix - Maria Silva,-120,00\n"

	n, err := ForBank("nubank", logging.NewMockLogger())
	require.NoError(t, err)

	outcome := n.Process(csv)
	require.Len(t, outcome.Transactions, 1)
	assert.Equal(t, "Maria Silva", outcome.Transactions[0].Description)
}

func TestForBankUnknown(t *testing.T) {
	_, err := ForBank("itau", logging.NewMockLogger())
	assert.Error(t, err)

	n, err := ForBank("generic", logging.NewMockLogger())
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestBankProfileKeepsBoilerplateOnlyDescription(t *testing.T) {
	p := bankProfiles["nubank"]
	assert.Equal(t, "Pagamento de fatura -",
		strings.TrimSpace(p.cleanDescription("Pagamento de fatura - ")))
}
