package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "accents stripped",
			input:    "Supermercado Pão de Açúcar",
			expected: "supermercado pao de acucar",
		},
		{
			name:     "punctuation replaced and whitespace collapsed",
			input:    "  PIX*Transferência -- João!!  ",
			expected: "pix transferencia joao",
		},
		{
			name:     "cedilla",
			input:    "Serviços de Manutenção",
			expected: "servicos de manutencao",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only punctuation",
			input:    "*** --- !!!",
			expected: "",
		},
		{
			name:     "digits kept",
			input:    "Uber 99 Viagem",
			expected: "uber 99 viagem",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Supermercado Pão de Açúcar",
		"PIX enviado - João",
		"iFood*Pedido 123",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "stop words and short tokens dropped",
			input:    "Compra no Supermercado de Bairro",
			expected: []string{"compra", "supermercado", "bairro"},
		},
		{
			name:     "pure digits dropped",
			input:    "Uber viagem 12345",
			expected: []string{"uber", "viagem"},
		},
		{
			name:     "typo corrected whole word",
			input:    "compra supermecado central",
			expected: []string{"compra", "supermercado", "central"},
		},
		{
			name:     "typo not corrected inside substring",
			input:    "supermecadologia",
			expected: []string{"supermecadologia"},
		},
		{
			name:     "duplicates removed preserving order",
			input:    "uber uber viagem uber",
			expected: []string{"uber", "viagem"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Tokenize(tc.input))
		})
	}
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"pix", "de", "ana", "99"}, SplitWords("PIX de Ana 99"))
	assert.Nil(t, SplitWords("   "))
}
