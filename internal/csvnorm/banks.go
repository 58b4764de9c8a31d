package csvnorm

import (
	"fmt"
	"strings"

	"fpereira/extrato-csv/internal/logging"
)

// bankProfile is a thin post-processing layer on the generic pipeline: known
// boilerplate phrases are stripped from descriptions so the categorizer sees
// only the meaningful part.
type bankProfile struct {
	name        string
	boilerplate []string
}

func (p *bankProfile) cleanDescription(description string) string {
	cleaned := description
	for _, phrase := range p.boilerplate {
		for {
			idx := indexFold(cleaned, phrase)
			if idx < 0 {
				break
			}
			cleaned = cleaned[:idx] + cleaned[idx+len(phrase):]
		}
	}
	cleaned = strings.Trim(cleaned, " -:")
	if cleaned == "" {
		// Boilerplate-only descriptions keep the original text rather than
		// producing an empty-description row error.
		return strings.TrimSpace(description)
	}
	return cleaned
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}

var bankProfiles = map[string]*bankProfile{
	"nubank": {
		name: "nubank",
		boilerplate: []string{
			"Transferência enviada pelo Pix - ",
			"Transferência recebida pelo Pix - ",
			"Compra no débito - ",
			"Compra no débito via NuPay - ",
			"Pagamento de fatura - ",
		},
	},
	"inter": {
		name: "inter",
		boilerplate: []string{
			"Pix enviado - ",
			"Pix recebido - ",
			"Compra no cartão - ",
			"Pagamento efetuado - ",
		},
	},
	"bradesco": {
		name: "bradesco",
		boilerplate: []string{
			"TRANSF SALDO CC PARA ",
			"PAGTO ELETRON COBRANCA ",
			"COMPRA CARTAO VISA ",
		},
	},
}

// ForBank returns a Normalizer with the named bank's description cleanup
// applied after the generic pipeline. "generic" (or "") yields the plain
// pipeline; unknown names are an error.
func ForBank(bank string, logger logging.Logger) (*Normalizer, error) {
	n := New(logger)
	if bank == "" || bank == "generic" {
		return n, nil
	}
	profile, ok := bankProfiles[strings.ToLower(bank)]
	if !ok {
		return nil, fmt.Errorf("unknown bank profile %q", bank)
	}
	n.profile = profile
	return n, nil
}

// Banks lists the supported bank profile names.
func Banks() []string {
	return []string{"generic", "nubank", "inter", "bradesco"}
}
