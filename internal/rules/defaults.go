package rules

import "fpereira/extrato-csv/internal/models"

// defaultRule is the compact literal form used for the built-in rule set.
type defaultRule struct {
	name     string
	keywords []string
	category string
	txType   models.TransactionType
	priority int
}

// Built-in Brazilian rule set. Keywords are stored already normalized
// (lowercase, no accents) since matching happens on normalized text.
var defaultRules = []defaultRule{
	{"Aplicativos de transporte", []string{"uber", "99pop", "99 pop", "cabify", "taxi"}, models.CategoryTransport, models.TypeExpense, 10},
	{"Transporte público", []string{"metro", "onibus", "bilhete unico", "brt", "cptm"}, models.CategoryTransport, models.TypeExpense, 10},
	{"Combustível", []string{"posto", "gasolina", "etanol", "combustivel", "ipiranga", "shell"}, models.CategoryTransport, models.TypeExpense, 10},
	{"Delivery de comida", []string{"ifood", "rappi", "delivery"}, models.CategoryFood, models.TypeExpense, 10},
	{"Supermercados", []string{"supermercado", "mercado", "atacadao", "carrefour", "extra", "pao de acucar", "assai"}, models.CategoryFood, models.TypeExpense, 10},
	{"Restaurantes", []string{"restaurante", "lanchonete", "padaria", "pizzaria", "hamburgueria", "churrascaria"}, models.CategoryFood, models.TypeExpense, 10},
	{"Moradia", []string{"aluguel", "condominio", "iptu", "imobiliaria"}, models.CategoryHousing, models.TypeExpense, 10},
	{"Contas da casa", []string{"energia", "luz", "agua", "saneamento", "gas", "internet", "vivo", "claro", "tim"}, models.CategoryHousing, models.TypeExpense, 10},
	{"Saúde", []string{"farmacia", "drogaria", "hospital", "clinica", "laboratorio", "plano de saude", "unimed"}, models.CategoryHealth, models.TypeExpense, 10},
	{"Educação", []string{"escola", "faculdade", "universidade", "curso", "mensalidade escolar", "livraria"}, models.CategoryEducation, models.TypeExpense, 10},
	{"Lazer", []string{"cinema", "netflix", "spotify", "teatro", "show", "viagem lazer", "hotel"}, models.CategoryLeisure, models.TypeExpense, 20},
	{"Compras", []string{"shopping", "magazine", "americanas", "amazon", "mercado livre", "shopee", "loja"}, models.CategoryShopping, models.TypeExpense, 20},
	{"Academia", []string{"academia", "smartfit", "crossfit", "pilates"}, models.CategoryHealth, models.TypeExpense, 20},
	{"Impostos e taxas", []string{"darf", "ipva", "imposto", "taxa bancaria", "tarifa"}, models.CategoryTaxes, models.TypeExpense, 20},
	{"Salário", []string{"salario", "pagamento salario", "folha", "remuneracao", "pro labore"}, models.CategorySalary, models.TypeIncome, 10},
	{"Rendimentos", []string{"rendimento", "dividendo", "juros", "resgate aplicacao"}, models.CategoryInvestments, models.TypeIncome, 10},
	{"Investimentos", []string{"aplicacao", "tesouro direto", "cdb", "corretora"}, models.CategoryInvestments, models.TypeExpense, 20},
	{"Transferências", []string{"pix", "ted", "doc", "transferencia"}, models.CategoryTransfers, models.TypeBoth, 90},
}

// SeedDefaults registers the built-in rule set into the store. Intended for
// fresh profiles that have no persisted rules yet.
func SeedDefaults(s *Store) error {
	for _, d := range defaultRules {
		rule := models.CategorizationRule{
			Name:           d.name,
			Keywords:       d.keywords,
			Category:       d.category,
			ApplicableType: d.txType,
			Active:         true,
			Priority:       d.priority,
		}
		if _, err := s.Add(rule); err != nil {
			return err
		}
	}
	return nil
}
