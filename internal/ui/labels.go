// Package ui renders the ledger for the terminal: pt-BR labels, BRL
// amounts and lipgloss-styled month, filter and transaction views.
package ui

import (
	"financas/internal/core"
	"financas/internal/services"
)

type categoryInfo struct {
	label string
	icon  string
}

var categories = map[core.Category]categoryInfo{
	core.Salary:      {"Salário", "◆"},
	core.Freelance:   {"Freelance", "✎"},
	core.Investment:  {"Investimentos", "↗"},
	core.OtherIncome: {"Outros", "✦"},

	core.Food:          {"Alimentação", "◉"},
	core.Transport:     {"Transporte", "➜"},
	core.Housing:       {"Moradia", "⌂"},
	core.Entertainment: {"Lazer", "♫"},
	core.Health:        {"Saúde", "✚"},
	core.Shopping:      {"Compras", "▣"},
	core.Bills:         {"Contas", "≡"},
	core.OtherExpense:  {"Outros", "…"},
}

// CategoryLabel returns the display label, or the raw value for categories
// this build does not know.
func CategoryLabel(c core.Category) string {
	if info, ok := categories[c]; ok {
		return info.label
	}
	return string(c)
}

func CategoryIcon(c core.Category) string {
	if info, ok := categories[c]; ok {
		return info.icon
	}
	return "•"
}

func TypeLabel(t core.Type) string {
	if t == core.Income {
		return "Receita"
	}
	return "Despesa"
}

func FilterLabel(f services.Filter) string {
	switch f {
	case services.FilterIncome:
		return "Receitas"
	case services.FilterExpense:
		return "Despesas"
	default:
		return "Todas"
	}
}
