package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"financas/internal/core"
	"financas/internal/services"
)

var (
	incomeColor  = lipgloss.Color("#22C55E")
	expenseColor = lipgloss.Color("#EF4444")
	accentColor  = lipgloss.Color("#87CEEB")
	mutedColor   = lipgloss.Color("#9CA3AF")
	dimColor     = lipgloss.Color("#4B5563")
)

// Renderer holds the styles bound to one output. Colours are dropped when
// the output is not a terminal.
type Renderer struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	dim      lipgloss.Style
	income   lipgloss.Style
	expense  lipgloss.Style
	selected lipgloss.Style
	card     lipgloss.Style
	label    lipgloss.Style
}

func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		title:    r.NewStyle().Foreground(accentColor).Bold(true),
		muted:    r.NewStyle().Foreground(mutedColor),
		dim:      r.NewStyle().Foreground(dimColor),
		income:   r.NewStyle().Foreground(incomeColor).Bold(true),
		expense:  r.NewStyle().Foreground(expenseColor).Bold(true),
		selected: r.NewStyle().Foreground(lipgloss.Color("#FFD54A")).Bold(true).Underline(true),
		card:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 2),
		label:    r.NewStyle().Width(14),
	}
}

func (r *Renderer) amountStyle(t core.Type) lipgloss.Style {
	if t == core.Income {
		return r.income
	}
	return r.expense
}

// Balance renders the month summary card.
func (r *Renderer) Balance(t core.Totals) string {
	balanceStyle := r.income
	if t.Balance.Cents < 0 {
		balanceStyle = r.expense
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		r.muted.Render("Saldo Total"),
		balanceStyle.Render(FormatBRL(t.Balance)),
		"",
		r.label.Render("↗ Receitas")+r.income.Render(FormatBRL(t.Income)),
		r.label.Render("↘ Despesas")+r.expense.Render(FormatBRL(t.Expense)),
	)
	return r.card.Render(body)
}

// MonthTabs renders the month index with the selected month highlighted.
// The arrows are dimmed when there is no month on that side.
func (r *Renderer) MonthTabs(index []core.Month, selected core.Month) string {
	if len(index) == 0 {
		return ""
	}
	prev, next := services.Adjacent(index, selected)
	left, right := r.dim.Render("‹"), r.dim.Render("›")
	if prev != "" {
		left = r.title.Render("‹")
	}
	if next != "" {
		right = r.title.Render("›")
	}

	tabs := make([]string, 0, len(index))
	for _, m := range index {
		label := FormatMonth(m)
		if m == selected {
			tabs = append(tabs, r.selected.Render("["+label+"]"))
			continue
		}
		tabs = append(tabs, r.muted.Render(" "+label+" "))
	}
	return left + " " + strings.Join(tabs, " ") + " " + right
}

// FilterTabs renders the type filter with f highlighted.
func (r *Renderer) FilterTabs(f services.Filter) string {
	filters := []services.Filter{services.FilterAll, services.FilterIncome, services.FilterExpense}
	tabs := make([]string, len(filters))
	for i, candidate := range filters {
		label := FilterLabel(candidate)
		if candidate == f {
			tabs[i] = r.selected.Render("[" + label + "]")
		} else {
			tabs[i] = r.muted.Render(" " + label + " ")
		}
	}
	return strings.Join(tabs, r.dim.Render("│"))
}

// Row renders one transaction line.
func (r *Renderer) Row(t core.Transaction) string {
	parts := []string{
		r.amountStyle(t.Type).Render(CategoryIcon(t.Category)),
		t.Description,
		r.muted.Render(CategoryLabel(t.Category) + " • " + FormatDate(t.Date)),
	}
	if m, ok := t.Installment(); ok {
		parts = append(parts, r.title.Render(m.Label()))
	}
	if t.IsRecurring() {
		parts = append(parts, r.title.Render("↻ mensal"))
	}
	parts = append(parts, r.amountStyle(t.Type).Render(SignedBRL(t)))
	parts = append(parts, r.dim.Render(t.ID))
	return strings.Join(parts, "  ")
}

// List renders the visible transactions or the empty-state message.
func (r *Renderer) List(txs []core.Transaction) string {
	if len(txs) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			r.muted.Render("Nenhuma transação encontrada"),
			r.dim.Render("Adicione sua primeira transação!"),
		)
	}
	rows := make([]string, len(txs))
	for i, t := range txs {
		rows[i] = r.Row(t)
	}
	return strings.Join(rows, "\n")
}

// Page renders the whole month screen.
func (r *Renderer) Page(index []core.Month, view services.MonthView) string {
	return strings.Join([]string{
		r.title.Render("Controle Financeiro"),
		r.MonthTabs(index, view.Month),
		r.Balance(view.Totals),
		r.FilterTabs(view.Filter),
		r.List(view.Visible),
	}, "\n\n")
}

// Detail renders one transaction and, for plan members, the whole plan.
func (r *Renderer) Detail(t core.Transaction, plan []core.Transaction) string {
	field := func(name, value string) string {
		return r.label.Render(name) + value
	}
	lines := []string{
		r.title.Render(t.Description),
		field("ID", t.ID),
		field("Tipo", TypeLabel(t.Type)),
		field("Valor", r.amountStyle(t.Type).Render(SignedBRL(t))),
		field("Categoria", CategoryIcon(t.Category)+" "+CategoryLabel(t.Category)),
		field("Data", FormatDate(t.Date)),
		field("Criada em", t.CreatedAt.Local().Format("02/01/2006 15:04:05")),
	}
	if t.IsRecurring() {
		lines = append(lines, field("Recorrência", "mensal"))
	}
	if m, ok := t.Installment(); ok {
		lines = append(lines, field("Parcela", m.Label()))
		if len(plan) > 0 {
			lines = append(lines, "", r.muted.Render("Parcelas"))
			for _, p := range plan {
				marker := "  "
				if p.ID == t.ID {
					marker = "▸ "
				}
				pm, _ := p.Installment()
				lines = append(lines, fmt.Sprintf("%s%s  %s  %s  %s",
					marker, pm.Label(), FormatDate(p.Date), FormatBRL(p.Amount), r.dim.Render(p.ID)))
			}
		}
	}
	return r.card.Render(strings.Join(lines, "\n"))
}

// Months renders the month index, one per line, marking the default month.
func (r *Renderer) Months(index []core.Month, current core.Month) string {
	lines := make([]string, len(index))
	for i, m := range index {
		line := string(m) + "  " + FormatMonth(m)
		if m == current {
			line = r.selected.Render(line + " *")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Change renders a change notification received from other processes.
func (r *Renderer) Change(kind string, ids []string, count int, at string) string {
	return fmt.Sprintf("%s %s %s (%d registros)",
		r.dim.Render(at), r.title.Render(kind), strings.Join(ids, ","), count)
}
