package services

import (
	"fmt"
	"sort"
	"strings"

	"financas/internal/core"
)

// Filter narrows the displayed list by transaction type.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
)

// ParseFilter accepts all, income or expense; empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterIncome, FilterExpense:
		return f, nil
	default:
		return "", fmt.Errorf("invalid filter %q: must be all, income or expense", s)
	}
}

func (f Filter) keep(t core.Transaction) bool {
	switch f {
	case FilterIncome:
		return t.Type == core.Income
	case FilterExpense:
		return t.Type == core.Expense
	default:
		return true
	}
}

// MonthView is what one month tab shows.
type MonthView struct {
	Month   core.Month
	Filter  Filter
	Visible []core.Transaction
	Totals  core.Totals
}

// ViewFor selects the transactions of month, totals them, then applies the
// type filter to the list only. Visible is sorted by date, newest first;
// transactions on the same date keep their list order.
func ViewFor(txs []core.Transaction, month core.Month, filter Filter) MonthView {
	view := MonthView{Month: month, Filter: filter}
	for _, t := range txs {
		if !BelongsTo(t, month) {
			continue
		}
		view.Totals = view.Totals.Accumulate(t)
		if filter.keep(t) {
			view.Visible = append(view.Visible, t)
		}
	}
	sort.SliceStable(view.Visible, func(i, j int) bool {
		return view.Visible[i].Date.String() > view.Visible[j].Date.String()
	})
	return view
}
