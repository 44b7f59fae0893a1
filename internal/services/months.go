package services

import (
	"sort"
	"time"

	"financas/internal/core"
)

// BuildMonthIndex returns the months to offer as tabs: every month that holds
// a non-recurring transaction, ascending and without duplicates. When there
// are none it returns the month of now.
func BuildMonthIndex(txs []core.Transaction, now time.Time) []core.Month {
	seen := make(map[core.Month]struct{})
	for _, t := range txs {
		if m, ok := checkerFor(t).HomeMonth(t); ok {
			seen[m] = struct{}{}
		}
	}
	if len(seen) == 0 {
		seen[core.MonthOf(now)] = struct{}{}
	}

	months := make([]core.Month, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}

// DefaultMonth picks the tab selected on open: the current month when it is
// in the index, otherwise the latest month.
func DefaultMonth(index []core.Month, now time.Time) core.Month {
	current := core.MonthOf(now)
	if len(index) == 0 {
		return current
	}
	for _, m := range index {
		if m == current {
			return current
		}
	}
	return index[len(index)-1]
}

// Adjacent returns the months before and after m in the index. Either is ""
// when m sits at that end, and both are "" when m is not in the index.
func Adjacent(index []core.Month, m core.Month) (prev, next core.Month) {
	for i, candidate := range index {
		if candidate != m {
			continue
		}
		if i > 0 {
			prev = index[i-1]
		}
		if i < len(index)-1 {
			next = index[i+1]
		}
		return prev, next
	}
	return "", ""
}
