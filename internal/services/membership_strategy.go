// Package services provides the transaction rules: deriving records from a
// form request, indexing months, filtering and totalling a month, and the
// state container that applies mutations.
//
// This file implements the Strategy Pattern for month membership. Each
// variant kind (simple, recurring, installment) has a checker that decides
// which months a transaction belongs to.
package services

import (
	"fmt"

	"financas/internal/core"
)

// MembershipChecker is the strategy interface for placing a transaction in
// months.
type MembershipChecker interface {
	// BelongsTo reports whether t is part of month.
	BelongsTo(t core.Transaction, month core.Month) bool

	// HomeMonth returns the month t contributes to the month index. ok is
	// false for transactions that belong to every month.
	HomeMonth(t core.Transaction) (month core.Month, ok bool)
}

// DatedChecker places a transaction in the month of its date. Simple
// transactions and installment plan members use it.
type DatedChecker struct{}

// BelongsTo returns true when the date falls in month.
func (DatedChecker) BelongsTo(t core.Transaction, month core.Month) bool {
	return t.Date.MonthKey() == month
}

// HomeMonth returns the month of the date.
func (DatedChecker) HomeMonth(t core.Transaction) (core.Month, bool) {
	return t.Date.MonthKey(), true
}

// RecurringChecker places a transaction in every month.
type RecurringChecker struct{}

// BelongsTo always returns true.
func (RecurringChecker) BelongsTo(core.Transaction, core.Month) bool {
	return true
}

// HomeMonth returns false: recurring transactions do not add a month tab.
func (RecurringChecker) HomeMonth(core.Transaction) (core.Month, bool) {
	return "", false
}

// membershipStrategies maps variant kinds to their checkers.
var membershipStrategies = map[core.VariantKind]MembershipChecker{
	core.KindSimple:      DatedChecker{},
	core.KindInstallment: DatedChecker{},
	core.KindRecurring:   RecurringChecker{},
}

// GetMembershipChecker returns the checker for a variant kind.
func GetMembershipChecker(kind core.VariantKind) (MembershipChecker, error) {
	checker, ok := membershipStrategies[kind]
	if !ok {
		return nil, fmt.Errorf("unknown variant kind: %s", kind)
	}
	return checker, nil
}

// RegisterMembershipChecker registers a checker for a new variant kind.
func RegisterMembershipChecker(kind core.VariantKind, checker MembershipChecker) {
	membershipStrategies[kind] = checker
}

// checkerFor never fails: unknown kinds fall back to date placement.
func checkerFor(t core.Transaction) MembershipChecker {
	checker, err := GetMembershipChecker(t.Kind())
	if err != nil {
		return DatedChecker{}
	}
	return checker
}

// BelongsTo reports whether t is part of month.
func BelongsTo(t core.Transaction, month core.Month) bool {
	return checkerFor(t).BelongsTo(t, month)
}
