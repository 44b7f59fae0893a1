package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

const (
	KindSimple      VariantKind = "simple"
	KindRecurring   VariantKind = "recurring"
	KindInstallment VariantKind = "installment"
)

// MaxInstallments is the largest plan the engine accepts.
const MaxInstallments = 120

type (
	Type string

	VariantKind string

	Transaction struct {
		ID          string
		Description string
		Amount      Money
		Category    Category
		Type        Type
		Date        Date
		CreatedAt   time.Time
		Variant     Variant
	}

	// Variant tells how a transaction relates to months and to other
	// transactions. It is one of Simple, Recurring or InstallmentMember.
	Variant interface {
		Kind() VariantKind
		isVariant()
	}

	// Simple transactions belong to the month of their date.
	Simple struct{}

	// Recurring transactions belong to every month.
	Recurring struct{}

	// InstallmentMember is one record of an installment plan. The anchor has
	// an empty AnchorID and Position 1. A non-anchor member decoded without a
	// position has Position 0.
	InstallmentMember struct {
		AnchorID string
		Position int // 1-based, 0 when unknown
		Total    int
	}
)

func (Simple) isVariant()            {}
func (Recurring) isVariant()         {}
func (InstallmentMember) isVariant() {}

func (Simple) Kind() VariantKind            { return KindSimple }
func (Recurring) Kind() VariantKind         { return KindRecurring }
func (InstallmentMember) Kind() VariantKind { return KindInstallment }

// Kind returns the variant kind, treating a missing variant as simple.
func (t Transaction) Kind() VariantKind {
	if t.Variant == nil {
		return KindSimple
	}
	return t.Variant.Kind()
}

var (
	ErrInvalidMonth        = errors.New("invalid month")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDate         = errors.New("invalid date")
	ErrEmptyDescription    = errors.New("empty description")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidInstallments = errors.New("invalid installment count")
	ErrNotFound            = errors.New("transaction not found")
)

// IsValid reports whether t is income or expense.
func (t Type) IsValid() bool {
	return t == Income || t == Expense
}

// IsAnchor reports whether the member is the first record of its plan.
func (m InstallmentMember) IsAnchor() bool {
	return m.AnchorID == ""
}

// Label formats the position as "2/3", or "?/3" when it is unknown.
func (m InstallmentMember) Label() string {
	if m.Position == 0 {
		return fmt.Sprintf("?/%d", m.Total)
	}
	return fmt.Sprintf("%d/%d", m.Position, m.Total)
}

// PlanID returns the id shared by every member of the plan the transaction
// belongs to, or "" when it is not part of a plan.
func (t Transaction) PlanID() string {
	m, ok := t.Variant.(InstallmentMember)
	if !ok {
		return ""
	}
	if m.IsAnchor() {
		return t.ID
	}
	return m.AnchorID
}

// IsRecurring reports whether the transaction belongs to every month.
func (t Transaction) IsRecurring() bool {
	_, ok := t.Variant.(Recurring)
	return ok
}

// Installment returns the plan membership of t, if any.
func (t Transaction) Installment() (InstallmentMember, bool) {
	m, ok := t.Variant.(InstallmentMember)
	return m, ok
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("empty id")
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if !t.Category.ValidFor(t.Type) {
		return ErrInvalidCategory
	}
	if m, ok := t.Variant.(InstallmentMember); ok {
		if m.Total < 1 || m.Total > MaxInstallments {
			return ErrInvalidInstallments
		}
		if m.Position < 0 || m.Position > m.Total || (m.Position == 0 && m.IsAnchor()) {
			return ErrInvalidInstallments
		}
		if m.IsAnchor() != (m.Position == 1) {
			return errors.New("installment anchor must be position 1")
		}
	}
	return nil
}
