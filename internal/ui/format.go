package ui

import (
	"strconv"
	"strings"

	"financas/internal/core"
)

var monthAbbrev = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// FormatBRL formats m as Brazilian reais: R$ 1.234,56 and -R$ 1.234,56.
func FormatBRL(m core.Money) string {
	fixed := m.Decimal().Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if m.Cents < 0 {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")
	b.WriteString(groupThousands(intPart))
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// SignedBRL prefixes the amount with + for income and - for expense.
func SignedBRL(t core.Transaction) string {
	sign := "-"
	if t.Type == core.Income {
		sign = "+"
	}
	return sign + " " + FormatBRL(t.Amount)
}

// FormatDate renders d as dd/mm/yyyy, or its raw text when it does not
// parse.
func FormatDate(d core.Date) string {
	if d.Validate() != nil {
		return d.String()
	}
	return d.Format("02/01/2006")
}

// FormatMonth renders m as jan/2024, or m itself when it does not parse.
func FormatMonth(m core.Month) string {
	t, ok := m.Time()
	if !ok {
		return string(m)
	}
	return monthAbbrev[t.Month()-1] + "/" + strconv.Itoa(t.Year())
}
