package core

// Totals is the income/expense summary for one month.
type Totals struct {
	Income  Money
	Expense Money
	Balance Money
}

// Accumulate adds t to the running totals.
func (s Totals) Accumulate(t Transaction) Totals {
	switch t.Type {
	case Income:
		s.Income = s.Income.Add(t.Amount)
	case Expense:
		s.Expense = s.Expense.Add(t.Amount)
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s
}
