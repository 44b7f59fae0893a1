package core

// Category identifies what a transaction was for. Income and expense
// transactions draw from disjoint sets.
type Category string

const (
	Salary      Category = "salary"
	Freelance   Category = "freelance"
	Investment  Category = "investment"
	OtherIncome Category = "other-income"

	Food          Category = "food"
	Transport     Category = "transport"
	Housing       Category = "housing"
	Entertainment Category = "entertainment"
	Health        Category = "health"
	Shopping      Category = "shopping"
	Bills         Category = "bills"
	OtherExpense  Category = "other-expense"
)

var (
	incomeCategories = []Category{Salary, Freelance, Investment, OtherIncome}

	expenseCategories = []Category{
		Food, Transport, Housing, Entertainment,
		Health, Shopping, Bills, OtherExpense,
	}

	categoryTypes = func() map[Category]Type {
		m := make(map[Category]Type, len(incomeCategories)+len(expenseCategories))
		for _, c := range incomeCategories {
			m[c] = Income
		}
		for _, c := range expenseCategories {
			m[c] = Expense
		}
		return m
	}()
)

// Type returns the transaction type the category belongs to, or "" for an
// unknown category.
func (c Category) Type() Type {
	return categoryTypes[c]
}

func (c Category) IsValid() bool {
	_, ok := categoryTypes[c]
	return ok
}

// ValidFor reports whether c may be used on a transaction of type t.
func (c Category) ValidFor(t Type) bool {
	return t.IsValid() && categoryTypes[c] == t
}

// CategoriesFor returns the categories offered for t, in form order.
func CategoriesFor(t Type) []Category {
	switch t {
	case Income:
		return append([]Category(nil), incomeCategories...)
	case Expense:
		return append([]Category(nil), expenseCategories...)
	default:
		return nil
	}
}

// DefaultCategory is preselected when the form switches to t.
func DefaultCategory(t Type) Category {
	if t == Income {
		return Salary
	}
	return Food
}
