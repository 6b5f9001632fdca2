package domain

// CategoryType indicates whether a category classifies income or expense
// movements. It mirrors TransactionType but is kept as its own type so a
// category can never be tagged with a non-classification value.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Valid reports whether the type is one of the closed set of category types.
func (t CategoryType) Valid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

// Category is a named classification tag scoped to income or expense.
// Categories are soft-deactivated, never hard-deleted, so historical
// transactions keep resolving their category name.
type Category struct {
	CategoryID   int64        `json:"categoryID"` // Primary Key
	Name         string       `json:"name"`       // Not Null, unique within its type
	CategoryType CategoryType `json:"categoryType"`
	IsActive     bool         `json:"isActive"`
}
