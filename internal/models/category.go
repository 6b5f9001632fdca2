package models

// CategoryType indicates whether a category classifies income or expense.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category is the persistence model for the categories table.
type Category struct {
	CategoryID   int64        `json:"categoryID"`
	Name         string       `json:"name"`
	CategoryType CategoryType `json:"categoryType"`
	IsActive     bool         `json:"isActive"`
}
