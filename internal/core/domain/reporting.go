package domain

import "github.com/shopspring/decimal"

// SessionSummary is the derived reconciliation view of a session. It is never
// persisted; it is recomputed from the session and its transactions on every
// request so it cannot drift from the journal.
type SessionSummary struct {
	Session         Session         `json:"session"`
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpense    decimal.Decimal `json:"totalExpense"`
	IncomeCount     int64           `json:"incomeCount"`
	ExpenseCount    int64           `json:"expenseCount"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`  // opening + income - expense
	ExpectedClosing decimal.Decimal `json:"expectedClosing"` // identical to CurrentBalance before close
	Difference      decimal.Decimal `json:"difference"`      // closing - expected; zero until a closing amount exists
}

// DailySummary aggregates movements across all sessions for one calendar
// date, plus the live balance of the active session if there is one.
type DailySummary struct {
	Date           string          `json:"date"` // YYYY-MM-DD in the report timezone
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	Balance        decimal.Decimal `json:"balance"` // income - expense for the date
	IncomeCount    int64           `json:"incomeCount"`
	ExpenseCount   int64           `json:"expenseCount"`
	CurrentBalance decimal.Decimal `json:"currentBalance"` // active session balance, zero when none
}

// TransactionsSummary is the dashboard view of one calendar date's movements.
type TransactionsSummary struct {
	Date              string          `json:"date"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpense      decimal.Decimal `json:"totalExpense"`
	Balance           decimal.Decimal `json:"balance"`
	IncomeCount       int64           `json:"incomeCount"`
	ExpenseCount      int64           `json:"expenseCount"`
	TotalTransactions int64           `json:"totalTransactions"`
}
