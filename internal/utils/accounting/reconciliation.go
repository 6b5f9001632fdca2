package accounting

import (
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the cash-drawer sign to a transaction amount:
// income adds to the drawer, expense removes from it.
func SignedAmount(txn domain.Transaction) decimal.Decimal {
	if txn.TransactionType == domain.Expense {
		return txn.Amount.Neg()
	}
	return txn.Amount
}

// CurrentBalance computes the drawer balance for a session from scratch:
// opening amount plus all income minus all expense. It is deliberately a
// full recomputation over the transaction set rather than an incremental
// running total, so edits and deletes can never leave a stale cache behind.
func CurrentBalance(session domain.Session, transactions []domain.Transaction) decimal.Decimal {
	balance := session.OpeningAmount
	for _, txn := range transactions {
		balance = balance.Add(SignedAmount(txn))
	}
	return balance
}

// SummarizeSession derives the reconciliation view of a session from the
// session and its full transaction set. It is a pure function: calling it
// twice with the same inputs yields identical results.
//
// ExpectedClosing equals CurrentBalance; there is no special case before
// close. Difference is closing amount minus expected closing and stays zero
// until a closing amount exists.
func SummarizeSession(session domain.Session, transactions []domain.Transaction) domain.SessionSummary {
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	var incomeCount, expenseCount int64

	for _, txn := range transactions {
		switch txn.TransactionType {
		case domain.Income:
			totalIncome = totalIncome.Add(txn.Amount)
			incomeCount++
		case domain.Expense:
			totalExpense = totalExpense.Add(txn.Amount)
			expenseCount++
		}
	}

	currentBalance := session.OpeningAmount.Add(totalIncome).Sub(totalExpense)

	difference := decimal.Zero
	if session.ClosingAmount != nil {
		difference = session.ClosingAmount.Sub(currentBalance)
	}

	return domain.SessionSummary{
		Session:         session,
		TotalIncome:     totalIncome,
		TotalExpense:    totalExpense,
		IncomeCount:     incomeCount,
		ExpenseCount:    expenseCount,
		CurrentBalance:  currentBalance,
		ExpectedClosing: currentBalance,
		Difference:      difference,
	}
}

// Difference returns the reconciliation variance for a counted closing
// amount against an expected closing balance.
func Difference(closingAmount, expectedClosing decimal.Decimal) decimal.Decimal {
	return closingAmount.Sub(expectedClosing)
}
