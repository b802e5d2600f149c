package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StatementGroup is the per-account summary of movements within a reporting
// range. OpeningBalance is the account balance before the first movement in
// the range; when the range excludes earlier movements this is the balance at
// the start of the range, not the account's initial balance.
type StatementGroup struct {
	AccountNumber    string
	AccountType      AccountType
	OpeningBalance   decimal.Decimal
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	ClosingBalance   decimal.Decimal
	Movements        []*Movement
}

// StatementTotals sums a statement across all of its account groups.
type StatementTotals struct {
	OpeningBalance   decimal.Decimal
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	ClosingBalance   decimal.Decimal
}

// BuildStatement groups movements by account and computes per-account opening
// and closing balances and deposit/withdrawal totals. The input does not need
// to be sorted; movements are ordered by event date within each group, with
// the ULID as tiebreaker so same-day movements keep creation order. Accounts
// is keyed by account ID and supplies the account number and type. An empty
// movement set produces an empty map.
func BuildStatement(movements []*Movement, accounts map[string]*Account) map[string]*StatementGroup {
	byAccount := make(map[string][]*Movement)
	for _, m := range movements {
		byAccount[m.AccountID] = append(byAccount[m.AccountID], m)
	}

	groups := make(map[string]*StatementGroup, len(byAccount))

	for accountID, ms := range byAccount {
		account := accounts[accountID]
		if account == nil {
			continue
		}

		sort.SliceStable(ms, func(i, j int) bool {
			if ms[i].OccurredAt.Equal(ms[j].OccurredAt) {
				return ms[i].ID < ms[j].ID
			}
			return ms[i].OccurredAt.Before(ms[j].OccurredAt)
		})

		group := &StatementGroup{
			AccountNumber:  account.Number,
			AccountType:    account.Type,
			OpeningBalance: ms[0].PreviousBalance(),
			ClosingBalance: ms[len(ms)-1].Balance,
			Movements:      ms,
		}

		for _, m := range ms {
			if m.Amount.IsPositive() {
				group.TotalDeposits = group.TotalDeposits.Add(m.Amount)
			} else {
				group.TotalWithdrawals = group.TotalWithdrawals.Add(m.Amount.Abs())
			}
		}

		groups[account.Number] = group
	}

	return groups
}

// TotalsOf sums opening/closing balances and movement totals across groups.
func TotalsOf(groups map[string]*StatementGroup) StatementTotals {
	var totals StatementTotals
	for _, g := range groups {
		totals.OpeningBalance = totals.OpeningBalance.Add(g.OpeningBalance)
		totals.TotalDeposits = totals.TotalDeposits.Add(g.TotalDeposits)
		totals.TotalWithdrawals = totals.TotalWithdrawals.Add(g.TotalWithdrawals)
		totals.ClosingBalance = totals.ClosingBalance.Add(g.ClosingBalance)
	}
	return totals
}
