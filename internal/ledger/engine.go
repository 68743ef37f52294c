// Package ledger derives who owes whom inside a group. Balances are
// never stored: every query replays the group's active expenses and
// confirmed settlements from scratch, which keeps the computation a pure
// function of its inputs and trivially safe for concurrent readers.
package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// Common errors
var (
	// ErrNonMember flags an expense share or settlement party that is not
	// in the group's member set. This is a data-integrity problem and is
	// surfaced instead of being skipped.
	ErrNonMember = errors.New("ledger input references a user outside the group")
)

// ExpenseRecord carries the minimal expense data the engine needs.
type ExpenseRecord struct {
	PayerID int64
	Shares  map[int64]money.Money
}

// SettlementRecord carries the minimal data of a confirmed settlement.
type SettlementRecord struct {
	FromUserID int64
	ToUserID   int64
	Amount     money.Money
}

// PairwiseBalance is one directional debt between two group members.
// Amount is always positive; a pair never appears in both directions.
type PairwiseBalance struct {
	GroupID    int64       `json:"group_id"`
	DebtorID   int64       `json:"debtor_id"`
	CreditorID int64       `json:"creditor_id"`
	Amount     money.Money `json:"amount"`
}

// pairKey is the canonical unordered pair: Low < High always.
type pairKey struct {
	low  int64
	high int64
}

func keyFor(a, b int64) pairKey {
	if a < b {
		return pairKey{low: a, high: b}
	}
	return pairKey{low: b, high: a}
}

// ComputeBalances nets a group's expense history and confirmed
// settlements into at most one directional balance per member pair.
//
// For every active expense, each participant other than the payer owes
// the payer their share. Each confirmed settlement reduces what its
// FromUserID still owes its ToUserID. Opposing debts between the same two
// members cancel, and pairs that net to zero are omitted. The result is
// sorted by (debtor, creditor) so identical inputs produce identical
// output.
func ComputeBalances(groupID int64, expenses []ExpenseRecord, settlements []SettlementRecord, memberIDs []int64) ([]PairwiseBalance, error) {
	members := make(map[int64]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	// Signed net per canonical pair: positive means low owes high.
	net := make(map[pairKey]int64)

	for _, exp := range expenses {
		if !members[exp.PayerID] {
			return nil, fmt.Errorf("%w: payer %d", ErrNonMember, exp.PayerID)
		}
		for userID, share := range exp.Shares {
			if !members[userID] {
				return nil, fmt.Errorf("%w: participant %d", ErrNonMember, userID)
			}
			if userID == exp.PayerID {
				continue
			}
			key := keyFor(userID, exp.PayerID)
			if key.low == userID {
				net[key] += share.Minor()
			} else {
				net[key] -= share.Minor()
			}
		}
	}

	for _, st := range settlements {
		if !members[st.FromUserID] {
			return nil, fmt.Errorf("%w: settlement payer %d", ErrNonMember, st.FromUserID)
		}
		if !members[st.ToUserID] {
			return nil, fmt.Errorf("%w: settlement payee %d", ErrNonMember, st.ToUserID)
		}
		key := keyFor(st.FromUserID, st.ToUserID)
		if key.low == st.FromUserID {
			net[key] -= st.Amount.Minor()
		} else {
			net[key] += st.Amount.Minor()
		}
	}

	balances := make([]PairwiseBalance, 0, len(net))
	for key, amount := range net {
		switch {
		case amount > 0:
			balances = append(balances, PairwiseBalance{
				GroupID:    groupID,
				DebtorID:   key.low,
				CreditorID: key.high,
				Amount:     money.FromMinor(amount),
			})
		case amount < 0:
			balances = append(balances, PairwiseBalance{
				GroupID:    groupID,
				DebtorID:   key.high,
				CreditorID: key.low,
				Amount:     money.FromMinor(-amount),
			})
		}
	}

	sort.Slice(balances, func(i, j int) bool {
		if balances[i].DebtorID != balances[j].DebtorID {
			return balances[i].DebtorID < balances[j].DebtorID
		}
		return balances[i].CreditorID < balances[j].CreditorID
	})

	return balances, nil
}
