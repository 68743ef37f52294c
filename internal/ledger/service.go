package ledger

import (
	"context"

	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// ExpenseSource lists a group's active expenses for balance derivation.
type ExpenseSource interface {
	ListActiveRecords(ctx context.Context, groupID int64) ([]ExpenseRecord, error)
}

// SettlementSource lists a group's confirmed settlements.
type SettlementSource interface {
	ListConfirmedRecords(ctx context.Context, groupID int64) ([]SettlementRecord, error)
}

// MemberSource resolves a group's member IDs.
type MemberSource interface {
	GetMemberIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// Service recomputes group balances on demand from the collaborating
// stores. It holds no state of its own.
type Service struct {
	expenses    ExpenseSource
	settlements SettlementSource
	members     MemberSource
}

// NewService creates a new ledger service
func NewService(expenses ExpenseSource, settlements SettlementSource, members MemberSource) *Service {
	return &Service{
		expenses:    expenses,
		settlements: settlements,
		members:     members,
	}
}

// GroupBalances returns the current netted pairwise balances for a group.
func (s *Service) GroupBalances(ctx context.Context, groupID int64) ([]PairwiseBalance, error) {
	memberIDs, err := s.members.GetMemberIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.ListActiveRecords(ctx, groupID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.settlements.ListConfirmedRecords(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return ComputeBalances(groupID, expenses, settlements, memberIDs)
}

// UserBalances returns the balances a user is party to within a group.
func (s *Service) UserBalances(ctx context.Context, groupID, userID int64) ([]PairwiseBalance, error) {
	balances, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	filtered := make([]PairwiseBalance, 0, len(balances))
	for _, b := range balances {
		if b.DebtorID == userID || b.CreditorID == userID {
			filtered = append(filtered, b)
		}
	}

	return filtered, nil
}

// PairBalance returns how much debtorID currently owes creditorID in the
// group, or zero when there is no debt in that direction.
func (s *Service) PairBalance(ctx context.Context, groupID, debtorID, creditorID int64) (money.Money, error) {
	balances, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return 0, err
	}

	for _, b := range balances {
		if b.DebtorID == debtorID && b.CreditorID == creditorID {
			return b.Amount, nil
		}
	}

	return 0, nil
}
