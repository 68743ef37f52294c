package expense

import (
	"context"
	"errors"

	"github.com/kharchasplit/kharchasplit-server/internal/expense/split"
	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotGroupMember  = errors.New("payer and all participants must be group members")
	ErrNotPayer        = errors.New("only the payer can remove an expense")
	ErrAlreadyRemoved  = errors.New("expense has already been removed")
)

// MemberSource resolves a group's member IDs for participant validation.
type MemberSource interface {
	GetMemberIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// Store is the persistence boundary for expenses.
type Store interface {
	Create(ctx context.Context, groupID, payerID int64, description string, amount money.Money, splitType split.SplitType, shares map[int64]money.Money) (*Expense, error)
	GetByID(ctx context.Context, id int64) (*Expense, error)
	ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error)
	Deactivate(ctx context.Context, id int64) error
}

// Service handles expense business logic
type Service struct {
	store        Store
	members      MemberSource
	splitFactory *split.Factory
}

// NewService creates a new expense service with dependencies injected
func NewService(store Store, members MemberSource, splitFactory *split.Factory) *Service {
	return &Service{
		store:        store,
		members:      members,
		splitFactory: splitFactory,
	}
}

// Create resolves the split strategy, computes each participant's share
// and records the expense. The shares are fixed here; later ledger
// queries replay them as-is.
func (s *Service) Create(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*Expense, error) {
	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	shares, err := strategy.Calculate(req.Amount, req.Participants)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.members.GetMemberIDs(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	members := make(map[int64]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	if !members[payerID] {
		return nil, ErrNotGroupMember
	}
	for userID := range shares {
		if !members[userID] {
			return nil, ErrNotGroupMember
		}
	}

	return s.store.Create(ctx, req.GroupID, payerID, req.Description, req.Amount, strategy.Type(), shares)
}

// GetByID retrieves an expense with its shares
func (s *Service) GetByID(ctx context.Context, id int64) (*Expense, error) {
	expense, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	return expense, nil
}

// ListByGroupID retrieves a group's expense history
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListByGroupID(ctx, groupID, perPage, offset)
}

// Remove deactivates an expense. The record stays for history; only the
// ledger stops seeing it.
func (s *Service) Remove(ctx context.Context, expenseID, actorID int64) error {
	expense, err := s.store.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	if expense.PayerID != actorID {
		return ErrNotPayer
	}
	if !expense.Active {
		return ErrAlreadyRemoved
	}

	return s.store.Deactivate(ctx, expenseID)
}
