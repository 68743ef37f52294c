package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// Common errors
var (
	ErrSettlementNotFound  = errors.New("settlement not found")
	ErrInvalidStatusChange = errors.New("settlement is not pending")
	ErrInsufficientBalance = errors.New("settlement amount exceeds the outstanding balance")
	ErrNotCreditor         = errors.New("only the receiving user can confirm a settlement")
	ErrCannotSettleSelf    = errors.New("cannot create settlement with yourself")
	ErrNonPositiveAmount   = errors.New("settlement amount must be positive")
)

// Store is the persistence boundary for settlements.
type Store interface {
	Create(ctx context.Context, s *Settlement) (*Settlement, error)
	GetByID(ctx context.Context, id int64) (*Settlement, error)
	UpdateStatus(ctx context.Context, id int64, status SettlementStatus, confirmedAt time.Time) (*Settlement, error)
	ListActiveForUser(ctx context.Context, groupID, userID int64) ([]*Settlement, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Settlement, error)
}

// BalanceSource answers how much one user currently owes another in a
// group. Implemented by the ledger service.
type BalanceSource interface {
	PairBalance(ctx context.Context, groupID, debtorID, creditorID int64) (money.Money, error)
}

// Service drives the settlement workflow: the debtor proposes, the
// creditor confirms, and only confirmed settlements touch the ledger.
type Service struct {
	store    Store
	balances BalanceSource
	now      func() time.Time
}

// NewService creates a new settlement service
func NewService(store Store, balances BalanceSource) *Service {
	return &Service{
		store:    store,
		balances: balances,
		now:      time.Now,
	}
}

// Create lets the debtor propose a settlement against their outstanding
// balance towards another member. Partial amounts are allowed; anything
// beyond the current balance is rejected.
//
// The proposal records PaidAt immediately: the debtor is asserting "I
// have paid", not that payment is verified. The pair's balance does not
// move until the creditor confirms.
//
// Nothing stops a debtor from proposing several overlapping settlements
// against the same balance while none is confirmed. Each proposal is
// validated against the balance as it stands, so confirming them all can
// over-reduce the pair. The mobile app behaves the same way.
func (s *Service) Create(ctx context.Context, actorID int64, req *CreateSettlementRequest) (*Settlement, error) {
	if actorID == req.ToUserID {
		return nil, ErrCannotSettleSelf
	}
	if !req.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	outstanding, err := s.balances.PairBalance(ctx, req.GroupID, actorID, req.ToUserID)
	if err != nil {
		return nil, err
	}
	if outstanding.Cmp(req.Amount) < 0 {
		return nil, ErrInsufficientBalance
	}

	now := s.now().UTC()
	return s.store.Create(ctx, &Settlement{
		Reference:  uuid.NewString(),
		GroupID:    req.GroupID,
		FromUserID: actorID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Status:     SettlementStatusPending,
		CreatedAt:  now,
		PaidAt:     &now,
	})
}

// Confirm lets the creditor acknowledge receipt, moving the settlement
// to its terminal PAID state. From the next recomputation on, the amount
// reduces what the debtor owes.
func (s *Service) Confirm(ctx context.Context, settlementID, actorID int64) (*Settlement, error) {
	settlement, err := s.store.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}

	if settlement.ToUserID != actorID {
		return nil, ErrNotCreditor
	}
	if settlement.Status != SettlementStatusPending {
		return nil, ErrInvalidStatusChange
	}

	updated, err := s.store.UpdateStatus(ctx, settlementID, SettlementStatusPaid, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// The store only transitions pending settlements; a concurrent
		// confirmation got there first.
		return nil, ErrInvalidStatusChange
	}
	return updated, nil
}

// GetByID retrieves a settlement by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	settlement, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}
	return settlement, nil
}

// ListActiveForUser returns the pending settlements a user must act on
// in a group: ones they proposed (waiting on the other side) and ones
// waiting for their confirmation.
func (s *Service) ListActiveForUser(ctx context.Context, groupID, userID int64) ([]*Settlement, error) {
	return s.store.ListActiveForUser(ctx, groupID, userID)
}

// ListByUserID returns a user's settlement history across all groups,
// newest first.
func (s *Service) ListByUserID(ctx context.Context, userID int64) ([]*Settlement, error) {
	return s.store.ListByUserID(ctx, userID)
}
