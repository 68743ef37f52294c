package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kharchasplit/kharchasplit-server/internal/expense/split"
	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

type fakeStore struct {
	nextID   int64
	expenses map[int64]*Expense
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, expenses: make(map[int64]*Expense)}
}

func (f *fakeStore) Create(_ context.Context, groupID, payerID int64, description string, amount money.Money, splitType split.SplitType, shares map[int64]money.Money) (*Expense, error) {
	expense := &Expense{
		ID:          f.nextID,
		GroupID:     groupID,
		PayerID:     payerID,
		Description: description,
		Amount:      amount,
		SplitType:   splitType,
		Active:      true,
		CreatedAt:   time.Now(),
		Shares:      shares,
	}
	f.nextID++
	f.expenses[expense.ID] = expense
	copied := *expense
	return &copied, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Expense, error) {
	expense, ok := f.expenses[id]
	if !ok {
		return nil, nil
	}
	copied := *expense
	return &copied, nil
}

func (f *fakeStore) ListByGroupID(_ context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var result []*Expense
	for _, e := range f.expenses {
		if e.GroupID == groupID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, len(result), nil
}

func (f *fakeStore) Deactivate(_ context.Context, id int64) error {
	f.expenses[id].Active = false
	return nil
}

type fakeMembers map[int64][]int64

func (f fakeMembers) GetMemberIDs(_ context.Context, groupID int64) ([]int64, error) {
	return f[groupID], nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	members := fakeMembers{1: {1, 2, 3}}
	return NewService(store, members, split.NewStrategyFactory()), store
}

func TestCreateExpense(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	expense, err := service.Create(ctx, 1, &CreateExpenseRequest{
		GroupID:     1,
		Description: "Dinner",
		Amount:      money.FromMinor(30000),
		SplitType:   "EQUAL",
		Participants: []split.Participant{
			{UserID: 1}, {UserID: 2}, {UserID: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, split.SplitTypeEqual, expense.SplitType)
	assert.True(t, expense.Active)
	assert.Equal(t, map[int64]money.Money{
		1: money.FromMinor(10000),
		2: money.FromMinor(10000),
		3: money.FromMinor(10000),
	}, expense.Shares)
}

func TestCreateExpenseValidations(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	t.Run("unknown split type", func(t *testing.T) {
		_, err := service.Create(ctx, 1, &CreateExpenseRequest{
			GroupID:      1,
			Description:  "Dinner",
			Amount:       money.FromMinor(100),
			SplitType:    "RANDOM",
			Participants: []split.Participant{{UserID: 1}},
		})
		assert.ErrorIs(t, err, split.ErrInvalidInput)
	})

	t.Run("payer outside the group", func(t *testing.T) {
		_, err := service.Create(ctx, 99, &CreateExpenseRequest{
			GroupID:      1,
			Description:  "Dinner",
			Amount:       money.FromMinor(100),
			SplitType:    "EQUAL",
			Participants: []split.Participant{{UserID: 1}},
		})
		assert.ErrorIs(t, err, ErrNotGroupMember)
	})

	t.Run("participant outside the group", func(t *testing.T) {
		_, err := service.Create(ctx, 1, &CreateExpenseRequest{
			GroupID:      1,
			Description:  "Dinner",
			Amount:       money.FromMinor(100),
			SplitType:    "EQUAL",
			Participants: []split.Participant{{UserID: 1}, {UserID: 99}},
		})
		assert.ErrorIs(t, err, ErrNotGroupMember)
	})

	t.Run("split errors propagate", func(t *testing.T) {
		_, err := service.Create(ctx, 1, &CreateExpenseRequest{
			GroupID:      1,
			Description:  "Dinner",
			Amount:       money.FromMinor(100),
			SplitType:    "EQUAL",
			Participants: nil,
		})
		assert.ErrorIs(t, err, split.ErrNoParticipants)
	})
}

func TestRemoveExpense(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	expense, err := service.Create(ctx, 1, &CreateExpenseRequest{
		GroupID:      1,
		Description:  "Cab",
		Amount:       money.FromMinor(100),
		SplitType:    "EQUAL",
		Participants: []split.Participant{{UserID: 1}, {UserID: 2}},
	})
	require.NoError(t, err)

	t.Run("only the payer can remove", func(t *testing.T) {
		err := service.Remove(ctx, expense.ID, 2)
		assert.ErrorIs(t, err, ErrNotPayer)
		assert.True(t, store.expenses[expense.ID].Active)
	})

	t.Run("payer removes, record survives inactive", func(t *testing.T) {
		require.NoError(t, service.Remove(ctx, expense.ID, 1))
		assert.False(t, store.expenses[expense.ID].Active)
	})

	t.Run("removing twice is rejected", func(t *testing.T) {
		err := service.Remove(ctx, expense.ID, 1)
		assert.ErrorIs(t, err, ErrAlreadyRemoved)
	})

	t.Run("unknown expense", func(t *testing.T) {
		err := service.Remove(ctx, 9999, 1)
		assert.ErrorIs(t, err, ErrExpenseNotFound)
	})
}
