package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

func equalThreeWay(payerID int64, total int64) ExpenseRecord {
	share := total / 3
	return ExpenseRecord{
		PayerID: payerID,
		Shares: map[int64]money.Money{
			1: money.FromMinor(share),
			2: money.FromMinor(share),
			3: money.FromMinor(share),
		},
	}
}

func TestComputeBalances_Netting(t *testing.T) {
	// A(1) pays 300 split equally among A,B,C; then B(2) pays 90 split
	// equally among A,B,C. Raw debts: B->A 100, C->A 100, A->B 30, C->B 30.
	// Netted: B owes A 70, C owes A 100, C owes B 30.
	expenses := []ExpenseRecord{
		equalThreeWay(1, 300),
		equalThreeWay(2, 90),
	}

	balances, err := ComputeBalances(10, expenses, nil, []int64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, []PairwiseBalance{
		{GroupID: 10, DebtorID: 2, CreditorID: 1, Amount: money.FromMinor(70)},
		{GroupID: 10, DebtorID: 3, CreditorID: 1, Amount: money.FromMinor(100)},
		{GroupID: 10, DebtorID: 3, CreditorID: 2, Amount: money.FromMinor(30)},
	}, balances)
}

func TestComputeBalances_SingleDirectionPerPair(t *testing.T) {
	expenses := []ExpenseRecord{
		{PayerID: 1, Shares: map[int64]money.Money{1: money.FromMinor(50), 2: money.FromMinor(50)}},
		{PayerID: 2, Shares: map[int64]money.Money{1: money.FromMinor(40), 2: money.FromMinor(40)}},
	}

	balances, err := ComputeBalances(1, expenses, nil, []int64{1, 2})
	require.NoError(t, err)

	require.Len(t, balances, 1)
	assert.Equal(t, int64(2), balances[0].DebtorID)
	assert.Equal(t, int64(1), balances[0].CreditorID)
	assert.Equal(t, money.FromMinor(10), balances[0].Amount)
}

func TestComputeBalances_ConfirmedSettlementReducesPair(t *testing.T) {
	expenses := []ExpenseRecord{
		{PayerID: 1, Shares: map[int64]money.Money{1: money.FromMinor(100), 2: money.FromMinor(100)}},
	}
	settlements := []SettlementRecord{
		{FromUserID: 2, ToUserID: 1, Amount: money.FromMinor(60)},
	}

	balances, err := ComputeBalances(1, expenses, settlements, []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, money.FromMinor(40), balances[0].Amount)

	// Settling the remainder zeroes the pair and removes it entirely.
	settlements = append(settlements, SettlementRecord{FromUserID: 2, ToUserID: 1, Amount: money.FromMinor(40)})
	balances, err = ComputeBalances(1, expenses, settlements, []int64{1, 2})
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestComputeBalances_OverpaidSettlementFlipsDirection(t *testing.T) {
	// A confirmed settlement larger than the debt leaves the former
	// creditor owing the difference back.
	expenses := []ExpenseRecord{
		{PayerID: 1, Shares: map[int64]money.Money{1: money.FromMinor(100), 2: money.FromMinor(100)}},
	}
	settlements := []SettlementRecord{
		{FromUserID: 2, ToUserID: 1, Amount: money.FromMinor(150)},
	}

	balances, err := ComputeBalances(1, expenses, settlements, []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, int64(1), balances[0].DebtorID)
	assert.Equal(t, int64(2), balances[0].CreditorID)
	assert.Equal(t, money.FromMinor(50), balances[0].Amount)
}

func TestComputeBalances_NonMemberShareRejected(t *testing.T) {
	expenses := []ExpenseRecord{
		{PayerID: 1, Shares: map[int64]money.Money{1: money.FromMinor(50), 99: money.FromMinor(50)}},
	}

	_, err := ComputeBalances(1, expenses, nil, []int64{1, 2})
	assert.ErrorIs(t, err, ErrNonMember)

	_, err = ComputeBalances(1, []ExpenseRecord{{PayerID: 99, Shares: map[int64]money.Money{1: money.FromMinor(50)}}}, nil, []int64{1, 2})
	assert.ErrorIs(t, err, ErrNonMember)

	_, err = ComputeBalances(1, nil, []SettlementRecord{{FromUserID: 99, ToUserID: 1, Amount: money.FromMinor(10)}}, []int64{1, 2})
	assert.ErrorIs(t, err, ErrNonMember)
}

func TestComputeBalances_Idempotent(t *testing.T) {
	expenses := []ExpenseRecord{
		equalThreeWay(1, 301),
		equalThreeWay(3, 95),
		{PayerID: 2, Shares: map[int64]money.Money{1: money.FromMinor(17), 3: money.FromMinor(23)}},
	}
	settlements := []SettlementRecord{
		{FromUserID: 2, ToUserID: 1, Amount: money.FromMinor(25)},
	}
	members := []int64{1, 2, 3}

	first, err := ComputeBalances(1, expenses, settlements, members)
	require.NoError(t, err)
	second, err := ComputeBalances(1, expenses, settlements, members)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeBalances_EmptyInputs(t *testing.T) {
	balances, err := ComputeBalances(1, nil, nil, []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Empty(t, balances)
}
