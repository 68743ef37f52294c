package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

func moneyPtr(minor int64) *money.Money {
	m := money.FromMinor(minor)
	return &m
}

func int64Ptr(v int64) *int64 {
	return &v
}

func sumShares(shares map[int64]money.Money) money.Money {
	var total money.Money
	for _, share := range shares {
		total = total.Add(share)
	}
	return total
}

func TestFactory(t *testing.T) {
	factory := NewStrategyFactory()

	for _, splitType := range []SplitType{SplitTypeEqual, SplitTypeUnequal, SplitTypePercentage, SplitTypeShares} {
		strategy, err := factory.Create(splitType)
		require.NoError(t, err)
		assert.Equal(t, splitType, strategy.Type())
	}

	_, err := factory.CreateFromString("LOTTERY")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEqualStrategy(t *testing.T) {
	strategy := &EqualStrategy{}

	tests := []struct {
		name         string
		amount       money.Money
		participants []Participant
		want         map[int64]money.Money
		wantErr      error
	}{
		{
			name:         "divides evenly",
			amount:       money.FromMinor(300),
			participants: []Participant{{UserID: 1}, {UserID: 2}, {UserID: 3}},
			want: map[int64]money.Money{
				1: money.FromMinor(100),
				2: money.FromMinor(100),
				3: money.FromMinor(100),
			},
		},
		{
			name:         "remainder goes to first participants in input order",
			amount:       money.FromMinor(100),
			participants: []Participant{{UserID: 7}, {UserID: 8}, {UserID: 9}},
			want: map[int64]money.Money{
				7: money.FromMinor(34),
				8: money.FromMinor(33),
				9: money.FromMinor(33),
			},
		},
		{
			name:         "two units of remainder",
			amount:       money.FromMinor(302),
			participants: []Participant{{UserID: 1}, {UserID: 2}, {UserID: 3}},
			want: map[int64]money.Money{
				1: money.FromMinor(101),
				2: money.FromMinor(101),
				3: money.FromMinor(100),
			},
		},
		{
			name:         "single participant",
			amount:       money.FromMinor(555),
			participants: []Participant{{UserID: 4}},
			want:         map[int64]money.Money{4: money.FromMinor(555)},
		},
		{
			name:         "no participants",
			amount:       money.FromMinor(100),
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "zero amount",
			amount:       money.FromMinor(0),
			participants: []Participant{{UserID: 1}},
			wantErr:      ErrNonPositiveAmount,
		},
		{
			name:         "negative amount",
			amount:       money.FromMinor(-100),
			participants: []Participant{{UserID: 1}},
			wantErr:      ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := strategy.Calculate(tt.amount, tt.participants)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.amount, sumShares(got))
		})
	}
}

func TestUnequalStrategy(t *testing.T) {
	strategy := &UnequalStrategy{}

	t.Run("declared amounts are taken verbatim", func(t *testing.T) {
		got, err := strategy.Calculate(money.FromMinor(10000), []Participant{
			{UserID: 1, Amount: moneyPtr(7000)},
			{UserID: 2, Amount: moneyPtr(3000)},
		})
		require.NoError(t, err)
		assert.Equal(t, money.FromMinor(7000), got[1])
		assert.Equal(t, money.FromMinor(3000), got[2])
	})

	t.Run("declared total is not reconciled against the amount", func(t *testing.T) {
		// The app trusts whatever the members typed in, even when it
		// does not add up to the expense total.
		got, err := strategy.Calculate(money.FromMinor(10000), []Participant{
			{UserID: 1, Amount: moneyPtr(5000)},
			{UserID: 2, Amount: moneyPtr(3000)},
		})
		require.NoError(t, err)
		assert.Equal(t, money.FromMinor(8000), sumShares(got))
	})

	t.Run("missing amount rejected", func(t *testing.T) {
		_, err := strategy.Calculate(money.FromMinor(100), []Participant{
			{UserID: 1, Amount: moneyPtr(100)},
			{UserID: 2},
		})
		assert.ErrorIs(t, err, ErrMissingAmount)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := strategy.Calculate(money.FromMinor(100), []Participant{
			{UserID: 1, Amount: moneyPtr(-50)},
		})
		assert.ErrorIs(t, err, ErrNegativeShare)
	})
}

func TestPercentageStrategy(t *testing.T) {
	strategy := &PercentageStrategy{}

	t.Run("exact percentages", func(t *testing.T) {
		got, err := strategy.Calculate(money.FromMinor(100), []Participant{
			{UserID: 1, Percent: int64Ptr(33)},
			{UserID: 2, Percent: int64Ptr(33)},
			{UserID: 3, Percent: int64Ptr(34)},
		})
		require.NoError(t, err)
		assert.Equal(t, money.FromMinor(33), got[1])
		assert.Equal(t, money.FromMinor(33), got[2])
		assert.Equal(t, money.FromMinor(34), got[3])
	})

	t.Run("leftover goes to largest fractional remainder", func(t *testing.T) {
		// 101 * 33% = 33.33 twice, 101 * 34% = 34.34; the single
		// leftover unit lands on the 0.34 remainder.
		got, err := strategy.Calculate(money.FromMinor(101), []Participant{
			{UserID: 1, Percent: int64Ptr(33)},
			{UserID: 2, Percent: int64Ptr(33)},
			{UserID: 3, Percent: int64Ptr(34)},
		})
		require.NoError(t, err)
		assert.Equal(t, money.FromMinor(33), got[1])
		assert.Equal(t, money.FromMinor(33), got[2])
		assert.Equal(t, money.FromMinor(35), got[3])
		assert.Equal(t, money.FromMinor(101), sumShares(got))
	})

	t.Run("remainder ties broken by input order", func(t *testing.T) {
		got, err := strategy.Calculate(money.FromMinor(101), []Participant{
			{UserID: 5, Percent: int64Ptr(50)},
			{UserID: 6, Percent: int64Ptr(50)},
		})
		require.NoError(t, err)
		assert.Equal(t, money.FromMinor(51), got[5])
		assert.Equal(t, money.FromMinor(50), got[6])
	})

	t.Run("percentages not summing to 100 still cover the full amount", func(t *testing.T) {
		got, err := strategy.Calculate(money.FromMinor(1000), []Participant{
			{UserID: 1, Percent: int64Ptr(45)},
			{UserID: 2, Percent: int64Ptr(45)},
		})
		require.NoError(t, err)
		assert.Equal(t, money.FromMinor(1000), sumShares(got))
	})

	t.Run("tiny percentages cover the full amount without negative shares", func(t *testing.T) {
		got, err := strategy.Calculate(money.FromMinor(10000), []Participant{
			{UserID: 1, Percent: int64Ptr(1)},
			{UserID: 2, Percent: int64Ptr(1)},
		})
		require.NoError(t, err)
		assert.Equal(t, money.FromMinor(10000), sumShares(got))
		for userID, share := range got {
			assert.False(t, share.IsNegative(), "user %d", userID)
		}
	})

	t.Run("percent total above 100 rejected", func(t *testing.T) {
		_, err := strategy.Calculate(money.FromMinor(1), []Participant{
			{UserID: 1, Percent: int64Ptr(200)},
			{UserID: 2, Percent: int64Ptr(0)},
		})
		assert.ErrorIs(t, err, ErrInvalidPercentTotal)
	})

	t.Run("percent total of zero rejected", func(t *testing.T) {
		_, err := strategy.Calculate(money.FromMinor(100), []Participant{
			{UserID: 1, Percent: int64Ptr(0)},
			{UserID: 2, Percent: int64Ptr(0)},
		})
		assert.ErrorIs(t, err, ErrInvalidPercentTotal)
	})

	t.Run("missing percent rejected", func(t *testing.T) {
		_, err := strategy.Calculate(money.FromMinor(100), []Participant{{UserID: 1}})
		assert.ErrorIs(t, err, ErrMissingPercent)
	})

	t.Run("negative percent rejected", func(t *testing.T) {
		_, err := strategy.Calculate(money.FromMinor(100), []Participant{
			{UserID: 1, Percent: int64Ptr(-10)},
		})
		assert.ErrorIs(t, err, ErrNegativePercent)
	})
}

func TestSharesStrategy(t *testing.T) {
	strategy := &SharesStrategy{}

	t.Run("proportional to share counts", func(t *testing.T) {
		got, err := strategy.Calculate(money.FromMinor(9000), []Participant{
			{UserID: 1, Shares: int64Ptr(2)},
			{UserID: 2, Shares: int64Ptr(1)},
		})
		require.NoError(t, err)
		assert.Equal(t, money.FromMinor(6000), got[1])
		assert.Equal(t, money.FromMinor(3000), got[2])
	})

	t.Run("leftover distributed deterministically", func(t *testing.T) {
		// 100 / 3 equal shares: all remainders tie, first participant wins.
		got, err := strategy.Calculate(money.FromMinor(100), []Participant{
			{UserID: 1, Shares: int64Ptr(1)},
			{UserID: 2, Shares: int64Ptr(1)},
			{UserID: 3, Shares: int64Ptr(1)},
		})
		require.NoError(t, err)
		assert.Equal(t, money.FromMinor(34), got[1])
		assert.Equal(t, money.FromMinor(33), got[2])
		assert.Equal(t, money.FromMinor(33), got[3])
	})

	t.Run("zero share count rejected", func(t *testing.T) {
		_, err := strategy.Calculate(money.FromMinor(100), []Participant{
			{UserID: 1, Shares: int64Ptr(0)},
		})
		assert.ErrorIs(t, err, ErrInvalidShareCount)
	})

	t.Run("missing share count rejected", func(t *testing.T) {
		_, err := strategy.Calculate(money.FromMinor(100), []Participant{{UserID: 1}})
		assert.ErrorIs(t, err, ErrMissingShares)
	})
}

// TestDuplicateParticipants guards the one-entry-per-user result shape:
// a repeated user ID would overwrite its own share and the sum would
// come up short.
func TestDuplicateParticipants(t *testing.T) {
	equal := &EqualStrategy{}
	_, err := equal.Calculate(money.FromMinor(300), []Participant{
		{UserID: 1}, {UserID: 1}, {UserID: 2},
	})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)

	unequal := &UnequalStrategy{}
	_, err = unequal.Calculate(money.FromMinor(300), []Participant{
		{UserID: 1, Amount: moneyPtr(100)},
		{UserID: 1, Amount: moneyPtr(200)},
	})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)

	percentage := &PercentageStrategy{}
	_, err = percentage.Calculate(money.FromMinor(300), []Participant{
		{UserID: 1, Percent: int64Ptr(50)},
		{UserID: 1, Percent: int64Ptr(50)},
	})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)

	shares := &SharesStrategy{}
	_, err = shares.Calculate(money.FromMinor(300), []Participant{
		{UserID: 1, Shares: int64Ptr(1)},
		{UserID: 1, Shares: int64Ptr(2)},
	})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)
}

// TestExactSumInvariant sweeps awkward amount/participant combinations and
// checks that EQUAL, PERCENTAGE and SHARES splits always add back up to the
// original amount.
func TestExactSumInvariant(t *testing.T) {
	amounts := []int64{1, 7, 99, 100, 101, 333, 1000, 9999, 123457}
	counts := []int{1, 2, 3, 5, 7, 11}

	for _, amount := range amounts {
		for _, count := range counts {
			participants := make([]Participant, count)
			for i := range participants {
				shares := int64(i + 1)
				percent := int64(100 / count)
				if i == 0 {
					percent = int64(100 - (count-1)*(100/count))
				}
				participants[i] = Participant{
					UserID:  int64(i + 1),
					Percent: &percent,
					Shares:  &shares,
				}
			}

			for _, strategy := range []Strategy{&EqualStrategy{}, &PercentageStrategy{}, &SharesStrategy{}} {
				got, err := strategy.Calculate(money.FromMinor(amount), participants)
				require.NoError(t, err, "%s amount=%d count=%d", strategy.Type(), amount, count)
				assert.Equal(t, money.FromMinor(amount), sumShares(got),
					"%s amount=%d count=%d", strategy.Type(), amount, count)
			}
		}
	}
}
