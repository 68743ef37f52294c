// Package split implements the expense split strategies. Every strategy
// works on minor units via money.Money, so for EQUAL, PERCENTAGE and
// SHARES the computed shares always sum exactly to the expense amount.
package split

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEqual      SplitType = "EQUAL"
	SplitTypeUnequal    SplitType = "UNEQUAL"
	SplitTypePercentage SplitType = "PERCENTAGE"
	SplitTypeShares     SplitType = "SHARES"
)

// Participant represents one member of a split. Which optional field is
// consulted depends on the strategy: Amount for UNEQUAL, Percent for
// PERCENTAGE, Shares for SHARES. EQUAL ignores all of them.
type Participant struct {
	UserID  int64        `json:"user_id"`
	Amount  *money.Money `json:"amount,omitempty"`
	Percent *int64       `json:"percent,omitempty"`
	Shares  *int64       `json:"shares,omitempty"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(amount money.Money, participants []Participant) error

	// Calculate computes each participant's share of the amount,
	// keyed by user ID. The payer is included like everyone else;
	// ledger derivation is where the payer drops out.
	Calculate(amount money.Money, participants []Participant) (map[int64]money.Money, error)
}

// ErrInvalidInput is the kind every split validation error wraps, so
// callers can match the whole class with a single errors.Is.
var ErrInvalidInput = errors.New("invalid split input")

// Common errors
var (
	ErrNoParticipants       = fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	ErrNonPositiveAmount    = fmt.Errorf("%w: expense amount must be positive", ErrInvalidInput)
	ErrDuplicateParticipant = fmt.Errorf("%w: duplicate participant user ID", ErrInvalidInput)
	ErrNegativeShare        = fmt.Errorf("%w: participant amounts cannot be negative", ErrInvalidInput)
	ErrMissingAmount        = fmt.Errorf("%w: amount required for all participants in an unequal split", ErrInvalidInput)
	ErrMissingPercent       = fmt.Errorf("%w: percent required for all participants in a percentage split", ErrInvalidInput)
	ErrNegativePercent      = fmt.Errorf("%w: percent cannot be negative", ErrInvalidInput)
	ErrInvalidPercentTotal  = fmt.Errorf("%w: percent total must be between 1 and 100", ErrInvalidInput)
	ErrMissingShares        = fmt.Errorf("%w: share count required for all participants in a shares split", ErrInvalidInput)
	ErrInvalidShareCount    = fmt.Errorf("%w: share counts must be positive integers", ErrInvalidInput)
)

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewStrategyFactory creates a new factory instance
func NewStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqual:
		return &EqualStrategy{}, nil
	case SplitTypeUnequal:
		return &UnequalStrategy{}, nil
	case SplitTypePercentage:
		return &PercentageStrategy{}, nil
	case SplitTypeShares:
		return &SharesStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", ErrInvalidInput, splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

// validateCommon holds the checks shared by every strategy. Duplicate
// user IDs are rejected here: the result map has one entry per user, so
// a duplicate would silently swallow a share and break the sum.
func validateCommon(amount money.Money, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	seen := make(map[int64]bool, len(participants))
	for _, p := range participants {
		if seen[p.UserID] {
			return ErrDuplicateParticipant
		}
		seen[p.UserID] = true
	}
	return nil
}

// distributeByWeight divides amount in proportion to the given weights.
// Each participant gets floor(amount * weight / totalWeight) minor units.
// Weights are validated to never exceed totalWeight but may fall short
// of it, so the undistributed leftover can exceed one unit per
// participant; it is split evenly in descending order of fractional
// remainder, ties broken by input order, so the shares always sum back
// to the amount.
func distributeByWeight(amount money.Money, participants []Participant, weights []int64, totalWeight int64) map[int64]money.Money {
	total := amount.Minor()
	result := make(map[int64]money.Money, len(participants))

	type remainder struct {
		index int
		rem   int64
	}
	remainders := make([]remainder, len(participants))

	var distributed int64
	for i, p := range participants {
		product := total * weights[i]
		base := product / totalWeight
		result[p.UserID] = money.FromMinor(base)
		distributed += base
		remainders[i] = remainder{index: i, rem: product % totalWeight}
	}

	sort.SliceStable(remainders, func(a, b int) bool {
		return remainders[a].rem > remainders[b].rem
	})

	leftover := total - distributed
	if leftover > 0 {
		count := int64(len(remainders))
		each := leftover / count
		extra := leftover % count
		for i, r := range remainders {
			add := each
			if int64(i) < extra {
				add++
			}
			if add > 0 {
				p := participants[r.index]
				result[p.UserID] = result[p.UserID].Add(money.FromMinor(add))
			}
		}
	}

	return result
}
