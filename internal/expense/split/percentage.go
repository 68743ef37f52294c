package split

import "github.com/kharchasplit/kharchasplit-server/internal/money"

// PercentageStrategy divides the expense by whole percentage points.
//
// The stated percentages need not sum to exactly 100, but totals of zero
// or above 100 are rejected: a total above 100 would force a negative
// share onto someone. Whatever the stated total leaves undistributed is
// still handed out so the shares sum exactly to the expense amount.
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() SplitType {
	return SplitTypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(amount money.Money, participants []Participant) error {
	if err := validateCommon(amount, participants); err != nil {
		return err
	}

	var total int64
	for _, p := range participants {
		if p.Percent == nil {
			return ErrMissingPercent
		}
		if *p.Percent < 0 {
			return ErrNegativePercent
		}
		total += *p.Percent
	}
	if total < 1 || total > 100 {
		return ErrInvalidPercentTotal
	}

	return nil
}

// Calculate gives each participant floor(amount * percent / 100) minor
// units, then distributes the leftover by largest fractional remainder
// (ties by input order).
func (s *PercentageStrategy) Calculate(amount money.Money, participants []Participant) (map[int64]money.Money, error) {
	if err := s.Validate(amount, participants); err != nil {
		return nil, err
	}

	weights := make([]int64, len(participants))
	for i, p := range participants {
		weights[i] = *p.Percent
	}

	return distributeByWeight(amount, participants, weights, 100), nil
}
