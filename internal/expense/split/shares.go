package split

import "github.com/kharchasplit/kharchasplit-server/internal/money"

// SharesStrategy divides the expense by share counts: a participant
// holding 2 of 5 shares owes 2/5 of the amount.
type SharesStrategy struct{}

// Type returns the split type identifier
func (s *SharesStrategy) Type() SplitType {
	return SplitTypeShares
}

// Validate checks if the inputs are valid for a shares split
func (s *SharesStrategy) Validate(amount money.Money, participants []Participant) error {
	if err := validateCommon(amount, participants); err != nil {
		return err
	}

	for _, p := range participants {
		if p.Shares == nil {
			return ErrMissingShares
		}
		if *p.Shares <= 0 {
			return ErrInvalidShareCount
		}
	}

	return nil
}

// Calculate gives each participant floor(amount * shares / totalShares)
// minor units, then distributes the leftover by largest fractional
// remainder (ties by input order).
func (s *SharesStrategy) Calculate(amount money.Money, participants []Participant) (map[int64]money.Money, error) {
	if err := s.Validate(amount, participants); err != nil {
		return nil, err
	}

	var totalShares int64
	weights := make([]int64, len(participants))
	for i, p := range participants {
		weights[i] = *p.Shares
		totalShares += *p.Shares
	}

	return distributeByWeight(amount, participants, weights, totalShares), nil
}
