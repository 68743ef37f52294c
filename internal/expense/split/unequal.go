package split

import "github.com/kharchasplit/kharchasplit-server/internal/money"

// UnequalStrategy takes each participant's declared amount verbatim.
//
// The declared amounts are authoritative and are NOT checked against the
// expense total, matching how the mobile app records unequal splits. The
// exact-sum invariant therefore does not apply to this strategy.
type UnequalStrategy struct{}

// Type returns the split type identifier
func (s *UnequalStrategy) Type() SplitType {
	return SplitTypeUnequal
}

// Validate checks if the inputs are valid for an unequal split
func (s *UnequalStrategy) Validate(amount money.Money, participants []Participant) error {
	if err := validateCommon(amount, participants); err != nil {
		return err
	}

	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingAmount
		}
		if p.Amount.IsNegative() {
			return ErrNegativeShare
		}
	}

	return nil
}

// Calculate returns the declared amounts unmodified.
func (s *UnequalStrategy) Calculate(amount money.Money, participants []Participant) (map[int64]money.Money, error) {
	if err := s.Validate(amount, participants); err != nil {
		return nil, err
	}

	result := make(map[int64]money.Money, len(participants))
	for _, p := range participants {
		result[p.UserID] = *p.Amount
	}

	return result, nil
}
