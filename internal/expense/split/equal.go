package split

import "github.com/kharchasplit/kharchasplit-server/internal/money"

// EqualStrategy divides the expense equally among all participants.
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() SplitType {
	return SplitTypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(amount money.Money, participants []Participant) error {
	return validateCommon(amount, participants)
}

// Calculate divides the amount evenly in minor units. The remainder of
// the integer division goes one unit at a time to the first participants
// in input order, so the shares always sum back to the amount and the
// same input always produces the same result.
func (s *EqualStrategy) Calculate(amount money.Money, participants []Participant) (map[int64]money.Money, error) {
	if err := s.Validate(amount, participants); err != nil {
		return nil, err
	}

	count := int64(len(participants))
	base := amount.Minor() / count
	remainder := amount.Minor() % count

	result := make(map[int64]money.Money, len(participants))
	for i, p := range participants {
		share := base
		if int64(i) < remainder {
			share++
		}
		result[p.UserID] = money.FromMinor(share)
	}

	return result, nil
}
