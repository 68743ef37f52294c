package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kharchasplit/kharchasplit-server/internal/expense/split"
	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

func TestToResponseTimestampUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	e := &Expense{
		ID:        1,
		GroupID:   1,
		PayerID:   1,
		Amount:    money.FromMinor(100),
		SplitType: split.SplitTypeEqual,
		Active:    true,
		CreatedAt: time.Date(2024, 6, 1, 17, 30, 0, 0, ist),
	}

	assert.Equal(t, "2024-06-01T12:00:00Z", e.ToResponse().CreatedAt)
}
