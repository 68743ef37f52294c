package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

func TestToResponseTimestampsUTC(t *testing.T) {
	// Times scanned from timestamptz carry the session zone; the API
	// must still emit the true instant in UTC.
	ist := time.FixedZone("IST", 5*3600+1800)
	createdAt := time.Date(2024, 6, 1, 17, 30, 0, 0, ist)
	paidAt := createdAt.Add(time.Minute)

	s := &Settlement{
		ID:         1,
		GroupID:    1,
		FromUserID: 2,
		ToUserID:   1,
		Amount:     money.FromMinor(100),
		Status:     SettlementStatusPending,
		CreatedAt:  createdAt,
		PaidAt:     &paidAt,
	}

	resp := s.ToResponse()
	assert.Equal(t, "2024-06-01T12:00:00Z", resp.CreatedAt)
	assert.Equal(t, "2024-06-01T12:01:00Z", resp.PaidAt)
	assert.Empty(t, resp.ConfirmedAt)
}
