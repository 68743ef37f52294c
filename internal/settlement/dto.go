package settlement

import (
	"time"

	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// CreateSettlementRequest represents the request to propose a settlement.
// The acting user is always the debtor.
type CreateSettlementRequest struct {
	GroupID  int64       `json:"group_id" validate:"required"`
	ToUserID int64       `json:"to_user_id" validate:"required"`
	Amount   money.Money `json:"amount" validate:"required"`
}

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID           int64            `json:"id"`
	Reference    string           `json:"reference"`
	GroupID      int64            `json:"group_id"`
	FromUserID   int64            `json:"from_user_id"`
	FromUserName string           `json:"from_user_name,omitempty"`
	ToUserID     int64            `json:"to_user_id"`
	ToUserName   string           `json:"to_user_name,omitempty"`
	Amount       money.Money      `json:"amount"`
	Status       SettlementStatus `json:"status"`
	CreatedAt    string           `json:"created_at"`
	PaidAt       string           `json:"paid_at,omitempty"`
	ConfirmedAt  string           `json:"confirmed_at,omitempty"`
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		Reference:    s.Reference,
		GroupID:      s.GroupID,
		FromUserID:   s.FromUserID,
		FromUserName: s.FromUserName,
		ToUserID:     s.ToUserID,
		ToUserName:   s.ToUserName,
		Amount:       s.Amount,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
		PaidAt:       formatTime(s.PaidAt),
		ConfirmedAt:  formatTime(s.ConfirmedAt),
	}
}
