package expense

import (
	"time"

	"github.com/kharchasplit/kharchasplit-server/internal/expense/split"
	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID      int64               `json:"group_id" validate:"required"`
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       money.Money         `json:"amount" validate:"required"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EQUAL UNEQUAL PERCENTAGE SHARES"`
	Participants []split.Participant `json:"participants" validate:"required,min=1"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          int64                 `json:"id"`
	GroupID     int64                 `json:"group_id"`
	PayerID     int64                 `json:"payer_id"`
	PayerName   string                `json:"payer_name,omitempty"`
	Description string                `json:"description"`
	Amount      money.Money           `json:"amount"`
	SplitType   split.SplitType       `json:"split_type"`
	Active      bool                  `json:"active"`
	Shares      map[int64]money.Money `json:"shares,omitempty"`
	CreatedAt   string                `json:"created_at"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount,
		SplitType:   e.SplitType,
		Active:      e.Active,
		Shares:      e.Shares,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
