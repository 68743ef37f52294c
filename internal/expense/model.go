package expense

import (
	"time"

	"github.com/kharchasplit/kharchasplit-server/internal/expense/split"
	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// Expense represents a shared expense in a group. Once created it is
// immutable except for the Active flag: removing an expense only
// deactivates it so the history survives and the ledger can simply skip
// it on the next recomputation.
type Expense struct {
	ID          int64           `json:"id"`
	GroupID     int64           `json:"group_id"`
	PayerID     int64           `json:"payer_id"`
	Description string          `json:"description"`
	Amount      money.Money     `json:"amount"`
	SplitType   split.SplitType `json:"split_type"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`

	// Shares maps each participant (payer included) to their resolved
	// share of the amount, fixed at creation time.
	Shares map[int64]money.Money `json:"shares,omitempty"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}
