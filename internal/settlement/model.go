package settlement

import (
	"time"

	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// SettlementStatus represents where a settlement is in its lifecycle.
// There is no rejected or cancelled state: an unconfirmed settlement
// simply stays PENDING.
type SettlementStatus string

const (
	// SettlementStatusPending means the debtor has claimed to have paid
	// but the creditor has not confirmed. The ledger ignores it.
	SettlementStatusPending SettlementStatus = "PENDING"

	// SettlementStatusPaid is terminal: the creditor confirmed receipt
	// and the amount now reduces the pair's balance.
	SettlementStatusPaid SettlementStatus = "PAID"
)

// Settlement records one member's claim to have paid back another.
type Settlement struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"` // external UUID, stable across clients
	GroupID   int64  `json:"group_id"`

	// FromUserID is the debtor, the member paying off what they owe.
	FromUserID int64 `json:"from_user_id"`

	// ToUserID is the creditor, the member who must confirm receipt.
	ToUserID int64 `json:"to_user_id"`

	Amount money.Money      `json:"amount"`
	Status SettlementStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`

	// PaidAt is set at proposal time: it is the debtor's assertion of
	// when they paid, not a verified fact.
	PaidAt *time.Time `json:"paid_at,omitempty"`

	// ConfirmedAt is set when the creditor confirms.
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`

	// Populated via JOIN
	FromUserName string `json:"from_user_name,omitempty"`
	ToUserName   string `json:"to_user_name,omitempty"`
}
