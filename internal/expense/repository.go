package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kharchasplit/kharchasplit-server/internal/expense/split"
	"github.com/kharchasplit/kharchasplit-server/internal/ledger"
	"github.com/kharchasplit/kharchasplit-server/internal/money"
)

// Repository handles expense and share data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an expense together with its resolved per-participant
// shares. Both go in one transaction: a failed expense leaves nothing
// behind.
func (r *Repository) Create(ctx context.Context, groupID, payerID int64, description string, amount money.Money, splitType split.SplitType, shares map[int64]money.Money) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount, split_type, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, group_id, payer_id, description, amount, split_type, active, created_at
	`

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, query, groupID, payerID, description, amount.Minor(), splitType).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.Active,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	shareQuery := `
		INSERT INTO expense_shares (expense_id, user_id, amount)
		VALUES ($1, $2, $3)
	`
	for userID, share := range shares {
		if _, err := tx.ExecContext(ctx, shareQuery, expense.ID, userID, share.Minor()); err != nil {
			return nil, fmt.Errorf("failed to create expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	expense.Shares = shares
	return expense, nil
}

// GetByID retrieves an expense with its shares
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.active, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.SplitType,
		&expense.Active,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	shares, err := r.getShares(ctx, id)
	if err != nil {
		return nil, err
	}
	expense.Shares = shares

	return expense, nil
}

// getShares loads the share map for one expense
func (r *Repository) getShares(ctx context.Context, expenseID int64) (map[int64]money.Money, error) {
	query := `
		SELECT user_id, amount
		FROM expense_shares
		WHERE expense_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	shares := make(map[int64]money.Money)
	for rows.Next() {
		var userID int64
		var amount money.Money
		if err := rows.Scan(&userID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		shares[userID] = amount
	}

	return shares, rows.Err()
}

// ListByGroupID retrieves a group's expense history, newest first,
// including deactivated expenses
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.active, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.SplitType,
			&expense.Active,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, rows.Err()
}

// ListActiveRecords returns the group's active expenses in the shape the
// ledger engine consumes, oldest first.
func (r *Repository) ListActiveRecords(ctx context.Context, groupID int64) ([]ledger.ExpenseRecord, error) {
	query := `
		SELECT e.id, e.payer_id, s.user_id, s.amount
		FROM expenses e
		JOIN expense_shares s ON s.expense_id = e.id
		WHERE e.group_id = $1 AND e.active
		ORDER BY e.created_at, e.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active expenses: %w", err)
	}
	defer rows.Close()

	var records []ledger.ExpenseRecord
	index := make(map[int64]int)
	for rows.Next() {
		var expenseID, payerID, userID int64
		var amount money.Money
		if err := rows.Scan(&expenseID, &payerID, &userID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}

		i, ok := index[expenseID]
		if !ok {
			records = append(records, ledger.ExpenseRecord{
				PayerID: payerID,
				Shares:  make(map[int64]money.Money),
			})
			i = len(records) - 1
			index[expenseID] = i
		}
		records[i].Shares[userID] = amount
	}

	return records, rows.Err()
}

// Deactivate soft-deletes an expense so it no longer feeds the ledger
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE expenses SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to deactivate expense: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
