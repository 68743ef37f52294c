package settlement

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kharchasplit/kharchasplit-server/internal/ledger"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const settlementColumns = `
	s.id, s.reference, s.group_id, s.from_user_id, s.to_user_id,
	s.amount, s.status, s.created_at, s.paid_at, s.confirmed_at,
	fu.name, tu.name
`

const settlementJoins = `
	FROM settlements s
	JOIN users fu ON s.from_user_id = fu.id
	JOIN users tu ON s.to_user_id = tu.id
`

func scanSettlement(scanner interface{ Scan(...any) error }) (*Settlement, error) {
	s := &Settlement{}
	err := scanner.Scan(
		&s.ID,
		&s.Reference,
		&s.GroupID,
		&s.FromUserID,
		&s.ToUserID,
		&s.Amount,
		&s.Status,
		&s.CreatedAt,
		&s.PaidAt,
		&s.ConfirmedAt,
		&s.FromUserName,
		&s.ToUserName,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new settlement
func (r *Repository) Create(ctx context.Context, s *Settlement) (*Settlement, error) {
	query := `
		INSERT INTO settlements (reference, group_id, from_user_id, to_user_id, amount, status, created_at, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	created := *s
	err := r.db.QueryRowContext(ctx, query,
		s.Reference,
		s.GroupID,
		s.FromUserID,
		s.ToUserID,
		s.Amount.Minor(),
		s.Status,
		s.CreatedAt,
		s.PaidAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a settlement by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	query := `SELECT ` + settlementColumns + settlementJoins + ` WHERE s.id = $1`

	s, err := scanSettlement(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return s, nil
}

// UpdateStatus transitions a pending settlement and records the
// confirmation time. The PENDING guard in the UPDATE makes the
// transition atomic: of two concurrent confirmations only one finds a
// row to update, the other gets nil back.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status SettlementStatus, confirmedAt time.Time) (*Settlement, error) {
	query := `
		UPDATE settlements
		SET status = $2, confirmed_at = $3
		WHERE id = $1 AND status = $4
	`

	result, err := r.db.ExecContext(ctx, query, id, status, confirmedAt, SettlementStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to update settlement status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update settlement status: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// ListActiveForUser retrieves the pending settlements a user is party to
// within a group
func (r *Repository) ListActiveForUser(ctx context.Context, groupID, userID int64) ([]*Settlement, error) {
	query := `SELECT ` + settlementColumns + settlementJoins + `
		WHERE s.group_id = $1
		  AND s.status = $2
		  AND (s.from_user_id = $3 OR s.to_user_id = $3)
		ORDER BY s.created_at DESC, s.id DESC
	`

	return r.list(ctx, query, groupID, SettlementStatusPending, userID)
}

// ListByUserID retrieves a user's settlement history across all groups,
// newest first
func (r *Repository) ListByUserID(ctx context.Context, userID int64) ([]*Settlement, error) {
	query := `SELECT ` + settlementColumns + settlementJoins + `
		WHERE s.from_user_id = $1 OR s.to_user_id = $1
		ORDER BY s.created_at DESC, s.id DESC
	`

	return r.list(ctx, query, userID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*Settlement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, rows.Err()
}

// ListConfirmedRecords returns the group's confirmed settlements in the
// shape the ledger engine consumes.
func (r *Repository) ListConfirmedRecords(ctx context.Context, groupID int64) ([]ledger.SettlementRecord, error) {
	query := `
		SELECT from_user_id, to_user_id, amount
		FROM settlements
		WHERE group_id = $1 AND status = $2
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, SettlementStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed settlements: %w", err)
	}
	defer rows.Close()

	var records []ledger.SettlementRecord
	for rows.Next() {
		var record ledger.SettlementRecord
		if err := rows.Scan(&record.FromUserID, &record.ToUserID, &record.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan confirmed settlement: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
