package repository

import (
	"context"
	"errors"
	"fmt"

	"pointdesk/domain/entities"

	"github.com/jackc/pgx/v5"
)

type ledgerRepository struct {
	tx pgx.Tx
}

func newLedgerRepository(tx pgx.Tx) *ledgerRepository {
	return &ledgerRepository{tx: tx}
}

const ledgerColumns = `id, member_id, category, entry_type, status, amount, reason, order_id, requested_by, approved_by, finalized_at, created_at`

func scanLedgerEntry(row pgx.Row) (*entities.LedgerEntry, error) {
	var entry entities.LedgerEntry
	err := row.Scan(
		&entry.ID,
		&entry.MemberID,
		&entry.Category,
		&entry.Type,
		&entry.Status,
		&entry.Amount,
		&entry.Reason,
		&entry.OrderID,
		&entry.RequestedBy,
		&entry.ApprovedBy,
		&entry.FinalizedAt,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create persists a new entry and populates its ID and timestamps
func (r *ledgerRepository) Create(ctx context.Context, entry *entities.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (member_id, category, entry_type, status, amount, reason, order_id, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.tx.QueryRow(ctx, query,
		entry.MemberID,
		entry.Category,
		entry.Type,
		entry.Status,
		entry.Amount,
		entry.Reason,
		entry.OrderID,
		entry.RequestedBy,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

// GetByID retrieves an entry by ID. Returns nil if not found.
func (r *ledgerRepository) GetByID(ctx context.Context, id int64) (*entities.LedgerEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM ledger_entries WHERE id = $1`, ledgerColumns)

	entry, err := scanLedgerEntry(r.tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return entry, nil
}

// MarkApproved transitions an entry from pending to approved. The update
// is conditional on status so concurrent approvals cannot both succeed;
// a nil result means the entry was no longer pending.
func (r *ledgerRepository) MarkApproved(ctx context.Context, entryID, approverID int64) (*entities.LedgerEntry, error) {
	query := fmt.Sprintf(`
		UPDATE ledger_entries
		SET status = 'approved', approved_by = $2, finalized_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING %s`, ledgerColumns)

	entry, err := scanLedgerEntry(r.tx.QueryRow(ctx, query, entryID, approverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to approve ledger entry: %w", err)
	}
	return entry, nil
}

// MarkRejected transitions an entry from pending to rejected with the
// same pending-only guard as MarkApproved
func (r *ledgerRepository) MarkRejected(ctx context.Context, entryID, approverID int64, reason string) (*entities.LedgerEntry, error) {
	query := fmt.Sprintf(`
		UPDATE ledger_entries
		SET status = 'rejected', approved_by = $2, finalized_at = NOW(),
		    reason = CASE WHEN $3 = '' THEN reason ELSE reason || ' (rejected: ' || $3 || ')' END
		WHERE id = $1 AND status = 'pending'
		RETURNING %s`, ledgerColumns)

	entry, err := scanLedgerEntry(r.tx.QueryRow(ctx, query, entryID, approverID, reason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to reject ledger entry: %w", err)
	}
	return entry, nil
}

// ListByMember returns a member's entries, newest first
func (r *ledgerRepository) ListByMember(ctx context.Context, memberID int64, limit int) ([]*entities.LedgerEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM ledger_entries
		WHERE member_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, ledgerColumns)

	rows, err := r.tx.Query(ctx, query, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
