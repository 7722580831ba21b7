package repository

import (
	"context"
	"errors"
	"fmt"

	"pointdesk/domain/entities"

	"github.com/jackc/pgx/v5"
)

type memberRepository struct {
	tx pgx.Tx
}

func newMemberRepository(tx pgx.Tx) *memberRepository {
	return &memberRepository{tx: tx}
}

const memberColumns = "id, member_no, display_name, general_balance, wager_balance, created_at, updated_at"

func scanMember(row pgx.Row) (*entities.Member, error) {
	var member entities.Member
	err := row.Scan(
		&member.ID,
		&member.MemberNo,
		&member.DisplayName,
		&member.GeneralBalance,
		&member.WagerBalance,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByID retrieves a member by ID. Returns nil if not found.
func (r *memberRepository) GetByID(ctx context.Context, id int64) (*entities.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE id = $1`, memberColumns)

	member, err := scanMember(r.tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// GetByMemberNo retrieves a member by membership number. Returns nil if not found.
func (r *memberRepository) GetByMemberNo(ctx context.Context, memberNo string) (*entities.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE member_no = $1`, memberColumns)

	member, err := scanMember(r.tx.QueryRow(ctx, query, memberNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member by number: %w", err)
	}
	return member, nil
}

// Create creates a new member with zero balances
func (r *memberRepository) Create(ctx context.Context, memberNo, displayName string) (*entities.Member, error) {
	query := fmt.Sprintf(`
		INSERT INTO members (member_no, display_name)
		VALUES ($1, $2)
		RETURNING %s`, memberColumns)

	member, err := scanMember(r.tx.QueryRow(ctx, query, memberNo, displayName))
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

// ApplyBalanceDelta atomically increments a member's balance for a
// category. The increment happens in the database, never as a
// read-modify-write in application memory.
func (r *memberRepository) ApplyBalanceDelta(ctx context.Context, memberID int64, category entities.Category, delta int64) error {
	column := "general_balance"
	if category == entities.CategoryWager {
		column = "wager_balance"
	}

	query := fmt.Sprintf(`
		UPDATE members
		SET %s = %s + $2, updated_at = NOW()
		WHERE id = $1`, column, column)

	tag, err := r.tx.Exec(ctx, query, memberID, delta)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %d not found", memberID)
	}
	return nil
}

// AvailableBalance returns the stored balance minus the sum of pending
// use holds for the category
func (r *memberRepository) AvailableBalance(ctx context.Context, memberID int64, category entities.Category) (int64, error) {
	column := "general_balance"
	if category == entities.CategoryWager {
		column = "wager_balance"
	}

	query := fmt.Sprintf(`
		SELECT m.%s + COALESCE((
			SELECT SUM(le.amount)
			FROM ledger_entries le
			WHERE le.member_id = m.id
			  AND le.category = $2
			  AND le.entry_type = 'use'
			  AND le.status = 'pending'
		), 0)
		FROM members m
		WHERE m.id = $1`, column)

	var available int64
	err := r.tx.QueryRow(ctx, query, memberID, category).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("member %d not found", memberID)
		}
		return 0, fmt.Errorf("failed to compute available balance: %w", err)
	}
	return available, nil
}
