package repository

import (
	"context"
	"errors"
	"fmt"

	"pointdesk/domain/entities"

	"github.com/jackc/pgx/v5"
)

type gameRepository struct {
	tx pgx.Tx
}

func newGameRepository(tx pgx.Tx) *gameRepository {
	return &gameRepository{tx: tx}
}

const gameColumns = `id, league, home_team, away_team, game_date, result_score, status, is_verified, settled_at, settled_by, created_at, updated_at`

func scanGame(row pgx.Row) (*entities.Game, error) {
	var game entities.Game
	err := row.Scan(
		&game.ID,
		&game.League,
		&game.HomeTeam,
		&game.AwayTeam,
		&game.GameDate,
		&game.ResultScore,
		&game.Status,
		&game.IsVerified,
		&game.SettledAt,
		&game.SettledBy,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// Create persists a new game and populates its ID and timestamps
func (r *gameRepository) Create(ctx context.Context, game *entities.Game) error {
	query := `
		INSERT INTO games (league, home_team, away_team, game_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.tx.QueryRow(ctx, query,
		game.League,
		game.HomeTeam,
		game.AwayTeam,
		game.GameDate,
		game.Status,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// GetByID retrieves a game by ID. Returns nil if not found.
func (r *gameRepository) GetByID(ctx context.Context, id int64) (*entities.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE id = $1`, gameColumns)

	game, err := scanGame(r.tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// List returns games ordered by game date, newest first
func (r *gameRepository) List(ctx context.Context, limit int) ([]*entities.Game, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM games
		ORDER BY game_date DESC, id DESC
		LIMIT $1`, gameColumns)

	rows, err := r.tx.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*entities.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// RecordResult stores a game's result score and status
func (r *gameRepository) RecordResult(ctx context.Context, gameID int64, resultScore string, status entities.GameStatus) error {
	query := `
		UPDATE games
		SET result_score = $2, status = $3, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.tx.Exec(ctx, query, gameID, resultScore, status)
	if err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}
	return nil
}

// MarkVerified flags a game's result as verified
func (r *gameRepository) MarkVerified(ctx context.Context, gameID int64) error {
	query := `
		UPDATE games
		SET is_verified = TRUE, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.tx.Exec(ctx, query, gameID)
	if err != nil {
		return fmt.Errorf("failed to mark game verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}
	return nil
}

// GetSettlementCandidates returns unsettled verified finished games,
// newest first, with their wager item counts
func (r *gameRepository) GetSettlementCandidates(ctx context.Context) ([]*entities.SettlementCandidate, error) {
	query := fmt.Sprintf(`
		SELECT %s,
		       (SELECT COUNT(*)
		        FROM order_items oi
		        WHERE oi.game_id = g.id
		          AND oi.category IN ('game', 'wager')
		          AND oi.status IN ('pending', 'approved')) AS bet_count
		FROM games g
		WHERE g.status = 'finished'
		  AND g.is_verified = TRUE
		  AND g.settled_at IS NULL
		ORDER BY g.game_date DESC, g.id DESC`, prefixGameColumns("g"))

	rows, err := r.tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*entities.SettlementCandidate
	for rows.Next() {
		var candidate entities.SettlementCandidate
		err := rows.Scan(
			&candidate.ID,
			&candidate.League,
			&candidate.HomeTeam,
			&candidate.AwayTeam,
			&candidate.GameDate,
			&candidate.ResultScore,
			&candidate.Status,
			&candidate.IsVerified,
			&candidate.SettledAt,
			&candidate.SettledBy,
			&candidate.CreatedAt,
			&candidate.UpdatedAt,
			&candidate.BetCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement candidate: %w", err)
		}
		candidates = append(candidates, &candidate)
	}
	return candidates, rows.Err()
}

// ClaimForSettlement atomically stamps settled_at and settled_by. The
// compare-and-set on settled_at guarantees at-most-once settlement even
// when two runs race on the same game.
func (r *gameRepository) ClaimForSettlement(ctx context.Context, gameID, operatorID int64) (bool, error) {
	query := `
		UPDATE games
		SET settled_at = NOW(), settled_by = $2, updated_at = NOW()
		WHERE id = $1 AND settled_at IS NULL`

	tag, err := r.tx.Exec(ctx, query, gameID, operatorID)
	if err != nil {
		return false, fmt.Errorf("failed to claim game for settlement: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func prefixGameColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.league, %[1]s.home_team, %[1]s.away_team, %[1]s.game_date, %[1]s.result_score, %[1]s.status, %[1]s.is_verified, %[1]s.settled_at, %[1]s.settled_by, %[1]s.created_at, %[1]s.updated_at`, alias)
}
