package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type teamAliasRepository struct {
	tx pgx.Tx
}

func newTeamAliasRepository(tx pgx.Tx) *teamAliasRepository {
	return &teamAliasRepository{tx: tx}
}

// GetAll returns every alias grouped by canonical team name
func (r *teamAliasRepository) GetAll(ctx context.Context) (map[string][]string, error) {
	query := `SELECT team_name, alias FROM team_aliases ORDER BY team_name, alias`

	rows, err := r.tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list team aliases: %w", err)
	}
	defer rows.Close()

	aliases := make(map[string][]string)
	for rows.Next() {
		var teamName, alias string
		if err := rows.Scan(&teamName, &alias); err != nil {
			return nil, fmt.Errorf("failed to scan team alias: %w", err)
		}
		aliases[teamName] = append(aliases[teamName], alias)
	}
	return aliases, rows.Err()
}

// Create adds an alias for a team. Duplicate pairs are ignored.
func (r *teamAliasRepository) Create(ctx context.Context, teamName, alias string) error {
	query := `
		INSERT INTO team_aliases (team_name, alias)
		VALUES ($1, $2)
		ON CONFLICT (team_name, alias) DO NOTHING`

	if _, err := r.tx.Exec(ctx, query, teamName, alias); err != nil {
		return fmt.Errorf("failed to create team alias: %w", err)
	}
	return nil
}
