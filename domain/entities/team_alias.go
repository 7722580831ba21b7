package entities

import (
	"time"
)

// TeamAlias maps a free-form alias to a canonical team name
type TeamAlias struct {
	ID        int64     `db:"id"`
	TeamName  string    `db:"team_name"`
	Alias     string    `db:"alias"`
	CreatedAt time.Time `db:"created_at"`
}
