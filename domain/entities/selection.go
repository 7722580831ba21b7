package entities

import (
	"strings"
)

// Selection is the typed classification of a wager's free-text selection.
// Classification happens once, against the game the wager references, so
// settlement does not re-derive string heuristics per run.
type Selection string

const (
	SelectionHome    Selection = "home"
	SelectionAway    Selection = "away"
	SelectionDraw    Selection = "draw"
	SelectionUnknown Selection = ""
)

// ClassifySelection resolves free-text selection against a game's teams
// and any known aliases for them. Matching is case-insensitive containment
// of the outcome keyword, the team name, or a team alias.
func ClassifySelection(text string, game *Game, aliases map[string][]string) Selection {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return SelectionUnknown
	}

	if strings.Contains(needle, "draw") {
		return SelectionDraw
	}
	if strings.Contains(needle, "home") || containsTeam(needle, game.HomeTeam, aliases) {
		return SelectionHome
	}
	if strings.Contains(needle, "away") || containsTeam(needle, game.AwayTeam, aliases) {
		return SelectionAway
	}
	return SelectionUnknown
}

func containsTeam(needle, team string, aliases map[string][]string) bool {
	name := strings.ToLower(strings.TrimSpace(team))
	if name != "" && strings.Contains(needle, name) {
		return true
	}
	for _, alias := range aliases[team] {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias != "" && strings.Contains(needle, alias) {
			return true
		}
	}
	return false
}

// Matches checks whether the classified selection agrees with an outcome
func (s Selection) Matches(outcome Outcome) bool {
	switch s {
	case SelectionHome:
		return outcome == OutcomeHome
	case SelectionAway:
		return outcome == OutcomeAway
	case SelectionDraw:
		return outcome == OutcomeDraw
	}
	return false
}

// SelectionWins applies both win rules additively. A wager wins when its
// selection text equals the result score exactly, or when its classified
// selection agrees with the resolved outcome. The rules carry no
// precedence; either one is sufficient.
func SelectionWins(text string, game *Game, outcome Outcome, aliases map[string][]string) bool {
	if strings.TrimSpace(text) == strings.TrimSpace(game.ResultScore) && strings.TrimSpace(text) != "" {
		return true
	}
	return ClassifySelection(text, game, aliases).Matches(outcome)
}
