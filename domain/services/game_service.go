package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pointdesk/domain/entities"
	"pointdesk/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type gameService struct {
	uowFactory interfaces.UnitOfWorkFactory
	audit      interfaces.AuditSink
	clock      interfaces.Clock
}

// NewGameService creates a new game data source service
func NewGameService(
	uowFactory interfaces.UnitOfWorkFactory,
	audit interfaces.AuditSink,
	clock interfaces.Clock,
) interfaces.GameService {
	return &gameService{
		uowFactory: uowFactory,
		audit:      audit,
		clock:      clock,
	}
}

// CreateGame registers a game supplied by the data source
func (s *gameService) CreateGame(ctx context.Context, league, homeTeam, awayTeam string, gameDate time.Time) (*entities.Game, error) {
	if strings.TrimSpace(homeTeam) == "" || strings.TrimSpace(awayTeam) == "" {
		return nil, NewValidationError("teams", "home and away teams are required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game := &entities.Game{
		League:   strings.TrimSpace(league),
		HomeTeam: strings.TrimSpace(homeTeam),
		AwayTeam: strings.TrimSpace(awayTeam),
		GameDate: gameDate,
		Status:   entities.GameStatusScheduled,
	}
	if err := uow.GameRepository().Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return game, nil
}

// RecordResult stores a game's final score and status
func (s *gameService) RecordResult(ctx context.Context, gameID int64, resultScore string, status entities.GameStatus) error {
	switch status {
	case entities.GameStatusScheduled, entities.GameStatusLive, entities.GameStatusFinished,
		entities.GameStatusPostponed, entities.GameStatusCancelled:
	default:
		return NewValidationError("status", fmt.Sprintf("unknown game status %q", status))
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return ErrGameNotFound
	}
	if game.IsSettled() {
		return ErrAlreadySettled
	}

	if err := uow.GameRepository().RecordResult(ctx, gameID, strings.TrimSpace(resultScore), status); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// actor 0 marks the external data source
	s.audit.Record(ctx, interfaces.AuditRecord{
		Action:    "game.record_result",
		Subject:   fmt.Sprintf("game:%d", gameID),
		Before:    game.Status,
		After:     status,
		Timestamp: s.clock.Now(),
	})

	log.WithFields(log.Fields{
		"gameID": gameID,
		"score":  resultScore,
		"status": status,
	}).Info("Game result recorded")
	return nil
}

// Verify marks a game's result as verified
func (s *gameService) Verify(ctx context.Context, gameID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return ErrGameNotFound
	}

	if err := uow.GameRepository().MarkVerified(ctx, gameID); err != nil {
		return fmt.Errorf("failed to mark game verified: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.audit.Record(ctx, interfaces.AuditRecord{
		Action:    "game.verify",
		Subject:   fmt.Sprintf("game:%d", gameID),
		Before:    game.IsVerified,
		After:     true,
		Timestamp: s.clock.Now(),
	})

	log.WithField("gameID", gameID).Info("Game result verified")
	return nil
}

// ListGames returns games, newest first
func (s *gameService) ListGames(ctx context.Context, limit int) ([]*entities.Game, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	games, err := uow.GameRepository().List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return games, nil
}
