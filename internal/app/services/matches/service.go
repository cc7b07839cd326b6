// Package matches assigns simulated opponent personalities for the trust
// game and records the assignment.
package matches

import (
	"context"

	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/app/domain/match"
	"github.com/ecoplay/game-service/internal/app/storage"
	"github.com/ecoplay/game-service/internal/errors"
	"github.com/ecoplay/game-service/pkg/logger"
)

// Service draws opponent personalities and records matches.
type Service struct {
	store storage.MatchStore
	rng   game.Rand
	log   *logger.Logger
}

// New constructs a matches service.
func New(store storage.MatchStore, rng game.Rand, log *logger.Logger) *Service {
	if rng == nil {
		rng = game.NewRand()
	}
	if log == nil {
		log = logger.NewDefault("matches")
	}
	return &Service{store: store, rng: rng, log: log}
}

// Match draws a personality for the participant and records the assignment.
// Only the trust game has simulated opponents.
func (s *Service) Match(ctx context.Context, userID, gameType string) (match.Match, error) {
	if gameType != match.GameTypeTrust {
		return match.Match{}, errors.UnsupportedGameType(gameType)
	}

	p := game.DrawPersonality(s.rng)
	m := match.Match{
		UserID:          userID,
		GameType:        gameType,
		Personality:     p.Name,
		Description:     p.Description,
		ReturnRateRange: p.ReturnRateRange,
	}
	created, err := s.store.CreateMatch(ctx, m)
	if err != nil {
		return match.Match{}, errors.StorageUnavailable(err)
	}

	s.log.WithField("user_id", userID).
		WithField("personality", p.Name).
		Info("opponent matched")
	return created, nil
}

// History lists the participant's past matches, oldest first.
func (s *Service) History(ctx context.Context, userID string) ([]match.Match, error) {
	matches, err := s.store.ListMatches(ctx, userID)
	if err != nil {
		return nil, errors.StorageUnavailable(err)
	}
	return matches, nil
}

// Personalities returns the opponent personality table.
func (s *Service) Personalities() []game.Personality {
	return game.Personalities()
}
