// Package messages generates advisory messages for participants and records
// message history and feedback.
package messages

import (
	"context"

	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/app/domain/message"
	"github.com/ecoplay/game-service/internal/app/storage"
	"github.com/ecoplay/game-service/internal/errors"
	"github.com/ecoplay/game-service/pkg/logger"
)

// Service selects advisory messages and records them with feedback.
type Service struct {
	store storage.MessageStore
	rng   game.Rand
	log   *logger.Logger
}

// New constructs a messages service.
func New(store storage.MessageStore, rng game.Rand, log *logger.Logger) *Service {
	if rng == nil {
		rng = game.NewRand()
	}
	if log == nil {
		log = logger.NewDefault("messages")
	}
	return &Service{store: store, rng: rng, log: log}
}

// Generate selects an advisory message for the round and persists it.
func (s *Service) Generate(ctx context.Context, userID, gameType string, round int, perf *message.Performance) (message.Message, error) {
	if round < 1 {
		return message.Message{}, errors.InvalidInput("round must be at least 1")
	}

	content, err := message.Select(gameType, round, perf, s.rng)
	if err != nil {
		return message.Message{}, err
	}

	msg := message.Message{
		UserID:   userID,
		GameType: gameType,
		Round:    round,
		Content:  content,
		Role:     message.RoleAssistant,
	}
	created, err := s.store.CreateMessage(ctx, msg)
	if err != nil {
		return message.Message{}, errors.StorageUnavailable(err)
	}

	s.log.WithField("user_id", userID).
		WithField("game_type", gameType).
		WithField("round", round).
		Debug("advisory message generated")
	return created, nil
}

// History lists the participant's messages, oldest first, optionally
// filtered by game type.
func (s *Service) History(ctx context.Context, userID, gameType string) ([]message.Message, error) {
	msgs, err := s.store.ListMessages(ctx, userID, gameType)
	if err != nil {
		return nil, errors.StorageUnavailable(err)
	}
	return msgs, nil
}

// RecordFeedback stores whether the participant found a message helpful.
func (s *Service) RecordFeedback(ctx context.Context, userID, messageID string, helpful bool) (message.Feedback, error) {
	if messageID == "" {
		return message.Feedback{}, errors.InvalidInput("message_id is required")
	}

	fb := message.Feedback{UserID: userID, MessageID: messageID, Helpful: helpful}
	created, err := s.store.CreateFeedback(ctx, fb)
	if err != nil {
		return message.Feedback{}, errors.StorageUnavailable(err)
	}

	s.log.WithField("user_id", userID).
		WithField("message_id", messageID).
		WithField("helpful", helpful).
		Debug("message feedback recorded")
	return created, nil
}
