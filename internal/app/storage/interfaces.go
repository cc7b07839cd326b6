package storage

import (
	"context"
	"errors"

	"github.com/ecoplay/game-service/internal/app/domain/consent"
	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/app/domain/match"
	"github.com/ecoplay/game-service/internal/app/domain/message"
)

// ErrNotFound is returned when a requested record does not exist. All store
// implementations wrap it so callers can match with errors.Is.
var ErrNotFound = errors.New("not found")

// GameStore persists settled round records. Rounds are create-only.
type GameStore interface {
	CreatePublicGoodsRound(ctx context.Context, rec game.PublicGoodsRecord) (game.PublicGoodsRecord, error)
	ListPublicGoodsRounds(ctx context.Context, userID string) ([]game.PublicGoodsRecord, error)

	CreateTrustRound(ctx context.Context, rec game.TrustRecord) (game.TrustRecord, error)
	// ListTrustRounds filters by role when role is non-empty.
	ListTrustRounds(ctx context.Context, userID string, role game.Role) ([]game.TrustRecord, error)
}

// MatchStore persists opponent matching records.
type MatchStore interface {
	CreateMatch(ctx context.Context, m match.Match) (match.Match, error)
	ListMatches(ctx context.Context, userID string) ([]match.Match, error)
}

// MessageStore persists advisory messages and their feedback.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg message.Message) (message.Message, error)
	// ListMessages filters by game type when gameType is non-empty and
	// returns messages ordered by timestamp ascending.
	ListMessages(ctx context.Context, userID string, gameType string) ([]message.Message, error)

	CreateFeedback(ctx context.Context, fb message.Feedback) (message.Feedback, error)
}

// ConsentStore persists consent form submissions.
type ConsentStore interface {
	CreateConsent(ctx context.Context, c consent.Consent) (consent.Consent, error)
	GetConsent(ctx context.Context, id string) (consent.Consent, error)
	ListConsentsByUser(ctx context.Context, userID string) ([]consent.Consent, error)
	ListConsentsByOwner(ctx context.Context, ownerUID string) ([]consent.Consent, error)
	UpdateConsent(ctx context.Context, c consent.Consent) (consent.Consent, error)
	DeleteConsent(ctx context.Context, id string) error
}
