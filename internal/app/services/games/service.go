// Package games runs round settlement for both experiment games and persists
// the resulting records.
package games

import (
	"context"

	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/app/storage"
	"github.com/ecoplay/game-service/internal/errors"
	"github.com/ecoplay/game-service/pkg/logger"
)

// Service settles game rounds and records them.
type Service struct {
	store storage.GameStore
	rng   game.Rand
	log   *logger.Logger
}

// New constructs a games service. A nil rng uses the process-wide default
// random source.
func New(store storage.GameStore, rng game.Rand, log *logger.Logger) *Service {
	if rng == nil {
		rng = game.NewRand()
	}
	if log == nil {
		log = logger.NewDefault("games")
	}
	return &Service{store: store, rng: rng, log: log}
}

// PlayPublicGoods settles one public goods round for the participant and
// persists the record.
func (s *Service) PlayPublicGoods(ctx context.Context, userID, userEmail string, in game.PublicGoodsInput) (game.PublicGoodsOutcome, error) {
	out, err := game.SettlePublicGoods(in, s.rng)
	if err != nil {
		return game.PublicGoodsOutcome{}, err
	}

	rec := game.PublicGoodsRecord{
		UserID:         userID,
		UserEmail:      userEmail,
		GameType:       game.GameTypePublicGoods,
		Round:          out.Round,
		Donation:       out.UserDonation,
		OtherDonations: out.OtherDonations,
		TotalDonated:   out.TotalDonated,
		CommonPot:      out.CommonPot,
		ShareReceived:  out.SharePerPlayer,
		Payoff:         out.Payoff,
		NewBalance:     out.NewBalance,
	}
	if _, err := s.store.CreatePublicGoodsRound(ctx, rec); err != nil {
		return game.PublicGoodsOutcome{}, errors.StorageUnavailable(err)
	}

	s.log.WithField("user_id", userID).
		WithField("round", out.Round).
		WithField("payoff", out.Payoff).
		Info("public goods round settled")
	return out, nil
}

// TrustInput is one trust game round submission. Investment applies to the
// trustor role; ReceivedAmount and ReturnAmount to the trustee role.
type TrustInput struct {
	Round          int
	Role           game.Role
	CurrentBalance float64

	Investment     int
	ReceivedAmount int
	ReturnAmount   int
}

// PlayTrust settles one trust game round for the participant's role and
// persists the record.
func (s *Service) PlayTrust(ctx context.Context, userID, userEmail string, in TrustInput) (game.TrustOutcome, error) {
	var (
		out game.TrustOutcome
		err error
	)
	switch in.Role {
	case game.RoleTrustor:
		out, err = game.SettleTrustor(in.Round, game.TrustorDecision{Investment: in.Investment}, in.CurrentBalance, s.rng)
	case game.RoleTrustee:
		out, err = game.SettleTrustee(in.Round, game.TrusteeDecision{ReceivedAmount: in.ReceivedAmount, ReturnAmount: in.ReturnAmount}, in.CurrentBalance)
	default:
		err = errors.UnsupportedRole(string(in.Role))
	}
	if err != nil {
		return game.TrustOutcome{}, err
	}

	rec := game.TrustRecord{
		UserID:           userID,
		UserEmail:        userEmail,
		GameType:         game.GameTypeTrust,
		Round:            out.Round,
		Role:             out.Role,
		Payoff:           out.Payoff,
		NewBalance:       out.NewBalance,
		Investment:       out.Investment,
		MultipliedAmount: out.MultipliedAmount,
		Personality:      out.Personality,
		ReturnRate:       out.ReturnRate,
		ReturnedAmount:   out.ReturnedAmount,
		ReceivedAmount:   out.ReceivedAmount,
		ReturnAmount:     out.ReturnAmount,
		PointsKept:       out.PointsKept,
	}
	if _, err := s.store.CreateTrustRound(ctx, rec); err != nil {
		return game.TrustOutcome{}, errors.StorageUnavailable(err)
	}

	s.log.WithField("user_id", userID).
		WithField("round", out.Round).
		WithField("role", string(out.Role)).
		WithField("payoff", out.Payoff).
		Info("trust round settled")
	return out, nil
}

// PublicGoodsHistory lists the participant's public goods rounds, ordered by
// round.
func (s *Service) PublicGoodsHistory(ctx context.Context, userID string) ([]game.PublicGoodsRecord, error) {
	records, err := s.store.ListPublicGoodsRounds(ctx, userID)
	if err != nil {
		return nil, errors.StorageUnavailable(err)
	}
	return records, nil
}

// TrustHistory lists the participant's trust game rounds, optionally filtered
// by role.
func (s *Service) TrustHistory(ctx context.Context, userID string, role game.Role) ([]game.TrustRecord, error) {
	records, err := s.store.ListTrustRounds(ctx, userID, role)
	if err != nil {
		return nil, errors.StorageUnavailable(err)
	}
	return records, nil
}
