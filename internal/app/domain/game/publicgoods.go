// Package game implements round settlement for the public goods and trust
// game simulations. Settlement is a pure function of its input plus the
// injected random source; persistence is the caller's concern.
package game

import (
	"fmt"

	"github.com/ecoplay/game-service/internal/errors"
)

// Experiment parameters shared by both games.
const (
	TotalRounds   = 10
	InitialPoints = 100
	NumPlayers    = 5
	Multiplier    = 1.5

	// Simulated counterpart donations are drawn in [0, MaxSimulatedDonation].
	MaxSimulatedDonation = InitialPoints / 4
)

// PublicGoodsInput is one player's decision for a public goods round.
type PublicGoodsInput struct {
	Round          int
	Donation       int
	CurrentBalance float64
}

// PublicGoodsOutcome is the settled result of a public goods round. The raw
// simulated counterpart donations are kept for transparency and reporting.
type PublicGoodsOutcome struct {
	Round          int     `json:"round"`
	UserDonation   int     `json:"user_donation"`
	OtherDonations []int   `json:"other_donations"`
	TotalDonated   int     `json:"total_donated"`
	CommonPot      float64 `json:"common_pot"`
	SharePerPlayer float64 `json:"share_per_player"`
	Payoff         float64 `json:"payoff"`
	NewBalance     float64 `json:"new_balance"`
	Message        string  `json:"message"`
}

// SettlePublicGoods settles one public goods round: the player's donation is
// pooled with four simulated counterpart donations, the pot is multiplied and
// split evenly, and the payoff is the player's share minus their donation.
func SettlePublicGoods(in PublicGoodsInput, rng Rand) (PublicGoodsOutcome, error) {
	if err := validatePublicGoods(in); err != nil {
		return PublicGoodsOutcome{}, err
	}

	others := make([]int, NumPlayers-1)
	for i := range others {
		others[i] = rng.Intn(MaxSimulatedDonation + 1)
	}

	totalDonated := in.Donation
	for _, d := range others {
		totalDonated += d
	}

	commonPot := float64(totalDonated) * Multiplier
	sharePerPlayer := commonPot / NumPlayers
	payoff := sharePerPlayer - float64(in.Donation)
	newBalance := in.CurrentBalance + payoff

	return PublicGoodsOutcome{
		Round:          in.Round,
		UserDonation:   in.Donation,
		OtherDonations: others,
		TotalDonated:   totalDonated,
		CommonPot:      commonPot,
		SharePerPlayer: sharePerPlayer,
		Payoff:         payoff,
		NewBalance:     newBalance,
		Message: fmt.Sprintf("Donated: %d, total donated: %d, common pot: %.1f, share received: %.1f",
			in.Donation, totalDonated, commonPot, sharePerPlayer),
	}, nil
}

func validatePublicGoods(in PublicGoodsInput) error {
	if in.Round < 1 {
		return errors.InvalidInput("round must be at least 1")
	}
	if in.Donation < 0 {
		return errors.InvalidInput("donation must not be negative")
	}
	if float64(in.Donation) > in.CurrentBalance {
		return errors.InvalidInput("donation exceeds current balance")
	}
	return nil
}
