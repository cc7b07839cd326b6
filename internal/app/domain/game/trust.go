package game

import (
	"fmt"
	"math"

	"github.com/ecoplay/game-service/internal/errors"
)

// Role identifies which side of the trust game the player is on.
type Role string

const (
	// RoleTrustor decides how much to invest; the counterpart's return is
	// simulated from a drawn personality.
	RoleTrustor Role = "trustor"
	// RoleTrustee receives the multiplied investment and decides how much
	// to return.
	RoleTrustee Role = "trustee"
)

// InvestmentFactor multiplies the trustor's investment before it reaches the
// counterpart.
const InvestmentFactor = 3

// ParseRole validates a role tag from the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTrustor, RoleTrustee:
		return Role(s), nil
	default:
		return "", errors.UnsupportedRole(s)
	}
}

// TrustorDecision is the trustor branch of a trust round submission.
type TrustorDecision struct {
	Investment int
}

// TrusteeDecision is the trustee branch of a trust round submission.
type TrusteeDecision struct {
	ReceivedAmount int
	ReturnAmount   int
}

// TrustOutcome is the settled result of one trust game round. Fields that
// belong to the other role are zero-valued and omitted from JSON.
type TrustOutcome struct {
	Round      int     `json:"round"`
	Role       Role    `json:"role"`
	Payoff     float64 `json:"payoff"`
	NewBalance float64 `json:"new_balance"`
	Message    string  `json:"message"`

	// Trustor fields.
	Investment       int     `json:"investment,omitempty"`
	MultipliedAmount int     `json:"multiplied_amount,omitempty"`
	Personality      string  `json:"opponent_personality,omitempty"`
	ReturnRate       float64 `json:"return_rate,omitempty"`
	ReturnedAmount   int     `json:"returned_amount,omitempty"`

	// Trustee fields.
	ReceivedAmount int `json:"received_amount,omitempty"`
	ReturnAmount   int `json:"return_amount,omitempty"`
	PointsKept     int `json:"points_kept,omitempty"`
}

// SettleTrustor settles a trustor round: the investment is tripled, a
// personality is drawn from the opponent table, a return rate is drawn from
// its range, and the counterpart returns floor(tripled * rate). The new
// balance is currentBalance + payoff, keeping the round sum conservative.
func SettleTrustor(round int, d TrustorDecision, currentBalance float64, rng Rand) (TrustOutcome, error) {
	if round < 1 {
		return TrustOutcome{}, errors.InvalidInput("round must be at least 1")
	}
	if d.Investment < 0 {
		return TrustOutcome{}, errors.InvalidInput("investment must not be negative")
	}
	if float64(d.Investment) > currentBalance {
		return TrustOutcome{}, errors.InvalidInput("investment exceeds current balance")
	}

	multiplied := d.Investment * InvestmentFactor
	personality := DrawPersonality(rng)
	lo, hi := personality.ReturnRateRange[0], personality.ReturnRateRange[1]
	returnRate := lo + rng.Float64()*(hi-lo)
	returned := int(math.Floor(float64(multiplied) * returnRate))

	payoff := float64(returned - d.Investment)
	newBalance := currentBalance + payoff

	return TrustOutcome{
		Round:            round,
		Role:             RoleTrustor,
		Payoff:           payoff,
		NewBalance:       newBalance,
		Investment:       d.Investment,
		MultipliedAmount: multiplied,
		Personality:      personality.Name,
		ReturnRate:       returnRate,
		ReturnedAmount:   returned,
		Message: fmt.Sprintf("Invested: %d, tripled: %d, counterpart (%s) returned: %d",
			d.Investment, multiplied, personality.Name, returned),
	}, nil
}

// SettleTrustee settles a trustee round: the player keeps the received amount
// minus what they return.
func SettleTrustee(round int, d TrusteeDecision, currentBalance float64) (TrustOutcome, error) {
	if round < 1 {
		return TrustOutcome{}, errors.InvalidInput("round must be at least 1")
	}
	if d.ReceivedAmount < 0 {
		return TrustOutcome{}, errors.InvalidInput("received amount must not be negative")
	}
	if d.ReturnAmount < 0 {
		return TrustOutcome{}, errors.InvalidInput("return amount must not be negative")
	}
	if d.ReturnAmount > d.ReceivedAmount {
		return TrustOutcome{}, errors.InvalidInput("return amount exceeds received amount")
	}

	pointsKept := d.ReceivedAmount - d.ReturnAmount
	payoff := float64(pointsKept)
	newBalance := currentBalance + payoff

	return TrustOutcome{
		Round:          round,
		Role:           RoleTrustee,
		Payoff:         payoff,
		NewBalance:     newBalance,
		ReceivedAmount: d.ReceivedAmount,
		ReturnAmount:   d.ReturnAmount,
		PointsKept:     pointsKept,
		Message: fmt.Sprintf("Received: %d, returned: %d, kept: %d",
			d.ReceivedAmount, d.ReturnAmount, pointsKept),
	}, nil
}
