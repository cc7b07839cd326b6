package message

import (
	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/errors"
)

// Advisory templates per game type, in tier order: early rounds get the
// first entry, mid rounds the second, late rounds a random pick.
var templates = map[string][]string{
	game.GameTypePublicGoods: {
		"Cooperating with the other players can benefit everyone.",
		"Consider the balance between your own gain and the group's gain.",
		"Donations grow the whole group's earnings.",
		"Watch how the other players' donations develop.",
	},
	game.GameTypeTrustTrustee: {
		"Trust is mutual. Returning an appropriate share matters.",
		"Acknowledge the counterpart's investment and return fairly.",
		"Make decisions with the long-term relationship in mind.",
		"Trust takes time to build and a moment to break.",
	},
	game.GameTypeTrustTrustor: {
		"Read the counterpart's personality before deciding how much to invest.",
		"A measured investment can benefit both sides.",
		"Investing too much can be risky.",
		"Use the counterpart's responses to gauge their trustworthiness.",
	},
}

const (
	encouragementSuffix = " You are performing well so far!"
	cautionSuffix       = " It may be worth revisiting your strategy."

	earlyRoundCutoff = 3
	midRoundCutoff   = 7

	encouragementBalance = 100
	cautionBalance       = 50
)

// Performance carries the optional performance data used to personalize the
// selected message.
type Performance struct {
	Balance float64 `json:"balance"`
}

// Select picks an advisory message for the given game type and round,
// appending an encouragement or caution suffix based on performance.
func Select(gameType string, round int, perf *Performance, rng game.Rand) (string, error) {
	candidates, ok := templates[gameType]
	if !ok {
		return "", errors.UnsupportedGameType(gameType)
	}

	var selected string
	switch {
	case round <= earlyRoundCutoff:
		selected = candidates[0]
	case round <= midRoundCutoff:
		if len(candidates) > 1 {
			selected = candidates[1]
		} else {
			selected = candidates[0]
		}
	default:
		selected = candidates[rng.Intn(len(candidates))]
	}

	if perf != nil {
		if perf.Balance > encouragementBalance {
			selected += encouragementSuffix
		} else if perf.Balance < cautionBalance {
			selected += cautionSuffix
		}
	}
	return selected, nil
}
