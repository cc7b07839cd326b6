// Package match holds trust game opponent matching records.
package match

import "time"

// Match records which simulated personality was assigned to a user.
type Match struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	GameType        string     `json:"game_type"`
	Personality     string     `json:"matched_personality"`
	Description     string     `json:"personality_description"`
	ReturnRateRange [2]float64 `json:"return_rate_range"`
	Timestamp       time.Time  `json:"timestamp"`
}

// GameTypeTrust is the only matchable game type.
const GameTypeTrust = "trust-game"
