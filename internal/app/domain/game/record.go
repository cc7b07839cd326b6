package game

import "time"

// PublicGoodsRecord is the persisted form of a public goods round. Records
// are created once per submission and never mutated.
type PublicGoodsRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserEmail      string    `json:"user_email"`
	GameType       string    `json:"game_type"`
	Round          int       `json:"round"`
	Donation       int       `json:"donation"`
	OtherDonations []int     `json:"other_donations"`
	TotalDonated   int       `json:"total_donated"`
	CommonPot      float64   `json:"common_pot"`
	ShareReceived  float64   `json:"share_received"`
	Payoff         float64   `json:"payoff"`
	NewBalance     float64   `json:"new_balance"`
	Timestamp      time.Time `json:"timestamp"`
}

// TrustRecord is the persisted form of a trust game round. Role-specific
// fields for the other role stay zero.
type TrustRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	GameType   string    `json:"game_type"`
	Round      int       `json:"round"`
	Role       Role      `json:"role"`
	Payoff     float64   `json:"payoff"`
	NewBalance float64   `json:"new_balance"`
	Timestamp  time.Time `json:"timestamp"`

	Investment       int     `json:"investment,omitempty"`
	MultipliedAmount int     `json:"multiplied_amount,omitempty"`
	Personality      string  `json:"opponent_personality,omitempty"`
	ReturnRate       float64 `json:"return_rate,omitempty"`
	ReturnedAmount   int     `json:"returned_amount,omitempty"`

	ReceivedAmount int `json:"received_amount,omitempty"`
	ReturnAmount   int `json:"return_amount,omitempty"`
	PointsKept     int `json:"points_kept,omitempty"`
}

// GameTypePublicGoods and friends are the stored game_type tags.
const (
	GameTypePublicGoods  = "public_goods"
	GameTypeTrust        = "trust_game"
	GameTypeTrustTrustor = "trust_game_trustor"
	GameTypeTrustTrustee = "trust_game_trustee"
)
