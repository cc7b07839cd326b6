package game

// Personality is a behavioral archetype governing how a simulated trust game
// counterpart returns funds. The table is fixed at process start and is safe
// for concurrent reads.
type Personality struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	ReturnRateRange [2]float64 `json:"return_rate_range"`
}

var personalities = []Personality{
	{
		Name:            "Cautious Receiver",
		Description:     "Returns little of what was entrusted (10-30%)",
		ReturnRateRange: [2]float64{0.1, 0.3},
	},
	{
		Name:            "Fair Receiver",
		Description:     "Returns a moderate share (40-60%)",
		ReturnRateRange: [2]float64{0.4, 0.6},
	},
	{
		Name:            "Generous Receiver",
		Description:     "Returns most of what was entrusted (70-90%)",
		ReturnRateRange: [2]float64{0.7, 0.9},
	},
	{
		Name:            "Unpredictable Receiver",
		Description:     "Return rate varies widely (10-90%)",
		ReturnRateRange: [2]float64{0.1, 0.9},
	},
}

// Personalities returns a copy of the opponent personality table.
func Personalities() []Personality {
	return append([]Personality(nil), personalities...)
}

// PersonalityByName looks up a table entry by name.
func PersonalityByName(name string) (Personality, bool) {
	for _, p := range personalities {
		if p.Name == name {
			return p, true
		}
	}
	return Personality{}, false
}

// DrawPersonality picks one table entry uniformly at random.
func DrawPersonality(rng Rand) Personality {
	return personalities[rng.Intn(len(personalities))]
}
