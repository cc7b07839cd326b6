// Package report folds stored round records into summary statistics. All
// functions are pure: input slices are not mutated and the same input always
// produces the same summary.
package report

import (
	"sort"

	"github.com/ecoplay/game-service/internal/app/domain/game"
)

// PublicGoodsSummary aggregates a participant's public goods rounds.
type PublicGoodsSummary struct {
	TotalRounds         int     `json:"total_rounds"`
	TotalContribution   int     `json:"total_contribution"`
	TotalPayoff         float64 `json:"total_payoff"`
	AverageContribution float64 `json:"average_contribution"`
	AveragePayoff       float64 `json:"average_payoff"`
}

// PublicGoodsReport pairs the summary with the per-round detail, sorted
// ascending by round.
type PublicGoodsReport struct {
	Summary PublicGoodsSummary       `json:"summary"`
	Rounds  []game.PublicGoodsRecord `json:"rounds"`
}

// AggregatePublicGoods folds public goods records into a report.
func AggregatePublicGoods(records []game.PublicGoodsRecord) PublicGoodsReport {
	rounds := append([]game.PublicGoodsRecord(nil), records...)
	sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].Round < rounds[j].Round })

	var summary PublicGoodsSummary
	summary.TotalRounds = len(rounds)
	for _, r := range rounds {
		summary.TotalContribution += r.Donation
		summary.TotalPayoff += r.Payoff
	}
	if summary.TotalRounds > 0 {
		summary.AverageContribution = float64(summary.TotalContribution) / float64(summary.TotalRounds)
		summary.AveragePayoff = summary.TotalPayoff / float64(summary.TotalRounds)
	}
	return PublicGoodsReport{Summary: summary, Rounds: rounds}
}

// TrustorStats aggregates the investing side of trust rounds.
type TrustorStats struct {
	Rounds            int     `json:"rounds"`
	TotalInvestment   int     `json:"total_investment"`
	AverageInvestment float64 `json:"average_investment"`
}

// TrusteeStats aggregates the returning side of trust rounds.
type TrusteeStats struct {
	Rounds            int     `json:"rounds"`
	TotalReceived     int     `json:"total_received"`
	TotalReturned     int     `json:"total_returned"`
	AverageReturnRate float64 `json:"average_return_rate"`
}

// TrustSummary aggregates a participant's trust game rounds by role.
type TrustSummary struct {
	TotalRounds  int          `json:"total_rounds"`
	TrustorStats TrustorStats `json:"trustor_stats"`
	TrusteeStats TrusteeStats `json:"trustee_stats"`
}

// TrustReport pairs the summary with the per-round detail, sorted ascending
// by round.
type TrustReport struct {
	Summary TrustSummary       `json:"summary"`
	Rounds  []game.TrustRecord `json:"rounds"`
}

// AggregateTrust folds trust game records into a report. The average return
// rate is the mean of return/received over all trustee rounds, with rounds
// where nothing was received contributing zero.
func AggregateTrust(records []game.TrustRecord) TrustReport {
	rounds := append([]game.TrustRecord(nil), records...)
	sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].Round < rounds[j].Round })

	var summary TrustSummary
	summary.TotalRounds = len(rounds)

	var returnRateSum float64
	for _, r := range rounds {
		switch r.Role {
		case game.RoleTrustor:
			summary.TrustorStats.Rounds++
			summary.TrustorStats.TotalInvestment += r.Investment
		case game.RoleTrustee:
			summary.TrusteeStats.Rounds++
			summary.TrusteeStats.TotalReceived += r.ReceivedAmount
			summary.TrusteeStats.TotalReturned += r.ReturnAmount
			if r.ReceivedAmount > 0 {
				returnRateSum += float64(r.ReturnAmount) / float64(r.ReceivedAmount)
			}
		}
	}
	if n := summary.TrustorStats.Rounds; n > 0 {
		summary.TrustorStats.AverageInvestment = float64(summary.TrustorStats.TotalInvestment) / float64(n)
	}
	if n := summary.TrusteeStats.Rounds; n > 0 {
		summary.TrusteeStats.AverageReturnRate = returnRateSum / float64(n)
	}
	return TrustReport{Summary: summary, Rounds: rounds}
}

// OverallSummary combines both game reports.
type OverallSummary struct {
	TotalRounds       int            `json:"total_rounds"`
	PublicGoodsPayoff float64        `json:"public_goods_payoff"`
	GamesPlayed       map[string]int `json:"games_played"`
}

// CombinedReport is the response shape of the all-games report.
type CombinedReport struct {
	Overall     OverallSummary    `json:"overall_summary"`
	PublicGoods PublicGoodsReport `json:"public_goods"`
	TrustGame   TrustReport       `json:"trust_game"`
}

// Combine merges the two per-game reports into the overall view.
func Combine(pg PublicGoodsReport, tg TrustReport) CombinedReport {
	return CombinedReport{
		Overall: OverallSummary{
			TotalRounds:       pg.Summary.TotalRounds + tg.Summary.TotalRounds,
			PublicGoodsPayoff: pg.Summary.TotalPayoff,
			GamesPlayed: map[string]int{
				game.GameTypePublicGoods: pg.Summary.TotalRounds,
				game.GameTypeTrust:       tg.Summary.TotalRounds,
			},
		},
		PublicGoods: pg,
		TrustGame:   tg,
	}
}
