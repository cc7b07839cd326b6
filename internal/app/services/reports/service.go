// Package reports builds per-participant result summaries from stored round
// records.
package reports

import (
	"context"

	"github.com/ecoplay/game-service/internal/app/domain/report"
	"github.com/ecoplay/game-service/internal/app/storage"
	"github.com/ecoplay/game-service/internal/errors"
	"github.com/ecoplay/game-service/pkg/logger"
)

// Service aggregates stored rounds into reports.
type Service struct {
	store storage.GameStore
	log   *logger.Logger
}

// New constructs a reports service.
func New(store storage.GameStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("reports")
	}
	return &Service{store: store, log: log}
}

// PublicGoods builds the public goods report for a participant.
func (s *Service) PublicGoods(ctx context.Context, userID string) (report.PublicGoodsReport, error) {
	records, err := s.store.ListPublicGoodsRounds(ctx, userID)
	if err != nil {
		return report.PublicGoodsReport{}, errors.StorageUnavailable(err)
	}
	return report.AggregatePublicGoods(records), nil
}

// Trust builds the trust game report for a participant.
func (s *Service) Trust(ctx context.Context, userID string) (report.TrustReport, error) {
	records, err := s.store.ListTrustRounds(ctx, userID, "")
	if err != nil {
		return report.TrustReport{}, errors.StorageUnavailable(err)
	}
	return report.AggregateTrust(records), nil
}

// Combined builds the all-games report for a participant.
func (s *Service) Combined(ctx context.Context, userID string) (report.CombinedReport, error) {
	pg, err := s.PublicGoods(ctx, userID)
	if err != nil {
		return report.CombinedReport{}, err
	}
	tg, err := s.Trust(ctx, userID)
	if err != nil {
		return report.CombinedReport{}, err
	}
	return report.Combine(pg, tg), nil
}
