package insighting

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

const defaultLookbackDays = 90

// Service implementa Source sobre outra Source e, quando o cache está habilitado,
// serve os insights diários de campanha a partir de um retrato dos últimos
// LookbackDays dias coletado uma vez por dia.
type Service struct {
	source               Source
	rawInsightRepository repository.RawInsightRepository
	lookbackDays         int
	useCache             bool
	now                  func() time.Time
}

// NewService cria uma nova instância do serviço de insights
func NewService(cfg *config.Config, source Source) *Service {
	lookback := cfg.RawCache.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}

	return &Service{
		source:       source,
		lookbackDays: lookback,
		useCache:     false, // Inicialmente não usa cache
		now:          time.Now,
	}
}

// WithCache habilita o uso de cache de insights
func (s *Service) WithCache(rawInsightRepository repository.RawInsightRepository) *Service {
	s.rawInsightRepository = rawInsightRepository
	s.useCache = rawInsightRepository != nil
	return s
}

func (s *Service) ListCampaigns(ctx context.Context, accountID string, rng domain.RangeSelection) ([]domain.EntityRef, error) {
	return s.source.ListCampaigns(ctx, accountID, rng)
}

func (s *Service) ListAdSets(ctx context.Context, campaignID string) ([]domain.EntityRef, error) {
	return s.source.ListAdSets(ctx, campaignID)
}

func (s *Service) ListAds(ctx context.Context, adSetID string) ([]domain.EntityRef, error) {
	return s.source.ListAds(ctx, adSetID)
}

func (s *Service) GetAccountCurrency(ctx context.Context, accountID string) (string, error) {
	return s.source.GetAccountCurrency(ctx, accountID)
}

func (s *Service) GetInsights(ctx context.Context, kind domain.NodeKind, entityID string, rng domain.RangeSelection, granularity domain.Granularity) ([]domain.RawInsightRow, error) {
	if !s.useCache || kind != domain.NodeKindCampaign || granularity != domain.GranularityDaily || !s.withinLookback(rng) {
		return s.source.GetInsights(ctx, kind, entityID, rng, granularity)
	}

	return s.getCachedDailyInsights(ctx, entityID, rng)
}

func (s *Service) getCachedDailyInsights(ctx context.Context, campaignID string, rng domain.RangeSelection) ([]domain.RawInsightRow, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	logger := logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"fetch_date":  today.Format(time.DateOnly),
		"range":       rng.String(),
	})

	rows, found, err := s.rawInsightRepository.Get(ctx, campaignID, today)
	if err != nil {
		logger.WithError(err).Warn("insights: failed to read raw insight cache, falling back to API")
	}

	if !found || err != nil {
		window := domain.CustomRange(
			today.AddDate(0, 0, -(s.lookbackDays-1)).Format(time.DateOnly),
			today.Format(time.DateOnly),
		)

		rows, err = s.source.GetInsights(ctx, domain.NodeKindCampaign, campaignID, window, domain.GranularityDaily)
		if err != nil {
			return nil, err
		}

		if err := s.rawInsightRepository.Save(ctx, campaignID, today, rows); err != nil {
			logger.WithError(err).Warn("insights: failed to save raw insight cache")
		} else {
			logger.WithField("rows", len(rows)).Debug("insights: raw insight cache refreshed")
		}
	}

	return lo.Filter(rows, func(row domain.RawInsightRow, _ int) bool {
		return rng.Contains(now, row.DateStart)
	}), nil
}

// withinLookback indica se o início do período cabe na janela guardada em cache.
// Dias futuros não têm linhas, então só o início importa.
func (s *Service) withinLookback(rng domain.RangeSelection) bool {
	now := s.now()
	since, _, err := rng.Resolve(now)
	if err != nil {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	oldest := today.AddDate(0, 0, -(s.lookbackDays - 1))

	return !since.Before(oldest)
}
