package overview

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/campaign-dashboard-api/pkg/limiter"
	"github.com/vfg2006/campaign-dashboard-api/pkg/utils"
)

type Overviewer interface {
	ListClients() []domain.Client
	GetOverview(ctx context.Context, rng domain.RangeSelection) ([]domain.ClientOverview, error)
	GetClientOverview(ctx context.Context, clientID string, rng domain.RangeSelection) (*domain.ClientOverview, error)
}

type Service struct {
	clients    map[string]domain.Client
	source     insighting.DataSource
	limiter    *limiter.Limiter
	normalizer normalizing.MetricsNormalizer
}

func NewService(clients map[string]domain.Client, source insighting.DataSource, l *limiter.Limiter, normalizer normalizing.MetricsNormalizer) Overviewer {
	return &Service{
		clients:    clients,
		source:     source,
		limiter:    l,
		normalizer: normalizer,
	}
}

func (s *Service) ListClients() []domain.Client {
	return config.SortedClients(s.clients)
}

// GetOverview resume todos os clientes no período, na ordem do nome
func (s *Service) GetOverview(ctx context.Context, rng domain.RangeSelection) ([]domain.ClientOverview, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	clients := s.ListClients()
	pending := make([][]*limiter.Future[[]domain.RawInsightRow], len(clients))
	for i, client := range clients {
		pending[i] = s.scheduleAccounts(ctx, client, rng)
	}

	overviews := make([]domain.ClientOverview, 0, len(clients))
	for i, client := range clients {
		overviews = append(overviews, s.collect(ctx, client, pending[i]))
	}

	return overviews, nil
}

func (s *Service) GetClientOverview(ctx context.Context, clientID string, rng domain.RangeSelection) (*domain.ClientOverview, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	client, ok := s.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", clientID, domain.ErrClientNotFound)
	}

	overview := s.collect(ctx, client, s.scheduleAccounts(ctx, client, rng))
	return &overview, nil
}

// scheduleAccounts agenda um pedido de insights por conta, todos pelo mesmo limitador
func (s *Service) scheduleAccounts(ctx context.Context, client domain.Client, rng domain.RangeSelection) []*limiter.Future[[]domain.RawInsightRow] {
	futures := make([]*limiter.Future[[]domain.RawInsightRow], len(client.AdAccountIDs))
	for i, accountID := range client.AdAccountIDs {
		accountID := accountID
		futures[i] = limiter.Schedule(ctx, s.limiter, func(ctx context.Context) ([]domain.RawInsightRow, error) {
			return s.source.GetInsights(ctx, domain.NodeKindAccount, accountID, rng, domain.GranularityTotal)
		})
	}
	return futures
}

func (s *Service) collect(ctx context.Context, client domain.Client, futures []*limiter.Future[[]domain.RawInsightRow]) domain.ClientOverview {
	overview := domain.ClientOverview{
		ClientID:   client.ID,
		ClientName: client.Name,
	}

	for i, f := range futures {
		rows, err := f.Wait(ctx)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"operation": "getInsights",
				"entity_id": client.AdAccountIDs[i],
				"client_id": client.ID,
			}).WithError(err).Warn("overview: account insights failed, counting as zero")
			overview.FailedAccounts++
			continue
		}

		metrics := s.normalizer.Summarize(rows)
		overview.Spend += metrics.Spend
		overview.Results += metrics.Results
	}

	if overview.Results > 0 {
		overview.CostPerResult = utils.RoundWithTwoDecimalPlace(overview.Spend / overview.Results)
	}
	overview.Spend = utils.RoundWithTwoDecimalPlace(overview.Spend)

	return overview
}
