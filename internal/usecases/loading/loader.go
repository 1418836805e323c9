package loading

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/campaign-dashboard-api/pkg/limiter"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const DefaultAdInsightsCeiling = 12

// HierarchyLoader monta os nós da hierarquia com métricas normalizadas
type HierarchyLoader interface {
	LoadCampaigns(ctx context.Context, accountIDs []string, rng domain.RangeSelection, opts Options) ([]*domain.HierarchyNode, error)
	LoadAdTree(ctx context.Context, campaignID string, rng domain.RangeSelection) ([]*domain.HierarchyNode, error)
	LoadDaily(ctx context.Context, kind domain.NodeKind, entityID string, rng domain.RangeSelection) ([]domain.DailyMetrics, error)
	LoadTotals(ctx context.Context, kind domain.NodeKind, entityID string, rng domain.RangeSelection) (domain.MetricsRecord, error)
}

// Options ajusta uma carga de campanhas
type Options struct {
	// Unfiltered mantém campanhas sem gasto e sem resultado no período
	Unfiltered bool
}

type Loader struct {
	source     insighting.DataSource
	limiter    *limiter.Limiter
	normalizer normalizing.MetricsNormalizer
	adCeiling  int
}

func NewLoader(source insighting.DataSource, l *limiter.Limiter, normalizer normalizing.MetricsNormalizer, adCeiling int) *Loader {
	if adCeiling <= 0 {
		adCeiling = DefaultAdInsightsCeiling
	}

	return &Loader{
		source:     source,
		limiter:    l,
		normalizer: normalizer,
		adCeiling:  adCeiling,
	}
}

// LoadCampaigns lista as campanhas de cada conta e resolve o total de cada uma no período.
// Falha em qualquer listagem de conta vira um *domain.LoadError; falha no insight de uma
// campanha só zera as métricas daquela campanha. Cancelamento do ctx sempre volta como erro.
func (l *Loader) LoadCampaigns(ctx context.Context, accountIDs []string, rng domain.RangeSelection, opts Options) ([]*domain.HierarchyNode, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	accountIDs = lo.Uniq(accountIDs)

	listings := make([]*limiter.Future[[]domain.EntityRef], len(accountIDs))
	for i, accountID := range accountIDs {
		accountID := accountID
		listings[i] = limiter.Schedule(ctx, l.limiter, func(ctx context.Context) ([]domain.EntityRef, error) {
			return l.source.ListCampaigns(ctx, accountID, rng)
		})
	}

	var (
		nodes   []*domain.HierarchyNode
		listErr error
	)
	for i, f := range listings {
		refs, err := f.Wait(ctx)
		if err != nil {
			listErr = multierr.Append(listErr, asNetworkFailure(err, "listCampaigns", accountIDs[i]))
			continue
		}

		for _, ref := range refs {
			nodes = append(nodes, &domain.HierarchyNode{
				ID:        ref.ID,
				Name:      ref.Name,
				Kind:      domain.NodeKindCampaign,
				AccountID: accountIDs[i],
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if listErr != nil {
		return nil, &domain.LoadError{Operation: "listCampaigns", Err: listErr}
	}

	if err := l.attachTotals(ctx, nodes, rng); err != nil {
		return nil, err
	}

	if !opts.Unfiltered {
		nodes = lo.Filter(nodes, func(n *domain.HierarchyNode, _ int) bool {
			return !n.Metrics.IsInactive()
		})
	}

	sortBySpend(nodes)

	logrus.WithFields(logrus.Fields{
		"accounts":  len(accountIDs),
		"campaigns": len(nodes),
		"range":     rng.String(),
	}).Debug("loader: campaigns loaded")

	return nodes, nil
}

// LoadAdTree devolve os anúncios de uma campanha com métricas, limitados ao teto configurado
func (l *Loader) LoadAdTree(ctx context.Context, campaignID string, rng domain.RangeSelection) ([]*domain.HierarchyNode, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	adSets, err := l.source.ListAdSets(ctx, campaignID)
	if err != nil {
		return nil, &domain.LoadError{Operation: "listAdSets", Err: asNetworkFailure(err, "listAdSets", campaignID)}
	}

	// Uma chamada por conjunto, fora do limitador mas com o mesmo teto; a ordem dos conjuntos é preservada
	adsBySet := make([][]domain.EntityRef, len(adSets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limiter.Max())
	for i, adSet := range adSets {
		i, adSet := i, adSet
		g.Go(func() error {
			ads, err := l.source.ListAds(gctx, adSet.ID)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logrus.WithFields(logrus.Fields{
					"operation": "listAds",
					"entity_id": adSet.ID,
				}).WithError(err).Warn("loader: failed to list ads, skipping ad set")
				return nil
			}
			adsBySet[i] = ads
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ads := lo.Flatten(adsBySet)
	if len(ads) > l.adCeiling {
		ads = ads[:l.adCeiling]
	}

	nodes := lo.Map(ads, func(ad domain.EntityRef, _ int) *domain.HierarchyNode {
		return &domain.HierarchyNode{
			ID:           ad.ID,
			Name:         ad.Name,
			Kind:         domain.NodeKindAd,
			ThumbnailURL: ad.ThumbnailURL,
		}
	})

	if err := l.attachTotals(ctx, nodes, rng); err != nil {
		return nil, err
	}
	sortBySpend(nodes)

	return nodes, nil
}

// LoadDaily busca a série diária de uma entidade pelo limitador
func (l *Loader) LoadDaily(ctx context.Context, kind domain.NodeKind, entityID string, rng domain.RangeSelection) ([]domain.DailyMetrics, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	rows, err := limiter.Do(ctx, l.limiter, func(ctx context.Context) ([]domain.RawInsightRow, error) {
		return l.source.GetInsights(ctx, kind, entityID, rng, domain.GranularityDaily)
	})
	if err != nil {
		return nil, asNetworkFailure(err, "getInsights", entityID)
	}

	return l.normalizer.SummarizeDaily(rows), nil
}

// LoadTotals busca o total de uma entidade no período pelo limitador
func (l *Loader) LoadTotals(ctx context.Context, kind domain.NodeKind, entityID string, rng domain.RangeSelection) (domain.MetricsRecord, error) {
	if err := rng.Validate(); err != nil {
		return domain.MetricsRecord{}, err
	}

	rows, err := limiter.Do(ctx, l.limiter, func(ctx context.Context) ([]domain.RawInsightRow, error) {
		return l.source.GetInsights(ctx, kind, entityID, rng, domain.GranularityTotal)
	})
	if err != nil {
		return domain.MetricsRecord{}, asNetworkFailure(err, "getInsights", entityID)
	}

	return l.normalizer.Summarize(rows), nil
}

// attachTotals agenda um pedido de insights por nó e preenche as métricas.
// Só o cancelamento do ctx interrompe; as demais falhas zeram o nó.
func (l *Loader) attachTotals(ctx context.Context, nodes []*domain.HierarchyNode, rng domain.RangeSelection) error {
	futures := make([]*limiter.Future[[]domain.RawInsightRow], len(nodes))
	for i, node := range nodes {
		node := node
		futures[i] = limiter.Schedule(ctx, l.limiter, func(ctx context.Context) ([]domain.RawInsightRow, error) {
			return l.source.GetInsights(ctx, node.Kind, node.ID, rng, domain.GranularityTotal)
		})
	}

	for i, f := range futures {
		rows, err := f.Wait(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			logrus.WithFields(logrus.Fields{
				"operation": "getInsights",
				"entity_id": nodes[i].ID,
				"kind":      nodes[i].Kind,
			}).WithError(err).Warn("loader: insights failed, using zero metrics")
			nodes[i].Metrics = domain.MetricsRecord{}
			continue
		}
		nodes[i].Metrics = l.normalizer.Summarize(rows)
	}

	return ctx.Err()
}

func sortBySpend(nodes []*domain.HierarchyNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Metrics.Spend > nodes[j].Metrics.Spend
	})
}

func asNetworkFailure(err error, operation, entityID string) error {
	if _, ok := lo.ErrorsAs[*domain.NetworkFailure](err); ok {
		return err
	}
	return &domain.NetworkFailure{Operation: operation, EntityID: entityID, Err: err}
}
