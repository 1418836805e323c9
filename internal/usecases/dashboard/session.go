package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/charting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/visibility"
	"golang.org/x/sync/errgroup"
)

// TopAdsContainer é o contêiner dos anúncios em destaque, carregado só quando visível
const TopAdsContainer = "top-ads"

const (
	MetricResults       = "results"
	MetricCostPerResult = "cost_per_result"
)

// Dependencies reúne o que uma sessão precisa; é compartilhado entre sessões
type Dependencies struct {
	Loader              loading.HierarchyLoader
	Currency            insighting.CurrencySource
	Ranking             ranking.RankingService
	Rebinder            *charting.Rebinder
	VisibilityThreshold float64
}

// MetricRanking é a posição da campanha selecionada numa métrica
type MetricRanking struct {
	Metric    string               `json:"metric"`
	Direction domain.RankDirection `json:"direction"`
	Result    *domain.RankResult   `json:"result"`
	Podium    []domain.Sibling     `json:"podium"`
}

// Snapshot é o estado visível de uma sessão depois da última passagem aceita
type Snapshot struct {
	SessionID        string                    `json:"session_id"`
	Generation       uint64                    `json:"generation"`
	AccountIDs       []string                  `json:"account_ids"`
	Range            domain.RangeSelection     `json:"range"`
	Currency         string                    `json:"currency"`
	Campaigns        []*domain.HierarchyNode   `json:"campaigns"`
	SelectedCampaign string                    `json:"selected_campaign,omitempty"`
	Rankings         []MetricRanking           `json:"rankings,omitempty"`
	Comparison       *domain.MetricsComparison `json:"comparison,omitempty"`
	Charts           []domain.ChartDescriptor  `json:"charts,omitempty"`
	Ads              []*domain.HierarchyNode   `json:"ads,omitempty"`
	AdsLoaded        bool                      `json:"ads_loaded"`
	AdsError         string                    `json:"ads_error,omitempty"`
	Modal            *charting.ChartHandle     `json:"modal,omitempty"`
}

// Session guarda o estado de um painel aberto. Cada troca de contas, período ou
// campanha inicia uma nova geração; resultados de gerações anteriores que chegam
// depois são descartados.
type Session struct {
	id   string
	deps Dependencies

	generation atomic.Uint64
	cache      *charting.Cache
	gate       *visibility.Gate

	mu         sync.Mutex
	state      Snapshot
	lastActive time.Time
	now        func() time.Time
}

func NewSession(id string, deps Dependencies) *Session {
	s := &Session{
		id:    id,
		deps:  deps,
		cache: charting.NewCache(),
		gate:  visibility.NewGate(deps.VisibilityThreshold),
		now:   time.Now,
	}
	s.state = Snapshot{
		SessionID: id,
		Range:     domain.Preset(domain.PresetToday),
		Currency:  domain.CurrencySymbol(""),
	}
	s.lastActive = s.now()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// LastActive devolve o horário do último evento recebido
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot devolve uma cópia do estado atual
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := s.state
	snap.Generation = s.generation.Load()
	snap.AccountIDs = append([]string(nil), s.state.AccountIDs...)
	snap.Campaigns = append([]*domain.HierarchyNode(nil), s.state.Campaigns...)
	snap.Ads = append([]*domain.HierarchyNode(nil), s.state.Ads...)
	snap.Rankings = append([]MetricRanking(nil), s.state.Rankings...)
	snap.Charts = s.cache.All()
	return snap
}

// Handle aplica um evento e devolve o estado resultante. Quando o resultado
// pertence a uma geração superada ele é descartado e o estado atual é devolvido.
func (s *Session) Handle(ctx context.Context, event Event) (Snapshot, error) {
	s.mu.Lock()
	s.lastActive = s.now()
	s.mu.Unlock()

	var err error
	switch e := event.(type) {
	case AccountsSelected:
		err = s.reload(ctx, lo.Uniq(e.AccountIDs), nil)
	case RangeChanged:
		err = s.reload(ctx, nil, &e.Range)
	case CampaignSelected:
		err = s.selectCampaign(ctx, e.CampaignID)
	case PanelVisibility:
		s.gate.Observe(ctx, e.Container, e.Ratio)
	case ModalOpened:
		err = s.openModal(ctx, e.PanelID, e.Surface)
	case ModalClosed:
		s.mu.Lock()
		s.state.Modal = nil
		s.mu.Unlock()
	default:
		err = fmt.Errorf("evento não suportado: %T", event)
	}

	if errors.Is(err, domain.ErrStaleGeneration) {
		logrus.WithFields(logrus.Fields{
			"session_id": s.id,
			"event":      event.Name(),
		}).Debug("dashboard: stale result discarded")
		err = nil
	}
	if err != nil {
		return Snapshot{}, err
	}

	return s.Snapshot(), nil
}

// Chart devolve o descritor de um painel da passagem atual
func (s *Session) Chart(panelID string) (domain.ChartDescriptor, error) {
	desc, ok := s.cache.Get(panelID)
	if !ok {
		return domain.ChartDescriptor{}, fmt.Errorf("%s: %w", panelID, domain.ErrChartNotFound)
	}
	return desc, nil
}

// Materialize reproduz um painel numa superfície qualquer, sem alterar o estado da sessão
func (s *Session) Materialize(ctx context.Context, panelID string, surface charting.Surface) (*charting.ChartHandle, error) {
	desc, err := s.Chart(panelID)
	if err != nil {
		return nil, err
	}
	return s.deps.Rebinder.MaterializeWhenReady(ctx, desc, surface)
}

// begin inicia uma nova geração, descartando o que dependia da anterior
func (s *Session) begin(resetCampaigns bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.generation.Add(1)
	s.cache.Clear()
	s.gate.Disarm(TopAdsContainer)
	s.state.Modal = nil
	s.state.SelectedCampaign = ""
	s.state.Rankings = nil
	s.state.Comparison = nil
	s.state.Ads = nil
	s.state.AdsLoaded = false
	s.state.AdsError = ""
	if resetCampaigns {
		s.state.Campaigns = nil
	}
	return gen
}

// commit executa apply sob o lock se gen ainda for a geração atual
func (s *Session) commit(gen uint64, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation.Load() != gen {
		return domain.ErrStaleGeneration
	}
	apply()
	return nil
}

func (s *Session) reload(ctx context.Context, accountIDs []string, rng *domain.RangeSelection) error {
	if rng != nil {
		if err := rng.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	if accountIDs == nil {
		accountIDs = append([]string(nil), s.state.AccountIDs...)
	}
	if rng == nil {
		current := s.state.Range
		rng = &current
	}
	s.mu.Unlock()

	gen := s.begin(true)

	currency := domain.CurrencySymbol("")
	if len(accountIDs) > 0 && s.deps.Currency != nil {
		symbol, err := s.deps.Currency.GetAccountCurrency(ctx, accountIDs[0])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"operation": "getAccountCurrency",
				"entity_id": accountIDs[0],
			}).WithError(err).Warn("dashboard: currency lookup failed, using default symbol")
		} else {
			currency = symbol
		}
	}

	var campaigns []*domain.HierarchyNode
	if len(accountIDs) > 0 {
		var err error
		campaigns, err = s.deps.Loader.LoadCampaigns(ctx, accountIDs, *rng, loading.Options{})
		if err != nil {
			// A seleção continua registrada para que o usuário possa tentar de novo.
			// Falha de uma passagem já substituída não chega ao usuário.
			if commitErr := s.commit(gen, func() {
				s.state.AccountIDs = accountIDs
				s.state.Range = *rng
			}); commitErr != nil {
				return commitErr
			}
			return err
		}
	}

	return s.commit(gen, func() {
		s.state.AccountIDs = accountIDs
		s.state.Range = *rng
		s.state.Currency = currency
		s.state.Campaigns = campaigns
	})
}

func (s *Session) selectCampaign(ctx context.Context, campaignID string) error {
	s.mu.Lock()
	rng := s.state.Range
	currency := s.state.Currency
	campaigns := s.state.Campaigns
	s.mu.Unlock()

	gen := s.begin(false)

	// O contêiner de anúncios passa a carregar esta campanha; callbacks antigos morrem aqui
	s.gate.Rearm(TopAdsContainer, func(ctx context.Context) {
		s.loadAds(ctx, gen, campaignID, rng)
	})

	var (
		daily                  []domain.DailyMetrics
		today, yesterday       domain.MetricsRecord
		todayErr, yesterdayErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = s.deps.Loader.LoadDaily(gctx, domain.NodeKindCampaign, campaignID, rng)
		return err
	})
	g.Go(func() error {
		today, todayErr = s.deps.Loader.LoadTotals(gctx, domain.NodeKindCampaign, campaignID, domain.Preset(domain.PresetToday))
		return nil
	})
	g.Go(func() error {
		yesterday, yesterdayErr = s.deps.Loader.LoadTotals(gctx, domain.NodeKindCampaign, campaignID, domain.Preset(domain.PresetYesterday))
		return nil
	})
	if err := g.Wait(); err != nil {
		if s.generation.Load() != gen {
			return domain.ErrStaleGeneration
		}
		return err
	}

	// Sem um dos dias a comparação fica de fora; o restante da seleção segue
	var comparison *domain.MetricsComparison
	if cmpErr := errors.Join(todayErr, yesterdayErr); cmpErr != nil {
		logrus.WithFields(logrus.Fields{
			"operation": "loadTotals",
			"entity_id": campaignID,
		}).WithError(cmpErr).Warn("dashboard: today vs yesterday comparison unavailable")
	} else {
		c := normalizing.Compare(today, yesterday)
		comparison = &c
	}

	charts := charting.BuildCampaignCharts(daily, currency)
	rankings := s.rankCampaign(campaigns, campaignID)

	return s.commit(gen, func() {
		s.cache.Replace(charts)
		s.state.SelectedCampaign = campaignID
		s.state.Rankings = rankings
		s.state.Comparison = comparison
	})
}

func (s *Session) rankCampaign(campaigns []*domain.HierarchyNode, campaignID string) []MetricRanking {
	results := lo.Map(campaigns, func(n *domain.HierarchyNode, _ int) domain.Sibling {
		return domain.Sibling{ID: n.ID, Name: n.Name, Value: n.Metrics.Results}
	})

	// Sem resultado não há custo por resultado a comparar
	costs := lo.FilterMap(campaigns, func(n *domain.HierarchyNode, _ int) (domain.Sibling, bool) {
		return domain.Sibling{ID: n.ID, Name: n.Name, Value: n.Metrics.CostPerResult}, n.Metrics.Results > 0
	})

	var out []MetricRanking
	for _, m := range []struct {
		metric    string
		direction domain.RankDirection
		siblings  []domain.Sibling
	}{
		{MetricResults, domain.HigherIsBetter, results},
		{MetricCostPerResult, domain.LowerIsBetter, costs},
	} {
		result, err := s.deps.Ranking.Rank(m.siblings, campaignID, m.direction)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"metric":      m.metric,
			}).WithError(err).Debug("dashboard: campaign not ranked")
			continue
		}
		out = append(out, MetricRanking{
			Metric:    m.metric,
			Direction: m.direction,
			Result:    result,
			Podium:    s.deps.Ranking.Podium(m.siblings, m.direction),
		})
	}

	return out
}

func (s *Session) loadAds(ctx context.Context, gen uint64, campaignID string, rng domain.RangeSelection) {
	ads, err := s.deps.Loader.LoadAdTree(ctx, campaignID, rng)

	commitErr := s.commit(gen, func() {
		s.state.AdsLoaded = true
		if err != nil {
			s.state.AdsError = err.Error()
			return
		}
		s.state.Ads = ads
	})

	logger := logrus.WithFields(logrus.Fields{
		"session_id":  s.id,
		"campaign_id": campaignID,
	})
	switch {
	case commitErr != nil:
		logger.WithError(commitErr).Debug("dashboard: stale ad tree discarded")
	case err != nil:
		logger.WithError(err).Warn("dashboard: failed to load ad tree")
	}
}

func (s *Session) openModal(ctx context.Context, panelID string, surface charting.Surface) error {
	gen := s.generation.Load()

	handle, err := s.Materialize(ctx, panelID, surface)
	if err != nil {
		return err
	}

	return s.commit(gen, func() {
		s.state.Modal = handle
	})
}
