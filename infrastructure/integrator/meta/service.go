package meta

import (
	"context"
	"net/url"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"golang.org/x/sync/singleflight"
)

const campaignStatusActive = "ACTIVE"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MetaIntegrator é a fonte de dados do painel sobre a Graph API
type MetaIntegrator struct {
	Client metaclient.Client

	currencyGroup singleflight.Group
	currencyMu    sync.RWMutex
	currencies    map[string]string
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client:     client,
		currencies: make(map[string]string),
	}
}

// AccountPath normaliza o id da conta para o formato act_<id>
func AccountPath(accountID string) string {
	accountID = strings.TrimSpace(accountID)
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}
	return "act_" + accountID
}

func (s *MetaIntegrator) ListCampaigns(ctx context.Context, accountID string, rng domain.RangeSelection) ([]domain.EntityRef, error) {
	campaigns, err := s.Client.GetCampaignsByAccountID(ctx, AccountPath(accountID))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"range":      rng.String(),
		}).WithError(err).Error("meta: failed to list campaigns")
		return nil, err
	}

	// O filtro effective_status nem sempre é respeitado; conferimos o status aqui
	return lo.FilterMap(campaigns, func(c metadomain.Campaign, _ int) (domain.EntityRef, bool) {
		return domain.EntityRef{ID: c.ID, Name: c.Name, Status: c.Status}, c.Status == campaignStatusActive
	}), nil
}

func (s *MetaIntegrator) ListAdSets(ctx context.Context, campaignID string) ([]domain.EntityRef, error) {
	adSets, err := s.Client.GetAdSetsByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	return lo.Map(adSets, func(a metadomain.AdSet, _ int) domain.EntityRef {
		return domain.EntityRef{ID: a.ID, Name: a.Name, Status: a.Status}
	}), nil
}

func (s *MetaIntegrator) ListAds(ctx context.Context, adSetID string) ([]domain.EntityRef, error) {
	ads, err := s.Client.GetAdsByAdSetID(ctx, adSetID)
	if err != nil {
		return nil, err
	}

	return lo.Map(ads, func(a metadomain.Ad, _ int) domain.EntityRef {
		return domain.EntityRef{ID: a.ID, Name: a.Name, Status: a.Status, ThumbnailURL: a.Thumbnail()}
	}), nil
}

func (s *MetaIntegrator) GetInsights(ctx context.Context, kind domain.NodeKind, entityID string, rng domain.RangeSelection, granularity domain.Granularity) ([]domain.RawInsightRow, error) {
	params, err := InsightParams(kind, rng, granularity)
	if err != nil {
		return nil, err
	}

	if kind == domain.NodeKindAccount {
		entityID = AccountPath(entityID)
	}

	rows, err := s.Client.GetInsights(ctx, entityID, params)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(r metadomain.InsightRow, _ int) domain.RawInsightRow {
		return r.ToRaw()
	}), nil
}

// InsightParams monta level, período e quebra diária de uma consulta de insights
func InsightParams(kind domain.NodeKind, rng domain.RangeSelection, granularity domain.Granularity) (url.Values, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("level", string(kind))

	if preset := rng.DatePreset(); preset != "" {
		params.Set("date_preset", preset)
	} else {
		timeRange, err := json.MarshalToString(map[string]string{"since": rng.Since, "until": rng.Until})
		if err != nil {
			return nil, err
		}
		params.Set("time_range", timeRange)
	}

	if granularity == domain.GranularityDaily {
		params.Set("time_increment", "1")
	}

	return params, nil
}

// GetAccountCurrency devolve o símbolo da moeda da conta. Consultas simultâneas
// da mesma conta viram uma só chamada e o resultado fica em memória.
func (s *MetaIntegrator) GetAccountCurrency(ctx context.Context, accountID string) (string, error) {
	path := AccountPath(accountID)

	s.currencyMu.RLock()
	symbol, ok := s.currencies[path]
	s.currencyMu.RUnlock()
	if ok {
		return symbol, nil
	}

	v, err, _ := s.currencyGroup.Do(path, func() (any, error) {
		account, err := s.Client.GetAdAccount(ctx, path)
		if err != nil {
			return "", err
		}

		symbol := domain.CurrencySymbol(account.Currency)

		s.currencyMu.Lock()
		s.currencies[path] = symbol
		s.currencyMu.Unlock()

		return symbol, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}
