package insighting

import (
	"context"

	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

// DataSource define as quatro leituras que o agregador faz na fonte remota
type DataSource interface {
	// ListCampaigns lista as campanhas de uma conta de anúncios
	ListCampaigns(ctx context.Context, accountID string, rng domain.RangeSelection) ([]domain.EntityRef, error)

	// ListAdSets lista os conjuntos de anúncios de uma campanha
	ListAdSets(ctx context.Context, campaignID string) ([]domain.EntityRef, error)

	// ListAds lista os anúncios de um conjunto, com a miniatura do criativo
	ListAds(ctx context.Context, adSetID string) ([]domain.EntityRef, error)

	// GetInsights obtém as linhas brutas de insight de uma entidade no período
	GetInsights(ctx context.Context, kind domain.NodeKind, entityID string, rng domain.RangeSelection, granularity domain.Granularity) ([]domain.RawInsightRow, error)
}

// CurrencySource resolve o símbolo da moeda de uma conta de anúncios
type CurrencySource interface {
	GetAccountCurrency(ctx context.Context, accountID string) (string, error)
}

// Source é a fonte completa usada pelo painel
type Source interface {
	DataSource
	CurrencySource
}
