package loading

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/campaign-dashboard-api/pkg/limiter"
	"go.uber.org/mock/gomock"
)

func newTestLoader(source *mocks.MockDataSource, ceiling int) *Loader {
	return NewLoader(source, limiter.New(2), normalizing.New(nil), ceiling)
}

func TestLoader_LoadCampaigns(t *testing.T) {
	ctx := context.Background()
	rng := domain.Preset(domain.PresetLast7)

	tests := []struct {
		name     string
		accounts []string
		opts     Options
		setup    func(source *mocks.MockDataSource)
		expected []*domain.HierarchyNode
	}{
		{
			name:     "Soma das linhas de uma campanha",
			accounts: []string{"1"},
			setup: func(source *mocks.MockDataSource) {
				source.EXPECT().ListCampaigns(gomock.Any(), "1", rng).Return([]domain.EntityRef{{ID: "x", Name: "X"}}, nil)
				source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindCampaign, "x", rng, domain.GranularityTotal).
					Return([]domain.RawInsightRow{
						{Spend: domain.M(10), Results: domain.M(2)},
						{Spend: domain.M(5), Results: domain.M(0)},
					}, nil)
			},
			expected: []*domain.HierarchyNode{
				{
					ID:        "x",
					Name:      "X",
					Kind:      domain.NodeKindCampaign,
					AccountID: "1",
					Metrics:   domain.MetricsRecord{Spend: 15, Results: 2, CostPerResult: 7.5},
				},
			},
		},
		{
			name:     "Campanhas inativas são descartadas e o restante ordenado por gasto",
			accounts: []string{"1", "2"},
			setup: func(source *mocks.MockDataSource) {
				source.EXPECT().ListCampaigns(gomock.Any(), "1", rng).Return([]domain.EntityRef{{ID: "a"}, {ID: "b"}}, nil)
				source.EXPECT().ListCampaigns(gomock.Any(), "2", rng).Return([]domain.EntityRef{{ID: "c"}}, nil)
				source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindCampaign, "a", rng, domain.GranularityTotal).
					Return([]domain.RawInsightRow{{Spend: domain.M(5)}}, nil)
				source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindCampaign, "b", rng, domain.GranularityTotal).
					Return(nil, nil)
				source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindCampaign, "c", rng, domain.GranularityTotal).
					Return([]domain.RawInsightRow{{Spend: domain.M(20)}}, nil)
			},
			expected: []*domain.HierarchyNode{
				{ID: "c", Kind: domain.NodeKindCampaign, AccountID: "2", Metrics: domain.MetricsRecord{Spend: 20}},
				{ID: "a", Kind: domain.NodeKindCampaign, AccountID: "1", Metrics: domain.MetricsRecord{Spend: 5}},
			},
		},
		{
			name:     "Falha no insight zera a campanha sem abortar o lote",
			accounts: []string{"1"},
			opts:     Options{Unfiltered: true},
			setup: func(source *mocks.MockDataSource) {
				source.EXPECT().ListCampaigns(gomock.Any(), "1", rng).Return([]domain.EntityRef{{ID: "a"}, {ID: "b"}}, nil)
				source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindCampaign, "a", rng, domain.GranularityTotal).
					Return(nil, errors.New("timeout"))
				source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindCampaign, "b", rng, domain.GranularityTotal).
					Return([]domain.RawInsightRow{{Spend: domain.M(1)}}, nil)
			},
			expected: []*domain.HierarchyNode{
				{ID: "b", Kind: domain.NodeKindCampaign, AccountID: "1", Metrics: domain.MetricsRecord{Spend: 1}},
				{ID: "a", Kind: domain.NodeKindCampaign, AccountID: "1"},
			},
		},
		{
			name:     "Contas repetidas são consultadas uma vez",
			accounts: []string{"1", "1"},
			opts:     Options{Unfiltered: true},
			setup: func(source *mocks.MockDataSource) {
				source.EXPECT().ListCampaigns(gomock.Any(), "1", rng).Return(nil, nil).Times(1)
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mocks.NewMockDataSource(ctrl)
			tt.setup(source)

			nodes, err := newTestLoader(source, 0).LoadCampaigns(ctx, tt.accounts, rng, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, nodes)
		})
	}
}

func TestLoader_LoadCampaigns_ListFailureIsLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockDataSource(ctrl)
	rng := domain.Preset(domain.PresetToday)

	source.EXPECT().ListCampaigns(gomock.Any(), "1", rng).Return([]domain.EntityRef{{ID: "a"}}, nil)
	source.EXPECT().ListCampaigns(gomock.Any(), "2", rng).Return(nil, errors.New("conta bloqueada"))
	source.EXPECT().ListCampaigns(gomock.Any(), "3", rng).
		Return(nil, &domain.NetworkFailure{Operation: "listCampaigns", EntityID: "act_3", StatusCode: 500, Err: errors.New("boom")})

	nodes, err := newTestLoader(source, 0).LoadCampaigns(context.Background(), []string{"1", "2", "3"}, rng, Options{})
	assert.Nil(t, nodes)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "listCampaigns", loadErr.Operation)

	var failure *domain.NetworkFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "2", failure.EntityID)
	assert.Contains(t, err.Error(), "act_3")
}

func TestLoader_LoadCampaigns_InvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockDataSource(ctrl)

	_, err := newTestLoader(source, 0).LoadCampaigns(context.Background(), []string{"1"}, domain.CustomRange("2024-05-10", "2024-05-01"), Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestLoader_LoadAdTree(t *testing.T) {
	ctx := context.Background()
	rng := domain.Preset(domain.PresetYesterday)

	t.Run("Aplica o teto e ordena por gasto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockDataSource(ctrl)

		source.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.EntityRef{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}, nil)
		source.EXPECT().ListAds(gomock.Any(), "s1").Return([]domain.EntityRef{
			{ID: "ad1", ThumbnailURL: "https://cdn/1.jpg"},
			{ID: "ad2"},
		}, nil)
		source.EXPECT().ListAds(gomock.Any(), "s2").Return(nil, errors.New("falha"))
		source.EXPECT().ListAds(gomock.Any(), "s3").Return([]domain.EntityRef{{ID: "ad3"}, {ID: "ad4"}}, nil)

		// Teto de 3: ad4 fica de fora
		for i, id := range []string{"ad1", "ad2", "ad3"} {
			source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindAd, id, rng, domain.GranularityTotal).
				Return([]domain.RawInsightRow{{Spend: domain.M(float64(i + 1))}}, nil)
		}

		nodes, err := newTestLoader(source, 3).LoadAdTree(ctx, "c1", rng)
		require.NoError(t, err)
		require.Len(t, nodes, 3)

		ids := []string{nodes[0].ID, nodes[1].ID, nodes[2].ID}
		assert.Equal(t, []string{"ad3", "ad2", "ad1"}, ids)
		assert.Equal(t, "https://cdn/1.jpg", nodes[2].ThumbnailURL)
		assert.Equal(t, domain.NodeKindAd, nodes[0].Kind)
	})

	t.Run("Falha ao listar conjuntos é erro de carga", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockDataSource(ctrl)
		source.EXPECT().ListAdSets(gomock.Any(), "c1").Return(nil, errors.New("403"))

		_, err := newTestLoader(source, 0).LoadAdTree(ctx, "c1", rng)

		var loadErr *domain.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "listAdSets", loadErr.Operation)
	})

	t.Run("Teto padrão de doze anúncios", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockDataSource(ctrl)

		ads := make([]domain.EntityRef, 20)
		for i := range ads {
			ads[i] = domain.EntityRef{ID: fmt.Sprintf("ad%d", i)}
		}
		source.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.EntityRef{{ID: "s1"}}, nil)
		source.EXPECT().ListAds(gomock.Any(), "s1").Return(ads, nil)
		source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindAd, gomock.Any(), rng, domain.GranularityTotal).
			Return(nil, nil).Times(DefaultAdInsightsCeiling)

		nodes, err := newTestLoader(source, 0).LoadAdTree(ctx, "c1", rng)
		require.NoError(t, err)
		assert.Len(t, nodes, DefaultAdInsightsCeiling)
	})
}

func TestLoader_LoadDaily(t *testing.T) {
	ctx := context.Background()
	rng := domain.Preset(domain.PresetLast7)

	t.Run("Normaliza por dia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockDataSource(ctrl)
		source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindCampaign, "c1", rng, domain.GranularityDaily).
			Return([]domain.RawInsightRow{
				{DateStart: "2024-05-02", Spend: domain.M(4), Results: domain.M(2)},
				{DateStart: "2024-05-01", Spend: domain.M(3)},
			}, nil)

		daily, err := newTestLoader(source, 0).LoadDaily(ctx, domain.NodeKindCampaign, "c1", rng)
		require.NoError(t, err)
		require.Len(t, daily, 2)
		assert.Equal(t, "2024-05-01", daily[0].Date)
		assert.Equal(t, 2.0, daily[1].CostPerResult)
	})

	t.Run("Falha vira NetworkFailure com contexto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockDataSource(ctrl)
		source.EXPECT().GetInsights(gomock.Any(), gomock.Any(), "c1", gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := newTestLoader(source, 0).LoadDaily(ctx, domain.NodeKindCampaign, "c1", rng)

		var failure *domain.NetworkFailure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "getInsights", failure.Operation)
		assert.Equal(t, "c1", failure.EntityID)
	})
}

func TestLoader_CancelledContextIsNotAnEmptyResult(t *testing.T) {
	rng := domain.Preset(domain.PresetToday)

	t.Run("LoadCampaigns", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockDataSource(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		refs := []domain.EntityRef{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}, {ID: "c4"}, {ID: "c5"}}
		source.EXPECT().ListCampaigns(gomock.Any(), "1", rng).Return(refs, nil)

		// O cliente desiste durante a primeira busca de insights
		var once sync.Once
		source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindCampaign, gomock.Any(), rng, domain.GranularityTotal).
			DoAndReturn(func(context.Context, domain.NodeKind, string, domain.RangeSelection, domain.Granularity) ([]domain.RawInsightRow, error) {
				cancelled := false
				once.Do(func() {
					cancel()
					cancelled = true
				})
				if cancelled {
					return nil, context.Canceled
				}
				return []domain.RawInsightRow{{Spend: domain.M(10)}}, nil
			}).AnyTimes()

		nodes, err := newTestLoader(source, 0).LoadCampaigns(ctx, []string{"1"}, rng, Options{})
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, nodes)
	})

	t.Run("LoadAdTree", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockDataSource(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		source.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.EntityRef{{ID: "s1"}, {ID: "s2"}}, nil)
		source.EXPECT().ListAds(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string) ([]domain.EntityRef, error) {
				cancel()
				return nil, context.Canceled
			}).AnyTimes()

		nodes, err := newTestLoader(source, 0).LoadAdTree(ctx, "c1", rng)
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, nodes)
	})
}

func TestLoader_LoadTotals(t *testing.T) {
	ctx := context.Background()
	today := domain.Preset(domain.PresetToday)

	t.Run("Soma as linhas do período", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockDataSource(ctrl)
		source.EXPECT().GetInsights(gomock.Any(), domain.NodeKindCampaign, "c1", today, domain.GranularityTotal).
			Return([]domain.RawInsightRow{
				{Spend: domain.M(8), Results: domain.M(2)},
				{Spend: domain.M(4), Results: domain.M(1)},
			}, nil)

		totals, err := newTestLoader(source, 0).LoadTotals(ctx, domain.NodeKindCampaign, "c1", today)
		require.NoError(t, err)
		assert.Equal(t, 12.0, totals.Spend)
		assert.Equal(t, 3.0, totals.Results)
		assert.Equal(t, 4.0, totals.CostPerResult)
	})

	t.Run("Falha vira NetworkFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockDataSource(ctrl)
		source.EXPECT().GetInsights(gomock.Any(), gomock.Any(), "c1", gomock.Any(), gomock.Any()).Return(nil, errors.New("500"))

		_, err := newTestLoader(source, 0).LoadTotals(ctx, domain.NodeKindCampaign, "c1", today)

		var failure *domain.NetworkFailure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "getInsights", failure.Operation)
	})
}
