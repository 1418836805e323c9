package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/charting"
	insightmocks "github.com/vfg2006/campaign-dashboard-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/loading/mocks"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/ranking"
	"go.uber.org/mock/gomock"
)

func newTestSession(t *testing.T) (*Session, *mocks.MockHierarchyLoader) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockHierarchyLoader(ctrl)
	currency := insightmocks.NewMockCurrencySource(ctrl)
	currency.EXPECT().GetAccountCurrency(gomock.Any(), gomock.Any()).Return("R$", nil).AnyTimes()

	return NewSession("s1", Dependencies{
		Loader:   loader,
		Currency: currency,
		Ranking:  ranking.NewRankingEngine(),
		Rebinder: charting.NewRebinder(time.Millisecond, 2),
	}), loader
}

func campaign(id string, spend, results float64) *domain.HierarchyNode {
	m := domain.MetricsRecord{Spend: spend, Results: results}
	if results > 0 {
		m.CostPerResult = spend / results
	}
	return &domain.HierarchyNode{ID: id, Name: id, Kind: domain.NodeKindCampaign, Metrics: m}
}

// allowComparison aceita as buscas de hoje e ontem feitas na seleção de campanha
func allowComparison(loader *mocks.MockHierarchyLoader) {
	loader.EXPECT().LoadTotals(gomock.Any(), domain.NodeKindCampaign, gomock.Any(), gomock.Any()).
		Return(domain.MetricsRecord{}, nil).AnyTimes()
}

var testDaily = []domain.DailyMetrics{
	{Date: "2024-05-01", MetricsRecord: domain.MetricsRecord{Spend: 10, Results: 2, CostPerResult: 5}},
	{Date: "2024-05-02", MetricsRecord: domain.MetricsRecord{Spend: 6, Results: 3, CostPerResult: 2}},
}

func TestSession_AccountsAndRange(t *testing.T) {
	ctx := context.Background()
	session, loader := newTestSession(t)

	today := domain.Preset(domain.PresetToday)
	last7 := domain.Preset(domain.PresetLast7)

	loader.EXPECT().LoadCampaigns(gomock.Any(), []string{"1", "2"}, today, loading.Options{}).
		Return([]*domain.HierarchyNode{campaign("a", 10, 1)}, nil)
	loader.EXPECT().LoadCampaigns(gomock.Any(), []string{"1", "2"}, last7, loading.Options{}).
		Return([]*domain.HierarchyNode{campaign("b", 20, 4)}, nil)

	snap, err := session.Handle(ctx, AccountsSelected{AccountIDs: []string{"1", "2", "1"}})
	require.NoError(t, err)
	assert.Equal(t, "R$", snap.Currency)
	assert.Equal(t, []string{"1", "2"}, snap.AccountIDs)
	require.Len(t, snap.Campaigns, 1)
	assert.Equal(t, "a", snap.Campaigns[0].ID)
	assert.Equal(t, uint64(1), snap.Generation)

	snap, err = session.Handle(ctx, RangeChanged{Range: last7})
	require.NoError(t, err)
	assert.Equal(t, last7, snap.Range)
	require.Len(t, snap.Campaigns, 1)
	assert.Equal(t, "b", snap.Campaigns[0].ID)
	assert.Equal(t, uint64(2), snap.Generation)
}

func TestSession_InvalidRangeKeepsState(t *testing.T) {
	session, _ := newTestSession(t)

	_, err := session.Handle(context.Background(), RangeChanged{Range: domain.CustomRange("2024-05-02", "2024-05-01")})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	assert.Equal(t, domain.Preset(domain.PresetToday), session.Snapshot().Range)
	assert.Equal(t, uint64(0), session.Snapshot().Generation)
}

func TestSession_LoadErrorIsReturned(t *testing.T) {
	session, loader := newTestSession(t)
	loadErr := &domain.LoadError{Operation: "listCampaigns", Err: errors.New("boom")}
	loader.EXPECT().LoadCampaigns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, loadErr)

	_, err := session.Handle(context.Background(), AccountsSelected{AccountIDs: []string{"1"}})

	var target *domain.LoadError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, []string{"1"}, session.Snapshot().AccountIDs)
	assert.Empty(t, session.Snapshot().Campaigns)
}

func TestSession_StaleGenerationIsDiscarded(t *testing.T) {
	ctx := context.Background()
	session, loader := newTestSession(t)

	yesterday := domain.Preset(domain.PresetYesterday)
	last7 := domain.Preset(domain.PresetLast7)

	session.state.AccountIDs = []string{"1"}

	started := make(chan struct{})
	release := make(chan struct{})

	loader.EXPECT().LoadCampaigns(gomock.Any(), []string{"1"}, yesterday, gomock.Any()).
		DoAndReturn(func(context.Context, []string, domain.RangeSelection, loading.Options) ([]*domain.HierarchyNode, error) {
			close(started)
			<-release
			return []*domain.HierarchyNode{campaign("old", 1, 1)}, nil
		})
	loader.EXPECT().LoadCampaigns(gomock.Any(), []string{"1"}, last7, gomock.Any()).
		Return([]*domain.HierarchyNode{campaign("new", 2, 2)}, nil)

	var (
		wg       sync.WaitGroup
		slowSnap Snapshot
		slowErr  error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowSnap, slowErr = session.Handle(ctx, RangeChanged{Range: yesterday})
	}()

	<-started
	_, err := session.Handle(ctx, RangeChanged{Range: last7})
	require.NoError(t, err)

	close(release)
	wg.Wait()

	require.NoError(t, slowErr)
	require.Len(t, slowSnap.Campaigns, 1)
	assert.Equal(t, "new", slowSnap.Campaigns[0].ID)

	final := session.Snapshot()
	assert.Equal(t, last7, final.Range)
	assert.Equal(t, "new", final.Campaigns[0].ID)
}

func TestSession_StaleLoadFailureIsDiscarded(t *testing.T) {
	ctx := context.Background()
	session, loader := newTestSession(t)

	yesterday := domain.Preset(domain.PresetYesterday)
	last7 := domain.Preset(domain.PresetLast7)

	session.state.AccountIDs = []string{"1"}

	started := make(chan struct{})
	release := make(chan struct{})

	loader.EXPECT().LoadCampaigns(gomock.Any(), []string{"1"}, yesterday, gomock.Any()).
		DoAndReturn(func(context.Context, []string, domain.RangeSelection, loading.Options) ([]*domain.HierarchyNode, error) {
			close(started)
			<-release
			return nil, &domain.LoadError{Operation: "listCampaigns", Err: errors.New("timeout")}
		})
	loader.EXPECT().LoadCampaigns(gomock.Any(), []string{"1"}, last7, gomock.Any()).
		Return([]*domain.HierarchyNode{campaign("new", 2, 2)}, nil)

	var (
		wg       sync.WaitGroup
		slowSnap Snapshot
		slowErr  error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowSnap, slowErr = session.Handle(ctx, RangeChanged{Range: yesterday})
	}()

	<-started
	_, err := session.Handle(ctx, RangeChanged{Range: last7})
	require.NoError(t, err)

	close(release)
	wg.Wait()

	require.NoError(t, slowErr)
	assert.Equal(t, last7, slowSnap.Range)

	final := session.Snapshot()
	assert.Equal(t, last7, final.Range)
	require.Len(t, final.Campaigns, 1)
	assert.Equal(t, "new", final.Campaigns[0].ID)
}

func TestSession_StaleCampaignFailureIsDiscarded(t *testing.T) {
	ctx := context.Background()
	session, loader := newTestSession(t)
	session.state.Campaigns = []*domain.HierarchyNode{campaign("a", 10, 1), campaign("b", 5, 1)}

	started := make(chan struct{})
	release := make(chan struct{})

	allowComparison(loader)
	loader.EXPECT().LoadDaily(gomock.Any(), domain.NodeKindCampaign, "a", gomock.Any()).
		DoAndReturn(func(context.Context, domain.NodeKind, string, domain.RangeSelection) ([]domain.DailyMetrics, error) {
			close(started)
			<-release
			return nil, errors.New("timeout")
		})
	loader.EXPECT().LoadDaily(gomock.Any(), domain.NodeKindCampaign, "b", gomock.Any()).Return(testDaily, nil)

	var (
		wg      sync.WaitGroup
		slowErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = session.Handle(ctx, CampaignSelected{CampaignID: "a"})
	}()

	<-started
	_, err := session.Handle(ctx, CampaignSelected{CampaignID: "b"})
	require.NoError(t, err)

	close(release)
	wg.Wait()

	require.NoError(t, slowErr)
	assert.Equal(t, "b", session.Snapshot().SelectedCampaign)
	assert.Len(t, session.Snapshot().Charts, 3)
}

func TestSession_CurrentCampaignFailureIsReturned(t *testing.T) {
	session, loader := newTestSession(t)
	session.state.Campaigns = []*domain.HierarchyNode{campaign("a", 10, 1)}

	allowComparison(loader)
	loader.EXPECT().LoadDaily(gomock.Any(), gomock.Any(), "a", gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := session.Handle(context.Background(), CampaignSelected{CampaignID: "a"})
	assert.EqualError(t, err, "timeout")
}

func TestSession_ComparisonFailureKeepsSelection(t *testing.T) {
	session, loader := newTestSession(t)
	session.state.Campaigns = []*domain.HierarchyNode{campaign("a", 10, 1)}

	loader.EXPECT().LoadDaily(gomock.Any(), gomock.Any(), "a", gomock.Any()).Return(testDaily, nil)
	loader.EXPECT().LoadTotals(gomock.Any(), gomock.Any(), "a", domain.Preset(domain.PresetToday)).
		Return(domain.MetricsRecord{Spend: 3}, nil)
	loader.EXPECT().LoadTotals(gomock.Any(), gomock.Any(), "a", domain.Preset(domain.PresetYesterday)).
		Return(domain.MetricsRecord{}, errors.New("500"))

	snap, err := session.Handle(context.Background(), CampaignSelected{CampaignID: "a"})
	require.NoError(t, err)
	assert.Equal(t, "a", snap.SelectedCampaign)
	assert.Len(t, snap.Charts, 3)
	assert.Nil(t, snap.Comparison)
}

func TestSession_CampaignSelected(t *testing.T) {
	ctx := context.Background()
	session, loader := newTestSession(t)
	rng := domain.Preset(domain.PresetToday)

	session.state.Currency = "S/"
	session.state.Campaigns = []*domain.HierarchyNode{
		campaign("a", 100, 10), // CPR 10
		campaign("b", 50, 5),   // CPR 10
		campaign("c", 30, 0),   // sem resultado
		campaign("d", 40, 20),  // CPR 2
	}

	loader.EXPECT().LoadDaily(gomock.Any(), domain.NodeKindCampaign, "b", rng).Return(testDaily, nil)
	loader.EXPECT().LoadTotals(gomock.Any(), domain.NodeKindCampaign, "b", domain.Preset(domain.PresetToday)).
		Return(domain.MetricsRecord{Spend: 30, Results: 6, CostPerResult: 5}, nil)
	loader.EXPECT().LoadTotals(gomock.Any(), domain.NodeKindCampaign, "b", domain.Preset(domain.PresetYesterday)).
		Return(domain.MetricsRecord{}, nil)

	snap, err := session.Handle(ctx, CampaignSelected{CampaignID: "b"})
	require.NoError(t, err)

	require.NotNil(t, snap.Comparison)
	assert.Equal(t, 30.0, snap.Comparison.Today.Spend)
	assert.Equal(t, 100.0, snap.Comparison.SpendChange, "ontem sem gasto")
	assert.Equal(t, 100.0, snap.Comparison.ResultsChange)

	assert.Equal(t, "b", snap.SelectedCampaign)
	require.Len(t, snap.Charts, 3)
	assert.Equal(t, domain.PanelDailySpend, snap.Charts[1].ID)
	assert.Equal(t, "Gasto diário (S/)", snap.Charts[1].Title)

	require.Len(t, snap.Rankings, 2)
	results := snap.Rankings[0]
	assert.Equal(t, MetricResults, results.Metric)
	assert.Equal(t, 3, results.Result.Rank)
	assert.Equal(t, 4, results.Result.Total)
	assert.Len(t, results.Podium, 3)

	costs := snap.Rankings[1]
	assert.Equal(t, MetricCostPerResult, costs.Metric)
	assert.Equal(t, 3, costs.Result.Total, "campanha sem resultado fica fora do ranking de custo")
	assert.Equal(t, 3, costs.Result.Rank)
	assert.Equal(t, "d", costs.Podium[0].ID)

	assert.True(t, session.gate.Armed(TopAdsContainer))
}

func TestSession_TopAdsLoadOnlyWhenVisible(t *testing.T) {
	ctx := context.Background()
	session, loader := newTestSession(t)
	rng := domain.Preset(domain.PresetToday)
	session.state.Campaigns = []*domain.HierarchyNode{campaign("a", 10, 1)}

	loader.EXPECT().LoadDaily(gomock.Any(), gomock.Any(), "a", rng).Return(testDaily, nil)
	allowComparison(loader)
	loader.EXPECT().LoadAdTree(gomock.Any(), "a", rng).
		Return([]*domain.HierarchyNode{{ID: "ad1", Kind: domain.NodeKindAd}}, nil).Times(1)

	_, err := session.Handle(ctx, CampaignSelected{CampaignID: "a"})
	require.NoError(t, err)

	snap, err := session.Handle(ctx, PanelVisibility{Container: TopAdsContainer, Ratio: 0.05})
	require.NoError(t, err)
	assert.False(t, snap.AdsLoaded)

	snap, err = session.Handle(ctx, PanelVisibility{Container: TopAdsContainer, Ratio: 0.5})
	require.NoError(t, err)
	assert.True(t, snap.AdsLoaded)
	require.Len(t, snap.Ads, 1)

	// Disparo único
	_, err = session.Handle(ctx, PanelVisibility{Container: TopAdsContainer, Ratio: 1})
	require.NoError(t, err)
}

func TestSession_ReselectDropsPreviousAdsCallback(t *testing.T) {
	ctx := context.Background()
	session, loader := newTestSession(t)
	rng := domain.Preset(domain.PresetToday)
	session.state.Campaigns = []*domain.HierarchyNode{campaign("a", 10, 1), campaign("b", 5, 1)}

	loader.EXPECT().LoadDaily(gomock.Any(), gomock.Any(), gomock.Any(), rng).Return(testDaily, nil).Times(2)
	allowComparison(loader)
	loader.EXPECT().LoadAdTree(gomock.Any(), "b", rng).Return(nil, nil).Times(1)

	_, err := session.Handle(ctx, CampaignSelected{CampaignID: "a"})
	require.NoError(t, err)
	_, err = session.Handle(ctx, CampaignSelected{CampaignID: "b"})
	require.NoError(t, err)

	_, err = session.Handle(ctx, PanelVisibility{Container: TopAdsContainer, Ratio: 0.2})
	require.NoError(t, err)
}

func TestSession_Modal(t *testing.T) {
	ctx := context.Background()
	session, loader := newTestSession(t)
	session.state.Campaigns = []*domain.HierarchyNode{campaign("a", 10, 1)}
	loader.EXPECT().LoadDaily(gomock.Any(), gomock.Any(), "a", gomock.Any()).Return(testDaily, nil)
	allowComparison(loader)

	_, err := session.Handle(ctx, CampaignSelected{CampaignID: "a"})
	require.NoError(t, err)

	snap, err := session.Handle(ctx, ModalOpened{
		PanelID: domain.PanelResults,
		Surface: charting.ViewportSurface{SurfaceID: "modal", Width: 800, Height: 400},
	})
	require.NoError(t, err)
	require.NotNil(t, snap.Modal)
	assert.Equal(t, "modal", snap.Modal.SurfaceID)
	require.NotNil(t, snap.Modal.Dataset.Fill)
	assert.Equal(t, "modal", snap.Modal.Dataset.Fill.SurfaceID)
	assert.Equal(t, 400.0, snap.Modal.Dataset.Fill.Y1)

	snap, err = session.Handle(ctx, ModalClosed{})
	require.NoError(t, err)
	assert.Nil(t, snap.Modal)

	_, err = session.Handle(ctx, ModalOpened{PanelID: "nope", Surface: charting.ViewportSurface{SurfaceID: "modal", Width: 1, Height: 1}})
	assert.ErrorIs(t, err, domain.ErrChartNotFound)

	_, err = session.Handle(ctx, ModalOpened{PanelID: domain.PanelResults, Surface: charting.ViewportSurface{SurfaceID: "modal"}})
	assert.ErrorIs(t, err, domain.ErrSurfaceNotReady)
}

func TestSession_RangeChangeClearsSelection(t *testing.T) {
	ctx := context.Background()
	session, loader := newTestSession(t)
	session.state.AccountIDs = []string{"1"}
	session.state.Campaigns = []*domain.HierarchyNode{campaign("a", 10, 1)}

	loader.EXPECT().LoadDaily(gomock.Any(), gomock.Any(), "a", gomock.Any()).Return(testDaily, nil)
	allowComparison(loader)
	loader.EXPECT().LoadCampaigns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	snap, err := session.Handle(ctx, CampaignSelected{CampaignID: "a"})
	require.NoError(t, err)
	require.NotNil(t, snap.Comparison)

	snap, err = session.Handle(ctx, RangeChanged{Range: domain.Preset(domain.PresetYesterday)})
	require.NoError(t, err)
	assert.Empty(t, snap.SelectedCampaign)
	assert.Nil(t, snap.Comparison)
	assert.Empty(t, snap.Charts)
	assert.Empty(t, snap.Rankings)
	assert.False(t, session.gate.Armed(TopAdsContainer))

	_, err = session.Chart(domain.PanelResults)
	assert.ErrorIs(t, err, domain.ErrChartNotFound)
}

func TestEventPayload_ToEvent(t *testing.T) {
	rng := domain.Preset(domain.PresetLast7)

	tests := []struct {
		name    string
		payload EventPayload
		want    Event
		wantErr bool
	}{
		{"contas", EventPayload{Type: "accounts_selected", AccountIDs: []string{"1"}}, AccountsSelected{AccountIDs: []string{"1"}}, false},
		{"período", EventPayload{Type: "range_changed", Range: &rng}, RangeChanged{Range: rng}, false},
		{"período ausente", EventPayload{Type: "range_changed"}, nil, true},
		{"campanha", EventPayload{Type: "campaign_selected", CampaignID: "c"}, CampaignSelected{CampaignID: "c"}, false},
		{"campanha sem id", EventPayload{Type: "campaign_selected"}, nil, true},
		{"visibilidade", EventPayload{Type: "panel_visibility", Container: "top-ads", Ratio: 0.3}, PanelVisibility{Container: "top-ads", Ratio: 0.3}, false},
		{
			"modal",
			EventPayload{Type: "modal_opened", PanelID: "daily-spend", Width: 10, Height: 20},
			ModalOpened{PanelID: "daily-spend", Surface: charting.ViewportSurface{SurfaceID: "modal", Width: 10, Height: 20}},
			false,
		},
		{"fechar modal", EventPayload{Type: "modal_closed"}, ModalClosed{}, false},
		{"desconhecido", EventPayload{Type: "zoom"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.payload.ToEvent()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
