package api

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-dashboard-api/internal/api/handler"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/charting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/dashboard"
	insightmocks "github.com/vfg2006/campaign-dashboard-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/loading"
	loadermocks "github.com/vfg2006/campaign-dashboard-api/internal/usecases/loading/mocks"
	overviewmocks "github.com/vfg2006/campaign-dashboard-api/internal/usecases/overview/mocks"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-dashboard-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeOverviewCache struct {
	rng    domain.RangeSelection
	items  []domain.ClientOverview
	at     time.Time
	synced bool
}

func (f fakeOverviewCache) Latest() ([]domain.ClientOverview, time.Time, bool) {
	return f.items, f.at, f.synced
}

func (f fakeOverviewCache) Range() domain.RangeSelection {
	return f.rng
}

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync() {
	f.triggered++
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"triggered": f.triggered}
}

type testEnv struct {
	handler  http.Handler
	loader   *loadermocks.MockHierarchyLoader
	overview *overviewmocks.MockOverviewer
	cronJob  *fakeCronJob
}

func newTestEnv(t *testing.T, cache handler.OverviewCache) testEnv {
	ctrl := gomock.NewController(t)
	loader := loadermocks.NewMockHierarchyLoader(ctrl)
	overviewer := overviewmocks.NewMockOverviewer(ctrl)
	currency := insightmocks.NewMockCurrencySource(ctrl)
	currency.EXPECT().GetAccountCurrency(gomock.Any(), gomock.Any()).Return("S/", nil).AnyTimes()

	registry := dashboard.NewRegistry(dashboard.Dependencies{
		Loader:              loader,
		Currency:            currency,
		Ranking:             ranking.NewRankingEngine(),
		Rebinder:            charting.NewRebinder(time.Millisecond, 2),
		VisibilityThreshold: 0.1,
	})

	job := &fakeCronJob{}
	cfg := &config.Config{Server: config.Server{AllowedOrigins: []string{"http://localhost:3000"}}}

	return testEnv{
		handler: NewHandler(cfg, Services{
			Loader:        loader,
			Overview:      overviewer,
			OverviewCache: cache,
			Sessions:      registry,
			CronJobs:      handler.CronJobServices{OverviewSyncService: job},
		}),
		loader:   loader,
		overview: overviewer,
		cronJob:  job,
	}
}

func (e testEnv) do(t *testing.T, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthcheckAndCorrelationID(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.CorrelationIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decodeError(t, rec).Code)
}

func TestCors(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/v1/clients", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/clients", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOverviewRoutes(t *testing.T) {
	today := domain.Preset(domain.PresetToday)
	cached := []domain.ClientOverview{{ClientID: "a", ClientName: "A", Spend: 10}}

	t.Run("Lista clientes", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.overview.EXPECT().ListClients().Return([]domain.Client{{ID: "a", Name: "A", AdAccountIDs: []string{"1"}}})

		rec := env.do(t, http.MethodGet, "/v1/clients", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var clients []domain.Client
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
		assert.Equal(t, "a", clients[0].ID)
	})

	t.Run("Usa o resumo do agendador quando o período coincide", func(t *testing.T) {
		env := newTestEnv(t, fakeOverviewCache{rng: today, items: cached, at: time.Now(), synced: true})

		rec := env.do(t, http.MethodGet, "/v1/overview", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"cached":true`)
	})

	t.Run("Outro período calcula na hora", func(t *testing.T) {
		env := newTestEnv(t, fakeOverviewCache{rng: today, items: cached, synced: true})
		env.overview.EXPECT().GetOverview(gomock.Any(), domain.Preset(domain.PresetYesterday)).Return(cached, nil)

		rec := env.do(t, http.MethodGet, "/v1/overview?preset=yesterday", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"cached":false`)
	})

	t.Run("Preset inválido", func(t *testing.T) {
		env := newTestEnv(t, nil)

		rec := env.do(t, http.MethodGet, "/v1/overview?preset=forever", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRange, decodeError(t, rec).Code)
	})

	t.Run("Cliente inexistente", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.overview.EXPECT().GetClientOverview(gomock.Any(), "x", today).
			Return(nil, fmt.Errorf("x: %w", domain.ErrClientNotFound))

		rec := env.do(t, http.MethodGet, "/v1/overview?client=x", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHierarchyRoutes(t *testing.T) {
	custom := domain.CustomRange("2024-05-01", "2024-05-07")

	t.Run("Campanhas da conta", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.loader.EXPECT().
			LoadCampaigns(gomock.Any(), []string{"123"}, custom, loading.Options{Unfiltered: true}).
			Return([]*domain.HierarchyNode{{ID: "c1", Kind: domain.NodeKindCampaign}}, nil)

		rec := env.do(t, http.MethodGet, "/v1/accounts/123/campaigns?since=2024-05-01&until=2024-05-07&unfiltered=true", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"c1"`)
	})

	t.Run("Falha ao listar vira 502", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.loader.EXPECT().
			LoadCampaigns(gomock.Any(), []string{"123"}, gomock.Any(), loading.Options{}).
			Return(nil, &domain.LoadError{Operation: "listCampaigns", Err: errors.New("boom")})

		rec := env.do(t, http.MethodGet, "/v1/accounts/123/campaigns", "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, apiErrors.ErrLoadFailure, decodeError(t, rec).Code)
	})

	t.Run("Anúncios da campanha", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.loader.EXPECT().
			LoadAdTree(gomock.Any(), "c1", domain.Preset(domain.PresetLast7)).
			Return([]*domain.HierarchyNode{{ID: "ad1", Kind: domain.NodeKindAd}}, nil)

		rec := env.do(t, http.MethodGet, "/v1/campaigns/c1/ads?preset=last7", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"ad1"`)
	})

	t.Run("Período invertido", func(t *testing.T) {
		env := newTestEnv(t, nil)

		rec := env.do(t, http.MethodGet, "/v1/campaigns/c1/ads?since=2024-05-07&until=2024-05-01", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type eventResponse struct {
	Snapshot dashboard.Snapshot  `json:"snapshot"`
	Error    *apiErrors.APIError `json:"error"`
}

func TestSessionFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	today := domain.Preset(domain.PresetToday)

	rec := env.do(t, http.MethodPost, "/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.NotEmpty(t, snap.SessionID)
	base := "/v1/sessions/" + snap.SessionID

	env.loader.EXPECT().LoadCampaigns(gomock.Any(), []string{"1"}, today, loading.Options{}).
		Return([]*domain.HierarchyNode{
			{ID: "c1", Name: "C1", Kind: domain.NodeKindCampaign, Metrics: domain.MetricsRecord{Spend: 10, Results: 2, CostPerResult: 5}},
			{ID: "c2", Name: "C2", Kind: domain.NodeKindCampaign, Metrics: domain.MetricsRecord{Spend: 5, Results: 0}},
		}, nil)

	rec = env.do(t, http.MethodPost, base+"/events", `{"type":"accounts_selected","account_ids":["1"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Error)
	assert.Equal(t, "S/", resp.Snapshot.Currency)
	assert.Len(t, resp.Snapshot.Campaigns, 2)

	env.loader.EXPECT().LoadDaily(gomock.Any(), domain.NodeKindCampaign, "c1", today).
		Return([]domain.DailyMetrics{
			{Date: "2024-05-01", MetricsRecord: domain.MetricsRecord{Spend: 4, Results: 1, CostPerResult: 4}},
			{Date: "2024-05-02", MetricsRecord: domain.MetricsRecord{Spend: 6, Results: 1, CostPerResult: 6}},
		}, nil)
	env.loader.EXPECT().LoadTotals(gomock.Any(), domain.NodeKindCampaign, "c1", today).
		Return(domain.MetricsRecord{Spend: 6, Results: 1, CostPerResult: 6}, nil)
	env.loader.EXPECT().LoadTotals(gomock.Any(), domain.NodeKindCampaign, "c1", domain.Preset(domain.PresetYesterday)).
		Return(domain.MetricsRecord{Spend: 4, Results: 1, CostPerResult: 4}, nil)

	rec = env.do(t, http.MethodPost, base+"/events", `{"type":"campaign_selected","campaign_id":"c1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = eventResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "c1", resp.Snapshot.SelectedCampaign)
	assert.Len(t, resp.Snapshot.Charts, 3)
	require.NotNil(t, resp.Snapshot.Comparison)
	assert.InDelta(t, 50.0, resp.Snapshot.Comparison.SpendChange, 1e-9)
	assert.InDelta(t, 50.0, resp.Snapshot.Comparison.CostPerResultChange, 1e-9)

	rec = env.do(t, http.MethodGet, base+"/charts/"+domain.PanelResults, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var desc domain.ChartDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
	assert.Equal(t, []float64{1, 1}, desc.Dataset.Values)

	rec = env.do(t, http.MethodGet, base+"/charts/"+domain.PanelDailySpend+"/png?width=300&height=200", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	cfg, err := png.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)

	rec = env.do(t, http.MethodPost, base+"/events", `{"type":"modal_opened","panel_id":"results-by-day","width":800,"height":400}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = eventResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Snapshot.Modal)
	require.NotNil(t, resp.Snapshot.Modal.Dataset.Fill)
	assert.Equal(t, 400.0, resp.Snapshot.Modal.Dataset.Fill.Y1)

	rec = env.do(t, http.MethodGet, base+"/charts/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionEventErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/v1/sessions/missing/events", `{"type":"modal_closed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/sessions", "")
	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	base := "/v1/sessions/" + snap.SessionID

	rec = env.do(t, http.MethodPost, base+"/events", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)

	rec = env.do(t, http.MethodPost, base+"/events", `{"type":"dance"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// falha ao listar campanhas devolve o erro junto com o estado
	env.loader.EXPECT().LoadCampaigns(gomock.Any(), []string{"9"}, gomock.Any(), gomock.Any()).
		Return(nil, &domain.LoadError{Operation: "listCampaigns", Err: errors.New("boom")})

	rec = env.do(t, http.MethodPost, base+"/events", `{"type":"accounts_selected","account_ids":["9"]}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, apiErrors.ErrLoadFailure, resp.Error.Code)
	assert.Equal(t, []string{"9"}, resp.Snapshot.AccountIDs)
}

func TestCronRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/v1/cron/overview/run", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.cronJob.triggered)

	rec = env.do(t, http.MethodPost, "/v1/cron/all/run", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, env.cronJob.triggered)

	rec = env.do(t, http.MethodPost, "/v1/cron/raw-cache-purge/run", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/cron/bogus/run", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/cron/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, float64(2), status["overview"]["triggered"])
	assert.NotContains(t, status, "raw-cache-purge")
}
