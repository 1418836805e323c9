package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/overview"
	"github.com/vfg2006/campaign-dashboard-api/pkg/middleware"
)

var noStore = []func(http.Handler) http.Handler{middleware.NoStore()}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Overview(service overview.Overviewer, cache OverviewCache) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/clients",
			Method:  http.MethodGet,
			Handler: ListClients(service),
		},
		{
			Path:    "/v1/overview",
			Method:  http.MethodGet,
			Handler: GetOverview(service, cache),
		},
	}
}

func Hierarchy(loader loading.HierarchyLoader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/:id/campaigns",
			Method:  http.MethodGet,
			Handler: GetAccountCampaigns(loader),
		},
		{
			Path:    "/v1/campaigns/:id/ads",
			Method:  http.MethodGet,
			Handler: GetCampaignAds(loader),
		},
	}
}

func Sessions(registry *dashboard.Registry) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sessions",
			Method:      http.MethodPost,
			Handler:     CreateSession(registry),
			Middlewares: noStore,
		},
		{
			Path:        "/v1/sessions/:id",
			Method:      http.MethodGet,
			Handler:     GetSession(registry),
			Middlewares: noStore,
		},
		{
			Path:        "/v1/sessions/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteSession(registry),
			Middlewares: noStore,
		},
		{
			Path:        "/v1/sessions/:id/events",
			Method:      http.MethodPost,
			Handler:     PostSessionEvent(registry),
			Middlewares: noStore,
		},
		{
			Path:        "/v1/sessions/:id/charts/:panel",
			Method:      http.MethodGet,
			Handler:     GetSessionChart(registry),
			Middlewares: noStore,
		},
		{
			Path:        "/v1/sessions/:id/charts/:panel/png",
			Method:      http.MethodGet,
			Handler:     GetSessionChartPNG(registry),
			Middlewares: noStore,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
