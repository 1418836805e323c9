package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/overview"
	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-dashboard-api/pkg/log"
)

// OverviewCache é o último resumo calculado pelo agendador
type OverviewCache interface {
	Latest() ([]domain.ClientOverview, time.Time, bool)
	Range() domain.RangeSelection
}

type overviewResponse struct {
	Range      domain.RangeSelection   `json:"range"`
	Clients    []domain.ClientOverview `json:"clients"`
	ComputedAt time.Time               `json:"computed_at"`
	Cached     bool                    `json:"cached"`
}

func ListClients(service overview.Overviewer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.ListClients())
	})
}

// GetOverview devolve o resumo dos clientes. Quando o período pedido é o mesmo do
// agendador e já existe um cálculo, o resultado guardado é usado.
func GetOverview(service overview.Overviewer, cache OverviewCache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rng, err := parseRange(r)
		if err != nil {
			logger.WithError(err).Warn("overview: invalid range parameters")
			apiErrors.WriteFromError(w, err)
			return
		}

		if clientID := r.URL.Query().Get("client"); clientID != "" {
			item, err := service.GetClientOverview(r.Context(), clientID, rng)
			if err != nil {
				logger.WithFields(log.Fields{
					"client_id": clientID,
					"error":     err.Error(),
				}).Warn("overview: failed to compute client overview")
				apiErrors.WriteFromError(w, err)
				return
			}
			writeJSON(w, r, http.StatusOK, overviewResponse{Range: rng, Clients: []domain.ClientOverview{*item}, ComputedAt: time.Now()})
			return
		}

		if cache != nil && cache.Range() == rng {
			if items, at, ok := cache.Latest(); ok {
				writeJSON(w, r, http.StatusOK, overviewResponse{Range: rng, Clients: items, ComputedAt: at, Cached: true})
				return
			}
		}

		items, err := service.GetOverview(r.Context(), rng)
		if err != nil {
			logger.WithError(err).Error("overview: failed to compute overview")
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, overviewResponse{Range: rng, Clients: items, ComputedAt: time.Now()})
	})
}
