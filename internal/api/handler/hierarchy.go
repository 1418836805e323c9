package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-dashboard-api/pkg/log"
)

type hierarchyResponse struct {
	Range domain.RangeSelection   `json:"range"`
	Items []*domain.HierarchyNode `json:"items"`
}

// GetAccountCampaigns lista as campanhas ativas da conta com os totais do período.
// unfiltered=true mantém as campanhas sem gasto e sem resultado.
func GetAccountCampaigns(loader loading.HierarchyLoader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		rng, err := parseRange(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Warn("campaigns: invalid range parameters")
			apiErrors.WriteFromError(w, err)
			return
		}

		unfiltered, _ := strconv.ParseBool(r.URL.Query().Get("unfiltered"))

		campaigns, err := loader.LoadCampaigns(r.Context(), []string{id}, rng, loading.Options{Unfiltered: unfiltered})
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"range":      rng.String(),
				"error":      err.Error(),
			}).Error("campaigns: failed to load campaigns")
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, hierarchyResponse{Range: rng, Items: campaigns})
	})
}

// GetCampaignAds lista os anúncios da campanha, limitados ao teto configurado
func GetCampaignAds(loader loading.HierarchyLoader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		rng, err := parseRange(r)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		ads, err := loader.LoadAdTree(r.Context(), id, rng)
		if err != nil {
			logger.WithFields(log.Fields{
				"campaign_id": id,
				"error":       err.Error(),
			}).Error("ads: failed to load ad tree")
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, hierarchyResponse{Range: rng, Items: ads})
	})
}
