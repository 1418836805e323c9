package handler

import (
	"fmt"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: failed to encode response")
	}
}

// parseRange lê preset, since e until da query. Com since ou until o período é
// customizado; sem nada, vale today.
func parseRange(r *http.Request) (domain.RangeSelection, error) {
	query := r.URL.Query()
	since, until := query.Get("since"), query.Get("until")

	var rng domain.RangeSelection
	switch {
	case since != "" || until != "":
		rng = domain.CustomRange(since, until)
	case query.Get("preset") != "":
		rng = domain.Preset(domain.RangePreset(query.Get("preset")))
	default:
		rng = domain.Preset(domain.PresetToday)
	}

	if err := rng.Validate(); err != nil {
		return domain.RangeSelection{}, err
	}
	return rng, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("parâmetro %s inválido: %q", key, raw)
	}
	return v, nil
}
