package metadomain

import (
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

// Action é um par action_type/value; a Graph API envia o valor como string
type Action struct {
	ActionType string        `json:"action_type"`
	Value      domain.Metric `json:"value"`
}

// InsightRow é uma linha de /{id}/insights
type InsightRow struct {
	Spend       domain.Metric `json:"spend"`
	Clicks      domain.Metric `json:"clicks"`
	Impressions domain.Metric `json:"impressions"`
	Actions     []Action      `json:"actions"`
	DateStart   string        `json:"date_start"`
	DateStop    string        `json:"date_stop"`
}

// ToRaw converte a linha para o formato consumido pelo normalizador
func (r InsightRow) ToRaw() domain.RawInsightRow {
	raw := domain.RawInsightRow{
		Spend:       r.Spend,
		Clicks:      r.Clicks,
		Impressions: r.Impressions,
		DateStart:   r.DateStart,
		DateStop:    r.DateStop,
	}
	for _, a := range r.Actions {
		raw.Actions = append(raw.Actions, domain.ActionRecord{ActionType: a.ActionType, Value: a.Value})
	}
	return raw
}
