package normalizing

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

// DefaultResultMarkers são os trechos de action_type que contam como resultado
// (conversas iniciadas por mensagem) quando a linha não traz o campo results.
var DefaultResultMarkers = []string{
	"onsite_conversion.messaging_conversation_started_7d",
	"messaging_conversation_started",
	"conversation_started",
	"messaging_first_reply",
}

type MetricsNormalizer interface {
	Summarize(rows []domain.RawInsightRow) domain.MetricsRecord
	SummarizeDaily(rows []domain.RawInsightRow) []domain.DailyMetrics
}

type Normalizer struct {
	markers []string
}

// New cria um normalizador com a lista de marcadores informada.
// Uma lista vazia usa DefaultResultMarkers.
func New(markers []string) *Normalizer {
	cleaned := lo.Uniq(lo.FilterMap(markers, func(m string, _ int) (string, bool) {
		m = strings.ToLower(strings.TrimSpace(m))
		return m, m != ""
	}))
	if len(cleaned) == 0 {
		cleaned = DefaultResultMarkers
	}

	return &Normalizer{markers: cleaned}
}

// Markers devolve os marcadores em uso
func (n *Normalizer) Markers() []string {
	return append([]string(nil), n.markers...)
}

// Summarize reduz as linhas a um único MetricsRecord.
// Um campo results numérico na linha tem precedência sobre as ações, mesmo quando é zero.
func (n *Normalizer) Summarize(rows []domain.RawInsightRow) domain.MetricsRecord {
	var spend, clicks, impressions, results float64

	for _, row := range rows {
		spend += nonNegative(row.Spend)
		clicks += nonNegative(row.Clicks)
		impressions += nonNegative(row.Impressions)

		if row.Results.Valid {
			results += nonNegative(row.Results)
			continue
		}

		for _, action := range row.Actions {
			if n.isResult(action.ActionType) {
				results += nonNegative(action.Value)
			}
		}
	}

	record := domain.MetricsRecord{
		Spend:       spend,
		Clicks:      int64(clicks),
		Impressions: int64(impressions),
		Results:     results,
	}

	if record.Impressions > 0 {
		record.CTR = float64(record.Clicks) / float64(record.Impressions) * 100
		record.CPM = spend / float64(record.Impressions) * 1000
	}
	if results > 0 {
		record.CostPerResult = spend / results
	}

	return record
}

// SummarizeDaily agrupa as linhas por date_start e normaliza cada dia, em ordem crescente de data.
// Linhas sem data são ignoradas.
func (n *Normalizer) SummarizeDaily(rows []domain.RawInsightRow) []domain.DailyMetrics {
	byDate := lo.GroupBy(
		lo.Filter(rows, func(r domain.RawInsightRow, _ int) bool { return r.DateStart != "" }),
		func(r domain.RawInsightRow) string { return r.DateStart },
	)

	dates := lo.Keys(byDate)
	sort.Strings(dates)

	daily := make([]domain.DailyMetrics, 0, len(dates))
	for _, date := range dates {
		daily = append(daily, domain.DailyMetrics{
			Date:          date,
			MetricsRecord: n.Summarize(byDate[date]),
		})
	}

	return daily
}

func (n *Normalizer) isResult(actionType string) bool {
	actionType = strings.ToLower(actionType)
	for _, marker := range n.markers {
		if strings.Contains(actionType, marker) {
			return true
		}
	}
	return false
}

func nonNegative(m domain.Metric) float64 {
	if !m.Valid || m.Value < 0 {
		return 0
	}
	return m.Value
}
