package domain

import (
	"bytes"
	"strconv"
	"strings"
)

// Metric é um valor numérico bruto vindo da fonte de dados. A Graph API envia
// números como string ("12.34"), então aceitamos os dois formatos.
// Valores ausentes ou não numéricos ficam com Valid=false.
type Metric struct {
	Value float64
	Valid bool
}

// M cria um Metric válido
func M(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// ParseMetric interpreta uma string numérica, tolerando espaços
func ParseMetric(raw string) Metric {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Metric{}
	}
	return M(v)
}

// Or devolve o valor ou fallback quando ausente
func (m Metric) Or(fallback float64) float64 {
	if !m.Valid {
		return fallback
	}
	return m.Value
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = Metric{}
		return nil
	}

	if b[0] == '"' {
		unquoted, err := strconv.Unquote(string(b))
		if err != nil {
			*m = Metric{}
			return nil
		}
		*m = ParseMetric(unquoted)
		return nil
	}

	*m = ParseMetric(string(b))
	return nil
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(m.Value, 'f', -1, 64)), nil
}

// ActionRecord é uma contagem de ação atribuída a um tipo (ex.: início de conversa)
type ActionRecord struct {
	ActionType string `json:"action_type"`
	Value      Metric `json:"value"`
}

// RawInsightRow é uma linha de insight como devolvida pela fonte de dados
type RawInsightRow struct {
	Spend       Metric         `json:"spend"`
	Clicks      Metric         `json:"clicks"`
	Impressions Metric         `json:"impressions"`
	Results     Metric         `json:"results"`
	Actions     []ActionRecord `json:"actions,omitempty"`
	DateStart   string         `json:"date_start,omitempty"`
	DateStop    string         `json:"date_stop,omitempty"`
}

// MetricsRecord é o resumo normalizado de uma entidade
type MetricsRecord struct {
	Spend         float64 `json:"spend"`
	Clicks        int64   `json:"clicks"`
	Impressions   int64   `json:"impressions"`
	CTR           float64 `json:"ctr"`
	CPM           float64 `json:"cpm"`
	Results       float64 `json:"results"`
	CostPerResult float64 `json:"cost_per_result"`
}

// IsInactive indica se a entidade não teve gasto nem resultado no período
func (m MetricsRecord) IsInactive() bool {
	return m.Spend == 0 && m.Results == 0
}

// DailyMetrics é o resumo de um único dia da série diária
type DailyMetrics struct {
	Date string `json:"date"`
	MetricsRecord
}

// MetricsComparison compara o dia de hoje com o de ontem. As variações são
// percentuais sobre o valor de ontem.
type MetricsComparison struct {
	Today               MetricsRecord `json:"today"`
	Yesterday           MetricsRecord `json:"yesterday"`
	ResultsChange       float64       `json:"results_change"`
	CostPerResultChange float64       `json:"cost_per_result_change"`
	SpendChange         float64       `json:"spend_change"`
}
