package normalizing

import "github.com/vfg2006/campaign-dashboard-api/internal/domain"

// Compare calcula a variação de resultados, custo por resultado e gasto de hoje
// em relação a ontem
func Compare(today, yesterday domain.MetricsRecord) domain.MetricsComparison {
	return domain.MetricsComparison{
		Today:               today,
		Yesterday:           yesterday,
		ResultsChange:       percentChange(today.Results, yesterday.Results),
		CostPerResultChange: percentChange(today.CostPerResult, yesterday.CostPerResult),
		SpendChange:         percentChange(today.Spend, yesterday.Spend),
	}
}

// percentChange sem base anterior vale 100 quando hoje há valor e 0 quando não há
func percentChange(current, previous float64) float64 {
	if previous <= 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
