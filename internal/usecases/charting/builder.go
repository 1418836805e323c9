package charting

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

const (
	ResultsColor       = "#36A2EB"
	CostPerResultColor = "#E0E0E0"
	SpendColor         = "rgba(54, 162, 235, 0.7)"
)

// BuildCampaignCharts monta os três painéis da campanha selecionada a partir da série diária
func BuildCampaignCharts(daily []domain.DailyMetrics, currency string) []domain.ChartDescriptor {
	labels := lo.Map(daily, func(d domain.DailyMetrics, _ int) string { return dayLabel(d.Date) })
	symbol := strings.TrimSpace(currency)

	results := lo.Map(daily, func(d domain.DailyMetrics, _ int) float64 { return d.Results })
	costs := lo.Map(daily, func(d domain.DailyMetrics, _ int) float64 { return d.CostPerResult })
	spend := lo.Map(daily, func(d domain.DailyMetrics, _ int) float64 { return d.Spend })

	return []domain.ChartDescriptor{
		{
			ID:       domain.PanelResults,
			Type:     domain.ChartTypeLine,
			Title:    "Resultados por dia",
			Currency: currency,
			Labels:   labels,
			Dataset: domain.ChartDataset{
				Label:       "Resultados",
				Values:      results,
				Color:       ResultsColor,
				FillEnabled: true,
			},
		},
		{
			ID:       domain.PanelCostPerResult,
			Type:     domain.ChartTypeLine,
			Title:    fmt.Sprintf("Custo por resultado (%s)", symbol),
			Currency: currency,
			Labels:   append([]string(nil), labels...),
			Dataset: domain.ChartDataset{
				Label:  "Custo por resultado",
				Values: costs,
				Color:  CostPerResultColor,
			},
		},
		{
			ID:       domain.PanelDailySpend,
			Type:     domain.ChartTypeBar,
			Title:    fmt.Sprintf("Gasto diário (%s)", symbol),
			Currency: currency,
			Labels:   append([]string(nil), labels...),
			Dataset: domain.ChartDataset{
				Label:  "Gasto",
				Values: spend,
				Color:  SpendColor,
			},
		},
	}
}

func dayLabel(date string) string {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return d.Format("02/01")
}
