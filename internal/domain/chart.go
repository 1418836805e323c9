package domain

type ChartType string

const (
	ChartTypeLine ChartType = "line"
	ChartTypeBar  ChartType = "bar"
)

// Painéis de gráfico de uma campanha selecionada
const (
	PanelResults       = "results-by-day"
	PanelCostPerResult = "cost-per-result"
	PanelDailySpend    = "daily-spend"
)

// ChartDataset é a série única de um gráfico
type ChartDataset struct {
	Label       string    `json:"label"`
	Values      []float64 `json:"values"`
	Color       string    `json:"color"`
	FillEnabled bool      `json:"fill_enabled"`
}

// ChartDescriptor descreve um gráfico de forma independente de superfície:
// não carrega nenhum recurso de renderização.
type ChartDescriptor struct {
	ID       string       `json:"id"`
	Type     ChartType    `json:"type"`
	Title    string       `json:"title"`
	Currency string       `json:"currency"`
	Labels   []string     `json:"labels"`
	Dataset  ChartDataset `json:"dataset"`
}

// Clone faz uma cópia profunda, sem compartilhar slices
func (d ChartDescriptor) Clone() ChartDescriptor {
	out := d
	out.Labels = append([]string(nil), d.Labels...)
	out.Dataset.Values = append([]float64(nil), d.Dataset.Values...)
	return out
}
