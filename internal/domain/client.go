package domain

// Client é um cliente da agência com as contas de anúncio que o painel agrega
type Client struct {
	ID           string   `json:"client_id" mapstructure:"-"`
	Name         string   `json:"client_name" mapstructure:"client_name"`
	AdAccountIDs []string `json:"ad_account_ids" mapstructure:"ad_account_ids"`
}

// ClientOverview é o resumo de um cliente no período
type ClientOverview struct {
	ClientID       string  `json:"client_id"`
	ClientName     string  `json:"client_name"`
	Spend          float64 `json:"spend"`
	Results        float64 `json:"results"`
	CostPerResult  float64 `json:"cost_per_result"`
	FailedAccounts int     `json:"failed_accounts,omitempty"`
}
