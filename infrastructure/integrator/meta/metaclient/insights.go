package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	metadomain "github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

// GetInsights lê /{id}/insights com os parâmetros de período e nível já montados
func (c *MetaClient) GetInsights(ctx context.Context, entityID string, params url.Values) ([]metadomain.InsightRow, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("fields", "spend,clicks,impressions,actions,date_start,date_stop")
	params.Set("limit", insightsPageLimit)

	return getAllPages[metadomain.InsightRow](ctx, c, "getInsights", entityID, c.buildURL(fmt.Sprintf("%s/insights", entityID), params))
}

func (c *MetaClient) GetAdAccount(ctx context.Context, accountID string) (*metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,name,currency")

	body, err := c.doGet(ctx, "getAccountCurrency", accountID, c.buildURL(accountID, params))
	if err != nil {
		return nil, err
	}

	var account metadomain.AdAccount
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, &domain.NetworkFailure{
			Operation: "getAccountCurrency",
			EntityID:  accountID,
			Err:       errors.Wrap(err, "erro ao decodificar JSON"),
		}
	}

	return &account, nil
}
