package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) GetCampaignsByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status")
	params.Add("effective_status", "['ACTIVE']")
	params.Add("limit", listPageLimit)

	return getAllPages[metadomain.Campaign](ctx, c, "listCampaigns", accountID, c.buildURL(fmt.Sprintf("%s/campaigns", accountID), params))
}

func (c *MetaClient) GetAdSetsByCampaignID(ctx context.Context, campaignID string) ([]metadomain.AdSet, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status")
	params.Add("limit", listPageLimit)

	return getAllPages[metadomain.AdSet](ctx, c, "listAdSets", campaignID, c.buildURL(fmt.Sprintf("%s/adsets", campaignID), params))
}

func (c *MetaClient) GetAdsByAdSetID(ctx context.Context, adSetID string) ([]metadomain.Ad, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,creative{thumbnail_url,image_url}")
	params.Add("limit", listPageLimit)

	return getAllPages[metadomain.Ad](ctx, c, "listAds", adSetID, c.buildURL(fmt.Sprintf("%s/ads", adSetID), params))
}
