package postcard

import "context"

// CampaignStatistic returns the quota usage of campaignKey.
func (c *Client) CampaignStatistic(ctx context.Context, campaignKey string) (*CampaignStatistic, error) {
	if campaignKey == "" {
		return nil, ErrMissingCampaignKey
	}
	resp, err := c.apiClient.GetCampaignStatistic(ctx, campaignKey)
	if err != nil {
		return nil, wrapError(err)
	}
	return newCampaignStatistic(resp), nil
}

// DefaultCampaignStatistic returns the quota usage of the default campaign.
// It fails with ErrMissingCampaignKey if none is configured.
func (c *Client) DefaultCampaignStatistic(ctx context.Context) (*CampaignStatistic, error) {
	if c.defaultCampaign == "" {
		return nil, ErrMissingCampaignKey
	}
	return c.CampaignStatistic(ctx, c.defaultCampaign)
}

// HasRemainingQuota reports whether campaignKey can send more postcards.
func (c *Client) HasRemainingQuota(ctx context.Context, campaignKey string) (bool, error) {
	n, err := c.RemainingQuota(ctx, campaignKey)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RemainingQuota returns how many more postcards campaignKey can send.
func (c *Client) RemainingQuota(ctx context.Context, campaignKey string) (int, error) {
	stats, err := c.CampaignStatistic(ctx, campaignKey)
	if err != nil {
		return 0, err
	}
	return stats.RemainingQuota(), nil
}
