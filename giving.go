package breeze

import (
	"context"
	"encoding/json"
)

// Fund describes one giving fund. Total is only populated when listing
// with totals included.
type Fund struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TaxDeductible string          `json:"tax_deductible"`
	Archived      string          `json:"is_archived"`
	Total         json.RawMessage `json:"total,omitempty"`
}

// Campaign is one pledge campaign.
type Campaign struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListFunds lists the account's giving funds.
func (c *Client) ListFunds(ctx context.Context, includeTotals bool) ([]Fund, error) {
	p := params{"include_totals": includeTotals}
	var out []Fund
	if err := c.get(ctx, endpointFunds, "list", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCampaigns lists pledge campaigns.
func (c *Client) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	var out []Campaign
	if err := c.get(ctx, endpointPledges, "list_campaigns", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPledges lists pledges within a campaign.
func (c *Client) ListPledges(ctx context.Context, campaignID string) ([]json.RawMessage, error) {
	if campaignID == "" {
		return nil, badRequest("campaign_id is required")
	}
	var out []json.RawMessage
	if err := c.get(ctx, endpointPledges, "list_pledges", params{"campaign_id": campaignID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
