package breeze

import (
	"context"
	"encoding/json"
)

// AccountSummary describes the account's identity and settings. The
// details blob mirrors Breeze's account settings structure, which is
// unversioned, so it stays raw.
type AccountSummary struct {
	ID        json.Number     `json:"id"`
	Name      string          `json:"name"`
	Subdomain string          `json:"subdomain"`
	Status    json.Number     `json:"status"`
	CreatedOn string          `json:"created_on"`
	Details   json.RawMessage `json:"details"`
}

// GetAccountSummary retrieves the account summary. It doubles as a
// cheap connectivity and credential check.
func (c *Client) GetAccountSummary(ctx context.Context) (*AccountSummary, error) {
	var out AccountSummary
	if err := c.get(ctx, endpointAccountSummary, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
