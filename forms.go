package breeze

import (
	"context"
	"encoding/json"
)

// FormEntry is one submission of a form. Response maps the form's
// field ids to submitted values, whose shapes vary per field type.
type FormEntry struct {
	ID        string                     `json:"id"`
	FormID    string                     `json:"form_id"`
	CreatedOn string                     `json:"created_on"`
	PersonID  string                     `json:"person_id"`
	Response  map[string]json.RawMessage `json:"response"`
}

// ListFormEntries returns the entries submitted to a form. With
// details set, each entry carries the full response payload instead of
// names only.
func (c *Client) ListFormEntries(ctx context.Context, formID string, details bool) ([]FormEntry, error) {
	if formID == "" {
		return nil, badRequest("form_id is required")
	}
	p := params{"form_id": formID, "details": details}
	var out []FormEntry
	if err := c.get(ctx, endpointForms, "list_form_entries", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}
