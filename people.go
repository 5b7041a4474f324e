package breeze

import (
	"context"
	"encoding/json"

	"github.com/gobreeze/breeze/profile"
	"github.com/gobreeze/breeze/schema"
	"github.com/gobreeze/breeze/worker"
)

// ListPeopleOptions narrows a ListPeople call. The zero value lists
// everyone with names only.
type ListPeopleOptions struct {
	// Limit caps the number of people returned; zero returns all.
	Limit int
	// Offset skips that many people before returning results.
	Offset int
	// Details includes each person's full field bag, not just names.
	Details bool
	// FilterJSON filters results by profile-field criteria. See the
	// Breeze API documentation for the filter shape.
	FilterJSON any
}

// ListPeople lists people in the account database.
func (c *Client) ListPeople(ctx context.Context, opts ListPeopleOptions) ([]profile.Raw, error) {
	p := params{
		"limit":       opts.Limit,
		"offset":      opts.Offset,
		"details":     opts.Details,
		"filter_json": opts.FilterJSON,
	}
	var out []profile.Raw
	if err := c.get(ctx, endpointPeople, "", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PersonDetails retrieves one person's full profile. Responses are
// memoized when the client was built with WithDetailsCache.
func (c *Client) PersonDetails(ctx context.Context, personID string) (*profile.Raw, error) {
	if personID == "" {
		return nil, badRequest("person_id is required")
	}
	fetch := func() (*profile.Raw, error) {
		var out profile.Raw
		if err := c.get(ctx, endpointPeople, personID, nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	if c.detailsCache != nil {
		return c.detailsCache.GetOrFetch(personID, fetch)
	}
	return fetch()
}

// PeopleDetails fetches full profiles for the given person ids on a
// bounded pool of goroutines, returning them in input order. The first
// failed fetch fails the whole batch.
func (c *Client) PeopleDetails(ctx context.Context, personIDs []string, workers int) ([]*profile.Raw, error) {
	results := worker.FetchAll(ctx, c, personIDs, workers)
	out := make([]*profile.Raw, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
		out = append(out, r.Profile)
	}
	return out, nil
}

// FieldUpdate is one field assignment for AddPerson or UpdatePerson.
// The shape mirrors what the Breeze API expects in fields_json.
type FieldUpdate struct {
	FieldID   string `json:"field_id"`
	FieldType string `json:"field_type"`
	Response  any    `json:"response"`
	Details   any    `json:"details,omitempty"`
}

// AddPerson creates a new person and returns the created profile.
func (c *Client) AddPerson(ctx context.Context, first, last string, fields []FieldUpdate) (*profile.Raw, error) {
	if first == "" || last == "" {
		return nil, badRequest("add person requires first and last names")
	}
	p := params{
		"first":       first,
		"last":        last,
		"fields_json": fields,
	}
	if fields == nil {
		delete(p, "fields_json")
	}
	var out profile.Raw
	if err := c.get(ctx, endpointPeople, "add", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePerson updates fields on an existing person and returns the
// updated profile. The details cache entry for the person, if any, is
// invalidated.
func (c *Client) UpdatePerson(ctx context.Context, personID string, fields []FieldUpdate) (*profile.Raw, error) {
	if personID == "" {
		return nil, badRequest("person_id is required")
	}
	if len(fields) == 0 {
		return nil, badRequest("update person requires at least one field")
	}
	p := params{
		"person_id":   personID,
		"fields_json": fields,
	}
	var out profile.Raw
	if err := c.get(ctx, endpointPeople, "update", p, &out); err != nil {
		return nil, err
	}
	if c.detailsCache != nil {
		c.detailsCache.Delete(personID)
	}
	return &out, nil
}

// ProfileFields retrieves the account's profile-field schema: ordered
// sections, each holding ordered field specifications.
func (c *Client) ProfileFields(ctx context.Context) ([]schema.Section, error) {
	var out []schema.Section
	if err := c.get(ctx, endpointProfileFields, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPeopleRaw lists people with full details as the service serves
// them, without decoding. Snapshot archival wants the bytes verbatim.
func (c *Client) ListPeopleRaw(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.get(ctx, endpointPeople, "", params{"details": true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProfileFieldsRaw retrieves the profile-field schema without decoding.
func (c *Client) ProfileFieldsRaw(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.get(ctx, endpointProfileFields, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProfileIndex fetches the profile-field schema and builds its lookup
// index in one step.
func (c *Client) ProfileIndex(ctx context.Context) (*schema.Index, error) {
	sections, err := c.ProfileFields(ctx)
	if err != nil {
		return nil, err
	}
	return schema.BuildIndex(sections)
}
