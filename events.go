package breeze

import (
	"context"
	"encoding/json"
)

// Calendar describes one calendar in the account.
type Calendar struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is one event instance on a calendar.
type Event struct {
	ID         string `json:"id"`
	OID        string `json:"oid"`
	EventID    string `json:"event_id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	StartDate  string `json:"start_datetime"`
	EndDate    string `json:"end_datetime"`
}

// Attendee is one attendance record for an event instance. Details
// beyond the ids vary with the details flag, so the raw record is kept.
type Attendee struct {
	InstanceID string          `json:"instance_id"`
	PersonID   string          `json:"person_id"`
	CheckOut   string          `json:"check_out"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// ListCalendars lists the account's calendars.
func (c *Client) ListCalendars(ctx context.Context) ([]Calendar, error) {
	var out []Calendar
	if err := c.get(ctx, endpointEvents, "calendars/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEvents lists events in the given date range (YYYY-MM-DD). Empty
// bounds default to the current month on the server side.
func (c *Client) ListEvents(ctx context.Context, start, end string) ([]Event, error) {
	p := params{"start": start, "end": end}
	var out []Event
	if err := c.get(ctx, endpointEvents, "", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent retrieves one event instance.
func (c *Client) GetEvent(ctx context.Context, instanceID string) (*Event, error) {
	if instanceID == "" {
		return nil, badRequest("instance_id is required")
	}
	var out Event
	if err := c.get(ctx, endpointEvents, "list_event", params{"instance_id": instanceID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddEventOptions describes a new event. Name, StartsOn and EndsOn are
// required; timestamps are epoch seconds.
type AddEventOptions struct {
	Name        string
	StartsOn    int
	EndsOn      int
	AllDay      bool
	Description string
	CategoryID  string
	EventID     string
}

// AddEvent creates an event and returns its id.
func (c *Client) AddEvent(ctx context.Context, opts AddEventOptions) (string, error) {
	if opts.Name == "" {
		return "", badRequest("add event requires a name")
	}
	p := params{
		"name":        opts.Name,
		"starts_on":   opts.StartsOn,
		"ends_on":     opts.EndsOn,
		"all_day":     opts.AllDay,
		"description": opts.Description,
		"category_id": opts.CategoryID,
		"event_id":    opts.EventID,
	}
	var id json.Number
	if err := c.get(ctx, endpointEvents, "add", p, &id); err != nil {
		return "", err
	}
	return id.String(), nil
}

// CheckIn records a check-in for a person at an event instance.
func (c *Client) CheckIn(ctx context.Context, personID, instanceID string) error {
	return c.attendanceAdd(ctx, personID, instanceID, "in")
}

// CheckOut records a check-out for a person at an event instance. This
// adds a check-out record; it does not remove earlier attendance, see
// DeleteAttendance for that.
func (c *Client) CheckOut(ctx context.Context, personID, instanceID string) error {
	return c.attendanceAdd(ctx, personID, instanceID, "out")
}

func (c *Client) attendanceAdd(ctx context.Context, personID, instanceID, direction string) error {
	if personID == "" || instanceID == "" {
		return badRequest("attendance requires person_id and instance_id")
	}
	p := params{
		"person_id":   personID,
		"instance_id": instanceID,
		"direction":   direction,
	}
	return c.get(ctx, endpointEvents, "attendance/add", p, nil)
}

// DeleteAttendance removes all attendance records for a person at an
// event instance.
func (c *Client) DeleteAttendance(ctx context.Context, personID, instanceID string) error {
	if personID == "" || instanceID == "" {
		return badRequest("attendance requires person_id and instance_id")
	}
	p := params{"person_id": personID, "instance_id": instanceID}
	return c.get(ctx, endpointEvents, "attendance/delete", p, nil)
}

// ListAttendance lists attendance records for an event instance. With
// details set, each record carries the person's full details.
func (c *Client) ListAttendance(ctx context.Context, instanceID string, details bool) ([]Attendee, error) {
	if instanceID == "" {
		return nil, badRequest("instance_id is required")
	}
	p := params{"instance_id": instanceID}
	if details {
		p["details"] = "true"
	}
	var out []Attendee
	if err := c.get(ctx, endpointEvents, "attendance/list", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EligiblePeople lists people eligible to attend an event instance.
func (c *Client) EligiblePeople(ctx context.Context, instanceID string) ([]json.RawMessage, error) {
	if instanceID == "" {
		return nil, badRequest("instance_id is required")
	}
	var out []json.RawMessage
	if err := c.get(ctx, endpointEvents, "attendance/eligible", params{"instance_id": instanceID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
