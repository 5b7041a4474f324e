package breeze

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FundSplit assigns part of a contribution to one fund. The fund ID is
// optional; when present it must name an existing fund and overrides
// the name.
type FundSplit struct {
	ID     string          `json:"id,omitempty"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// MarshalJSON renders the amount as a string with its exact scale, the
// form the giving endpoint expects.
func (f FundSplit) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID     string `json:"id,omitempty"`
		Name   string `json:"name"`
		Amount string `json:"amount"`
	}
	return json.Marshal(wire{ID: f.ID, Name: f.Name, Amount: f.Amount.String()})
}

// Contribution describes a payment to record or edit. Amount must
// equal the sum of the fund split amounts. Either PersonID or the
// UID/Processor pair identifies the donor; with only UID and Processor
// set, Name, Email and StreetAddress help Breeze match a profile.
type Contribution struct {
	Date          string // YYYY-MM-DD
	PersonID      string
	UID           string
	Processor     string
	Name          string
	Email         string
	StreetAddress string
	Method        string
	Funds         []FundSplit
	Amount        decimal.Decimal
	Group         string
	BatchNumber   string
	BatchName     string
	Note          string
}

func (con *Contribution) validate() error {
	if len(con.Funds) == 0 {
		return badRequest("a contribution needs at least one fund split")
	}
	sum := decimal.Zero
	for _, f := range con.Funds {
		sum = sum.Add(f.Amount)
	}
	if !sum.Equal(con.Amount) {
		return badRequest("fund splits sum to %s, amount is %s", sum, con.Amount)
	}
	return nil
}

func (con *Contribution) params() params {
	return params{
		"date":           con.Date,
		"person_id":      con.PersonID,
		"uid":            con.UID,
		"processor":      con.Processor,
		"name":           con.Name,
		"email":          con.Email,
		"street_address": con.StreetAddress,
		"method":         con.Method,
		"funds_json":     con.Funds,
		"amount":         con.Amount,
		"group":          con.Group,
		"batch_number":   con.BatchNumber,
		"batch_name":     con.BatchName,
		"note":           con.Note,
	}
}

type paymentResponse struct {
	PaymentID json.Number `json:"payment_id"`
}

// AddContribution records a contribution and returns its payment id.
func (c *Client) AddContribution(ctx context.Context, con Contribution) (string, error) {
	if err := con.validate(); err != nil {
		return "", err
	}
	var resp paymentResponse
	if err := c.get(ctx, endpointContributions, "add", con.params(), &resp); err != nil {
		return "", err
	}
	return resp.PaymentID.String(), nil
}

// EditContribution replaces an existing payment with the given fields
// and returns the new payment id.
func (c *Client) EditContribution(ctx context.Context, paymentID string, con Contribution) (string, error) {
	if paymentID == "" {
		return "", badRequest("payment_id is required")
	}
	if err := con.validate(); err != nil {
		return "", err
	}
	p := con.params()
	p["payment_id"] = paymentID
	var resp paymentResponse
	if err := c.get(ctx, endpointContributions, "edit", p, &resp); err != nil {
		return "", err
	}
	return resp.PaymentID.String(), nil
}

// DeleteContribution deletes an existing payment.
func (c *Client) DeleteContribution(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return badRequest("payment_id is required")
	}
	return c.get(ctx, endpointContributions, "delete", params{"payment_id": paymentID}, nil)
}

// ListContributionsOptions filters a ListContributions call.
type ListContributionsOptions struct {
	Start          string // YYYY-MM-DD, on or after
	End            string // YYYY-MM-DD, on or before
	PersonID       string
	IncludeFamily  bool // requires PersonID
	AmountMin      decimal.Decimal
	AmountMax      decimal.Decimal
	MethodIDs      []string
	FundIDs        []string
	EnvelopeNumber string
	Batches        []string
	Forms          []string
}

// ListContributions lists payments matching the given filters. Each
// record is returned raw; the giving endpoint's shapes vary with
// account settings.
func (c *Client) ListContributions(ctx context.Context, opts ListContributionsOptions) ([]json.RawMessage, error) {
	if opts.IncludeFamily && opts.PersonID == "" {
		return nil, badRequest("include_family requires a person_id")
	}
	p := params{
		"start":           opts.Start,
		"end":             opts.End,
		"person_id":       opts.PersonID,
		"include_family":  opts.IncludeFamily,
		"amount_min":      opts.AmountMin,
		"amount_max":      opts.AmountMax,
		"method_ids":      opts.MethodIDs,
		"fund_ids":        opts.FundIDs,
		"envelope_number": opts.EnvelopeNumber,
		"batches":         opts.Batches,
		"forms":           opts.Forms,
	}
	var out []json.RawMessage
	if err := c.get(ctx, endpointContributions, "list", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}
