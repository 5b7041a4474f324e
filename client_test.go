package breeze

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a Client straight at an httptest server, skipping
// the breezechms.com address check New performs.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := &Client{
		baseURL:    srv.URL,
		apiKey:     "test-key",
		httpClient: srv.Client(),
		userAgent:  defaultUserAgent,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    NewMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func TestNewValidatesURL(t *testing.T) {
	_, err := New("http://demo.breezechms.com", "key")
	var bad *BadRequestError
	require.ErrorAs(t, err, &bad)

	_, err = New("https://demo.example.com", "key")
	require.ErrorAs(t, err, &bad)

	_, err = New("https://demo.breezechms.com", "")
	require.ErrorAs(t, err, &bad)

	c, err := New("https://demo.breezechms.com/", "key")
	require.NoError(t, err)
	assert.Equal(t, "https://demo.breezechms.com", c.baseURL)
}

func TestGetSendsHeadersAndParams(t *testing.T) {
	var gotPath, gotKey, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Api-Key")
		gotQuery = r.URL.Query().Get("details")
		w.Write([]byte(`[{"id":"101","first_name":"Zoe","last_name":"Washburne"}]`))
	})

	people, err := c.ListPeople(context.Background(), ListPeopleOptions{Details: true})
	require.NoError(t, err)
	require.Len(t, people, 1)

	assert.Equal(t, "/api/people", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "1", gotQuery)
	assert.Equal(t, "Zoe", people[0].First)
}

func TestGetEnvelopeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"errors":"invalid api key"}`))
	})

	err := c.AssignTag(context.Background(), "1", "2")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid api key", apiErr.Message)
	assert.Equal(t, http.StatusOK, apiErr.Status)
}

func TestGetHTTPFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	_, err := c.GetAccountSummary(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestRequestSucceeded(t *testing.T) {
	cases := []struct {
		body string
		ok   bool
	}{
		{`[{"id":"1"}]`, true},
		{`{"id":"1","name":"x"}`, true},
		{`{"success":true}`, true},
		{`{"success":"1"}`, true},
		{`{"success":false}`, false},
		{`{"success":"0"}`, false},
		{`{"errors":["bad"]}`, false},
		{`{"errorCode":"403"}`, false},
		{`false`, false},
		{`true`, true},
		{``, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, requestSucceeded([]byte(tc.body)), "body %q", tc.body)
	}
}

func TestPersonDetailsCached(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"id":"42","first_name":"Hoban","last_name":"Washburne","details":{}}`))
	}, WithDetailsCache(8))

	ctx := context.Background()
	first, err := c.PersonDetails(ctx, "42")
	require.NoError(t, err)
	second, err := c.PersonDetails(ctx, "42")
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Same(t, first, second)
}

func TestUpdatePersonInvalidatesCache(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"id":"42","first_name":"Hoban","last_name":"Washburne"}`))
	}, WithDetailsCache(8))

	ctx := context.Background()
	_, err := c.PersonDetails(ctx, "42")
	require.NoError(t, err)
	_, err = c.UpdatePerson(ctx, "42", []FieldUpdate{{FieldID: "2009", FieldType: "email", Response: "x@y.z"}})
	require.NoError(t, err)
	_, err = c.PersonDetails(ctx, "42")
	require.NoError(t, err)

	assert.Equal(t, 3, requests)
}

func TestPeopleDetailsBatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/people/")
		fmt.Fprintf(w, `{"id":%q,"first_name":"Person%s","last_name":"Test"}`, id, id)
	})

	people, err := c.PeopleDetails(context.Background(), []string{"3", "1", "2"}, 2)
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "3", people[0].ID)
	assert.Equal(t, "1", people[1].ID)
	assert.Equal(t, "Person2", people[2].First)
}

func TestAddContributionValidatesSplits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})

	_, err := c.AddContribution(context.Background(), Contribution{
		Date:   "2026-08-01",
		Amount: decimal.RequireFromString("100.00"),
		Funds: []FundSplit{
			{Name: "General Fund", Amount: decimal.RequireFromString("60.00")},
			{Name: "Missions", Amount: decimal.RequireFromString("30.00")},
		},
	})
	var bad *BadRequestError
	require.ErrorAs(t, err, &bad)
	assert.Contains(t, bad.Reason, "90")
}

func TestAddContribution(t *testing.T) {
	var gotFunds string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotFunds = r.URL.Query().Get("funds_json")
		w.Write([]byte(`{"success":true,"payment_id":"329029"}`))
	})

	id, err := c.AddContribution(context.Background(), Contribution{
		Date:     "2026-08-01",
		PersonID: "42",
		Method:   "Check",
		Amount:   decimal.RequireFromString("100.00"),
		Funds: []FundSplit{
			{ID: "12345", Name: "General Fund", Amount: decimal.RequireFromString("60.00")},
			{Name: "Missions", Amount: decimal.RequireFromString("40.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "329029", id)
	assert.JSONEq(t,
		`[{"id":"12345","name":"General Fund","amount":"60.00"},{"name":"Missions","amount":"40.00"}]`,
		gotFunds)
}

func TestListContributionsRequiresPersonForFamily(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})

	_, err := c.ListContributions(context.Background(), ListContributionsOptions{IncludeFamily: true})
	var bad *BadRequestError
	require.ErrorAs(t, err, &bad)
}

func TestMetricsRecorded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags/assign" {
			w.Write([]byte(`{"success":false,"errors":"no such tag"}`))
			return
		}
		w.Write([]byte(`[]`))
	})

	ctx := context.Background()
	_, err := c.ListCalendars(ctx)
	require.NoError(t, err)
	require.Error(t, c.AssignTag(ctx, "1", "999"))

	s := c.Metrics().Snapshot()
	assert.Equal(t, uint64(2), s.Requests)
	assert.Equal(t, uint64(1), s.Failed)
	assert.Equal(t, uint64(1), s.Endpoints["events"].Requests)
	assert.Equal(t, uint64(1), s.Endpoints["tags"].Failed)
	assert.GreaterOrEqual(t, s.MaxTime, s.MinTime)
}
