package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobreeze/breeze/schema"
)

func testIndex(t *testing.T) *schema.Index {
	t.Helper()
	idx, err := schema.BuildIndex([]schema.Section{
		{
			Name: "Main",
			Fields: []schema.FieldSpec{
				{ID: "101", Name: "Occupation", Type: "single_line"},
				{ID: "102", Name: "Gender", Type: "multiple_choice", Options: []schema.Option{
					{ID: "1", Name: "Male"}, {ID: "2", Name: "Female"},
				}},
			},
		},
		{
			Name: "Communication",
			Fields: []schema.FieldSpec{
				{ID: "201", Name: "Phone", Type: "phone"},
				{ID: "202", Name: "Address", Type: "address"},
			},
		},
		{
			Name: "Spiritual Gifts",
			Fields: []schema.FieldSpec{
				{ID: "301", Name: "Spiritual Gifts", Type: "checkbox", Options: []schema.Option{
					{ID: "1", Name: "Exhortation"}, {ID: "2", Name: "Giving"}, {ID: "3", Name: "Mercy"},
				}},
			},
		},
	})
	require.NoError(t, err)
	return idx
}

func TestExtractSynthesizesName(t *testing.T) {
	idx := testIndex(t)
	raw := Raw{
		ID:        "157857",
		NameParts: NameParts{First: "Thomas", Last: "Anderson", Nick: "Neo"},
	}

	got := Extract(idx, raw)
	v, ok := got.Get(schema.NameFieldID)
	require.True(t, ok)
	assert.Equal(t, Value{"Thomas (Neo) Anderson"}, v)
	assert.Equal(t, []string{schema.NameFieldID}, got.Keys())
}

func TestExtractOmitsEmptyAndAbsentFields(t *testing.T) {
	idx := testIndex(t)
	raw := Raw{
		ID:        "1",
		NameParts: NameParts{First: "Jane", Last: "Doe"},
		Details: map[string]RawValue{
			"101": Text(""),                        // empty scalar
			"201": Phones(),                        // empty list
			"301": Selections(Selection{ID: "99"}), // only an empty-name entry
		},
	}

	got := Extract(idx, raw)
	assert.Equal(t, []string{schema.NameFieldID}, got.Keys())
	for _, id := range got.Keys() {
		v, _ := got.Get(id)
		assert.False(t, v.Empty(), "field %s has empty value", id)
	}
}

func TestExtractSkipsUnknownAndUnsupportedFields(t *testing.T) {
	idx := testIndex(t)
	raw := Raw{
		ID:        "1",
		NameParts: NameParts{First: "Jane", Last: "Doe"},
		Details: map[string]RawValue{
			"retired": Text("old value"),                    // unknown field id
			"101":     Selections(Selection{Name: "wrong"}), // shape mismatch
			"102":     Selections(Selection{ID: "2", Name: "Female"}),
		},
	}

	got := Extract(idx, raw)
	assert.False(t, got.Has("retired"))
	assert.False(t, got.Has("101"))
	v, ok := got.Get("102")
	require.True(t, ok)
	assert.Equal(t, Value{"Female"}, v)
}

func TestExtractFullProfileSchemaOrder(t *testing.T) {
	idx := testIndex(t)
	raw := Raw{
		ID:        "42",
		NameParts: NameParts{First: "Jane", Last: "Doe"},
		Details: map[string]RawValue{
			"301": Selections(Selection{Name: "Mercy"}, Selection{Name: "Exhortation"}),
			"201": Phones(Phone{Number: "800-555-1212", Private: true, NoText: true}),
			"101": Text("Engineer"),
		},
		Family: []FamilyMember{
			{Role: "Head of Household", Details: NameParts{First: "Jane", Last: "Doe"}},
		},
	}

	got := Extract(idx, raw)
	assert.Equal(t, []string{"name", "family", "101", "201", "301"}, got.Keys())

	phone, _ := got.Get("201")
	assert.Equal(t, Value{"800-555-1212(private)(no_text)"}, phone)

	gifts, _ := got.Get("301")
	assert.Equal(t, Value{"Exhortation", "Mercy"}, gifts)

	family, _ := got.Get("family")
	assert.Equal(t, Value{"Jane Doe (Head of Household)"}, family)
}

func TestExtractDeterministic(t *testing.T) {
	idx := testIndex(t)
	raw := Raw{
		ID:        "42",
		NameParts: NameParts{First: "Jane", Last: "Doe"},
		Details: map[string]RawValue{
			"101": Text("Engineer"),
			"301": Selections(Selection{Name: "Giving"}, Selection{Name: "Mercy"}),
		},
	}

	a, err := json.Marshal(Extract(idx, raw))
	require.NoError(t, err)
	b, err := json.Marshal(Extract(idx, raw))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestExtractAllKeysByPersonID(t *testing.T) {
	idx := testIndex(t)
	raws := []Raw{
		{ID: "2", NameParts: NameParts{First: "B", Last: "Person"}},
		{ID: "1", NameParts: NameParts{First: "A", Last: "Person"}},
	}

	people, err := ExtractAll(idx, raws)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, people.Keys())
}

func TestExtractAllDuplicatePersonID(t *testing.T) {
	idx := testIndex(t)
	raws := []Raw{
		{ID: "1", NameParts: NameParts{First: "A", Last: "One"}},
		{ID: "1", NameParts: NameParts{First: "A", Last: "Two"}},
	}

	_, err := ExtractAll(idx, raws)
	var dup *DuplicatePersonError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "1", dup.PersonID)
}

func TestExtractAllMissingPersonID(t *testing.T) {
	idx := testIndex(t)
	_, err := ExtractAll(idx, []Raw{{NameParts: NameParts{First: "No", Last: "ID"}}})
	assert.Error(t, err)
}

func TestRawProfileJSONDecoding(t *testing.T) {
	payload := `{
		"id": "157857",
		"first_name": "Thomas",
		"last_name": "Anderson",
		"nick_name": "Neo",
		"details": {
			"101": "Engineer",
			"102": {"value": "1", "name": "Male"},
			"201": [{"phone_number": "800-555-1212", "phone_type": "mobile", "is_private": "1", "do_not_text": "1"}],
			"202": [{"street_address": "1 Main St", "city": "Zion", "state": "CA", "zip": "00001"}],
			"301": [
				{"name": null, "value": "null"},
				{"name": "Mercy", "value": "3"}
			]
		},
		"family": [
			{"role_name": "Head of Household", "details": {"first_name": "Thomas", "last_name": "Anderson"}}
		]
	}`

	var raw Raw
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	assert.Equal(t, "157857", raw.ID)
	assert.Equal(t, "Neo", raw.Nick)
	assert.Len(t, raw.Family, 1)

	idx := testIndex(t)
	got := Extract(idx, raw)

	phone, ok := got.Get("201")
	require.True(t, ok)
	assert.Equal(t, Value{"mobile:800-555-1212(private)(no_text)"}, phone)

	addr, _ := got.Get("202")
	assert.Equal(t, Value{"1 Main St;Zion CA 00001"}, addr)

	gifts, _ := got.Get("301")
	assert.Equal(t, Value{"Mercy"}, gifts)
}

func TestValueJSONRoundTrip(t *testing.T) {
	single := Value{"one"}
	data, err := json.Marshal(single)
	require.NoError(t, err)
	assert.Equal(t, `"one"`, string(data))

	var back Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, single, back)

	multi := Value{"one", "two"}
	data, err = json.Marshal(multi)
	require.NoError(t, err)
	assert.Equal(t, `["one","two"]`, string(data))

	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, multi, back)
}
