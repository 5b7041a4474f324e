package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobreeze/breeze/schema"
)

func textField(id string) schema.FieldSchema {
	return schema.FieldSchema{ID: id, Type: schema.FieldText, WireType: "single_line"}
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		name  string
		parts NameParts
		want  string
	}{
		{"full", NameParts{First: "Jane", Middle: "Q", Last: "Doe"}, "Jane Q Doe"},
		{"nickname", NameParts{First: "Jonathan", Nick: "Jon", Last: "Doe"}, "Jonathan (Jon) Doe"},
		{"nickname equals first", NameParts{First: "Jon", Nick: "Jon", Last: "Doe"}, "Jon Doe"},
		{"first and last", NameParts{First: "Jane", Last: "Doe"}, "Jane Doe"},
		{"last only", NameParts{Last: "Doe"}, "Doe"},
		{"everything", NameParts{First: "Jonathan", Middle: "Q", Nick: "Jon", Last: "Doe"}, "Jonathan Q (Jon) Doe"},
		{"empty", NameParts{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatName(tt.parts))
		})
	}
}

func TestNormalizeScalarText(t *testing.T) {
	v, err := Normalize(textField("1"), Text("Wilder"))
	require.NoError(t, err)
	assert.Equal(t, Value{"Wilder"}, v)

	v, err = Normalize(textField("1"), Text(""))
	require.NoError(t, err)
	assert.True(t, v.Empty())

	v, err = Normalize(textField("1"), RawValue{})
	require.NoError(t, err)
	assert.True(t, v.Empty())
}

func TestNormalizePhoneAnnotations(t *testing.T) {
	fs := schema.FieldSchema{ID: "p", Type: schema.FieldPhone, WireType: "phone"}

	v, err := Normalize(fs, Phones(Phone{Number: "800-555-1212", Private: true, NoText: true}))
	require.NoError(t, err)
	assert.Equal(t, Value{"800-555-1212(private)(no_text)"}, v)

	v, err = Normalize(fs, Phones(
		Phone{Number: "800-555-1212", Kind: "primary"},
		Phone{Number: "800-555-3434", Kind: "mobile", Private: true},
	))
	require.NoError(t, err)
	assert.Equal(t, Value{"800-555-1212", "mobile:800-555-3434(private)"}, v)

	// Entries without a number are dropped.
	v, err = Normalize(fs, Phones(Phone{Kind: "home"}))
	require.NoError(t, err)
	assert.True(t, v.Empty())
}

func TestNormalizeEmailEntries(t *testing.T) {
	fs := schema.FieldSchema{ID: "e", Type: schema.FieldEmail, WireType: "email"}

	v, err := Normalize(fs, Emails(
		Email{Address: "jane@example.org", Kind: "primary"},
		Email{Address: "jane@work.example.org", Kind: "work", Private: true},
	))
	require.NoError(t, err)
	assert.Equal(t, Value{"jane@example.org", "work:jane@work.example.org(private)"}, v)

	// Scalar email passes through.
	v, err = Normalize(fs, Text("jane@example.org"))
	require.NoError(t, err)
	assert.Equal(t, Value{"jane@example.org"}, v)
}

func checkboxField() schema.FieldSchema {
	return schema.FieldSchema{
		ID:       "c",
		Type:     schema.FieldCheckbox,
		WireType: "checkbox",
		Options: []schema.Option{
			{ID: "1", Name: "Red"},
			{ID: "2", Name: "Green"},
			{ID: "3", Name: "Blue"},
		},
	}
}

func TestNormalizeCheckboxSchemaOrder(t *testing.T) {
	fs := checkboxField()

	v, err := Normalize(fs, Selections(
		Selection{ID: "3", Name: "Blue"},
		Selection{ID: "1", Name: "Red"},
	))
	require.NoError(t, err)
	assert.Equal(t, Value{"Red", "Blue"}, v)
}

func TestNormalizeCheckboxDeterministic(t *testing.T) {
	fs := checkboxField()

	a, err := Normalize(fs, Selections(
		Selection{Name: "Blue"}, Selection{Name: "Green"}, Selection{Name: "Red"},
	))
	require.NoError(t, err)
	b, err := Normalize(fs, Selections(
		Selection{Name: "Red"}, Selection{Name: "Blue"}, Selection{Name: "Green"},
	))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, Value{"Red", "Green", "Blue"}, a)
}

func TestNormalizeCheckboxRetiredOptionsTrail(t *testing.T) {
	fs := checkboxField()

	v, err := Normalize(fs, Selections(
		Selection{Name: "Chartreuse"},
		Selection{Name: "Blue"},
	))
	require.NoError(t, err)
	assert.Equal(t, Value{"Blue", "Chartreuse"}, v)
}

func TestNormalizeCheckboxDropsEmptyNames(t *testing.T) {
	// Breeze checkbox payloads carry one null-name entry.
	fs := checkboxField()
	v, err := Normalize(fs, Selections(
		Selection{ID: "null"},
		Selection{ID: "2", Name: "Green"},
	))
	require.NoError(t, err)
	assert.Equal(t, Value{"Green"}, v)
}

func TestNormalizeSingleSelect(t *testing.T) {
	fs := schema.FieldSchema{ID: "d", Type: schema.FieldDropdown, WireType: "dropdown"}

	v, err := Normalize(fs, Selections(Selection{ID: "211", Name: "Include (Default for adults)"}))
	require.NoError(t, err)
	assert.Equal(t, Value{"Include (Default for adults)"}, v)

	v, err = Normalize(fs, Selections(Selection{ID: "211"}))
	require.NoError(t, err)
	assert.True(t, v.Empty())
}

func TestNormalizeFamily(t *testing.T) {
	fs := schema.FieldSchema{ID: schema.FamilyFieldID, Type: schema.FieldFamily, WireType: "family"}

	v, err := Normalize(fs, Family(
		FamilyMember{Role: "Head of Household", Details: NameParts{First: "Jane", Last: "Doe"}},
		FamilyMember{Role: "Child", Details: NameParts{First: "Jimmy", Last: "Doe"}},
		FamilyMember{Details: NameParts{First: "Solo", Last: "Doe"}},
	))
	require.NoError(t, err)
	assert.Equal(t, Value{
		"Jane Doe (Head of Household)",
		"Jimmy Doe (Child)",
		"Solo Doe",
	}, v)
}

func TestNormalizeAddress(t *testing.T) {
	fs := schema.FieldSchema{ID: "a", Type: schema.FieldAddress, WireType: "address"}

	v, err := Normalize(fs, Addresses(Address{
		Street: "205 S Pleasant St",
		City:   "Los Angeles",
		State:  "CA",
		Zip:    "12456",
	}))
	require.NoError(t, err)
	assert.Equal(t, Value{"205 S Pleasant St;Los Angeles CA 12456"}, v)

	v, err = Normalize(fs, Addresses(Address{
		Street: "1 Main St<br />Apt 2",
		City:   "Springfield",
	}))
	require.NoError(t, err)
	assert.Equal(t, Value{"1 Main St;Apt 2;Springfield"}, v)
}

func TestNormalizeUnknownType(t *testing.T) {
	fs := schema.FieldSchema{ID: "u", Type: schema.FieldUnknown, WireType: "hologram"}

	// Scalars of unknown types pass through.
	v, err := Normalize(fs, Text("42"))
	require.NoError(t, err)
	assert.Equal(t, Value{"42"}, v)

	// Compound values of unknown types are unsupported.
	_, err = Normalize(fs, Selections(Selection{Name: "x"}))
	assert.ErrorIs(t, err, ErrUnsupportedFieldType)
}

func TestNormalizeShapeMismatch(t *testing.T) {
	_, err := Normalize(textField("1"), Selections(Selection{Name: "x"}))
	assert.ErrorIs(t, err, ErrUnsupportedFieldType)

	fs := schema.FieldSchema{ID: "p", Type: schema.FieldPhone, WireType: "phone"}
	_, err = Normalize(fs, Family(FamilyMember{}))
	assert.ErrorIs(t, err, ErrUnsupportedFieldType)
}
