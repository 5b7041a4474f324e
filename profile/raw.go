package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NameParts holds the built-in name attributes every Breeze profile and
// family-member entry carries, independent of the field schema.
type NameParts struct {
	First  string `json:"first_name"`
	Middle string `json:"middle_name,omitempty"`
	Nick   string `json:"nick_name,omitempty"`
	Last   string `json:"last_name"`
}

// Empty reports whether every part is blank.
func (n NameParts) Empty() bool {
	return n.First == "" && n.Middle == "" && n.Nick == "" && n.Last == ""
}

// FamilyMember is one entry of a profile's household list.
type FamilyMember struct {
	Role    string    `json:"role_name"`
	Details NameParts `json:"details"`
}

// Selection is one chosen option of a checkbox, dropdown or radio field.
type Selection struct {
	ID   string `json:"value"`
	Name string `json:"name"`
}

// Phone is one phone-number entry. Breeze flags arrive as "1"/"0"
// strings; snapshots written by hand tend to use plain booleans. Both
// decode.
type Phone struct {
	Number  string
	Kind    string
	Private bool
	NoText  bool
}

// UnmarshalJSON accepts both the Breeze wire shape
// {"phone_number","phone_type","is_private","do_not_text"} and the
// compact {"number","private","no_text"} shape.
func (p *Phone) UnmarshalJSON(data []byte) error {
	var aux struct {
		PhoneNumber string   `json:"phone_number"`
		Number      string   `json:"number"`
		PhoneType   string   `json:"phone_type"`
		IsPrivate   wireBool `json:"is_private"`
		Private     wireBool `json:"private"`
		DoNotText   wireBool `json:"do_not_text"`
		NoText      wireBool `json:"no_text"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Number = aux.PhoneNumber
	if p.Number == "" {
		p.Number = aux.Number
	}
	p.Kind = aux.PhoneType
	p.Private = bool(aux.IsPrivate || aux.Private)
	p.NoText = bool(aux.DoNotText || aux.NoText)
	return nil
}

// Email is one email-address entry.
type Email struct {
	Address string
	Kind    string
	Private bool
}

// UnmarshalJSON decodes the Breeze wire shape, stripping the "email_"
// prefix off field_type so Kind reads "primary", "work", etc.
func (e *Email) UnmarshalJSON(data []byte) error {
	var aux struct {
		Address   string   `json:"address"`
		FieldType string   `json:"field_type"`
		IsPrivate wireBool `json:"is_private"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Address = aux.Address
	e.Kind = strings.TrimPrefix(aux.FieldType, "email_")
	e.Private = bool(aux.IsPrivate)
	return nil
}

// Address is one street-address entry. Street lines may arrive joined
// with "<br />" separators.
type Address struct {
	Street  string `json:"street_address"`
	Street2 string `json:"street_address_2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// ValueKind tags the shape a RawValue holds.
type ValueKind int

// RawValue shapes.
const (
	KindAbsent ValueKind = iota
	KindText
	KindSelections
	KindPhones
	KindEmails
	KindAddresses
	KindFamily
)

// RawValue is the tagged union of every raw field-value shape Breeze
// emits. The union is populated exactly once, when the profile payload
// is decoded; the normalizer only ever sees this internal form.
type RawValue struct {
	kind       ValueKind
	text       string
	selections []Selection
	phones     []Phone
	emails     []Email
	addresses  []Address
	family     []FamilyMember
}

// Text wraps a scalar string value.
func Text(s string) RawValue {
	return RawValue{kind: KindText, text: s}
}

// Selections wraps a list of option selections.
func Selections(s ...Selection) RawValue {
	return RawValue{kind: KindSelections, selections: s}
}

// Phones wraps a list of phone entries.
func Phones(p ...Phone) RawValue {
	return RawValue{kind: KindPhones, phones: p}
}

// Emails wraps a list of email entries.
func Emails(e ...Email) RawValue {
	return RawValue{kind: KindEmails, emails: e}
}

// Addresses wraps a list of address entries.
func Addresses(a ...Address) RawValue {
	return RawValue{kind: KindAddresses, addresses: a}
}

// Family wraps a household membership list.
func Family(m ...FamilyMember) RawValue {
	return RawValue{kind: KindFamily, family: m}
}

// Kind returns the shape tag.
func (rv RawValue) Kind() ValueKind {
	return rv.kind
}

// IsText reports whether the value is a plain scalar.
func (rv RawValue) IsText() bool {
	return rv.kind == KindText
}

// TextValue returns the scalar string, empty unless IsText.
func (rv RawValue) TextValue() string {
	return rv.text
}

// UnmarshalJSON validates a raw Breeze field value into the union.
// Shape detection follows what Breeze actually sends: bare scalars,
// single option objects, and arrays of phone/email/address/selection
// entries.
func (rv *RawValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*rv = RawValue{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*rv = Text(s)
		return nil
	case '{':
		return rv.unmarshalObject(trimmed)
	case '[':
		return rv.unmarshalArray(trimmed)
	default:
		// Bare numbers and booleans normalize as text.
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err == nil {
			*rv = Text(n.String())
			return nil
		}
		var b bool
		if err := json.Unmarshal(trimmed, &b); err == nil {
			if b {
				*rv = Text("1")
			} else {
				*rv = Text("0")
			}
			return nil
		}
		return fmt.Errorf("profile: unrecognized raw value: %s", trimmed)
	}
}

func (rv *RawValue) unmarshalObject(data []byte) error {
	keys, err := objectKeys(data)
	if err != nil {
		return err
	}
	switch {
	case keys["phone_number"] || keys["number"]:
		var p Phone
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*rv = Phones(p)
	case keys["address"]:
		var e Email
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*rv = Emails(e)
	case keys["street_address"] || keys["city"] || keys["zip"]:
		var a Address
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*rv = Addresses(a)
	default:
		var s Selection
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*rv = Selections(s)
	}
	return nil
}

func (rv *RawValue) unmarshalArray(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	if len(raws) == 0 {
		*rv = RawValue{}
		return nil
	}

	// Strings in an array collapse into a selection-style list so
	// multi-select values survive either wire form.
	if bytes.TrimSpace(raws[0])[0] == '"' {
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return err
		}
		sels := make([]Selection, 0, len(names))
		for _, n := range names {
			sels = append(sels, Selection{Name: n})
		}
		*rv = Selections(sels...)
		return nil
	}

	keys, err := objectKeys(raws[0])
	if err != nil {
		return err
	}
	switch {
	case keys["phone_number"] || keys["number"]:
		var ps []Phone
		if err := json.Unmarshal(data, &ps); err != nil {
			return err
		}
		*rv = Phones(ps...)
	case keys["address"]:
		var es []Email
		if err := json.Unmarshal(data, &es); err != nil {
			return err
		}
		*rv = Emails(es...)
	case keys["street_address"] || keys["city"] || keys["zip"]:
		var as []Address
		if err := json.Unmarshal(data, &as); err != nil {
			return err
		}
		*rv = Addresses(as...)
	case keys["role_name"]:
		var ms []FamilyMember
		if err := json.Unmarshal(data, &ms); err != nil {
			return err
		}
		*rv = Family(ms...)
	default:
		var ss []Selection
		if err := json.Unmarshal(data, &ss); err != nil {
			return err
		}
		*rv = Selections(ss...)
	}
	return nil
}

// objectKeys returns the set of top-level keys in a JSON object.
func objectKeys(data []byte) (map[string]bool, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(obj))
	for k := range obj {
		keys[k] = true
	}
	return keys, nil
}

// wireBool decodes Breeze's assorted boolean spellings: true/false,
// "1"/"0", 1/0, "true"/"false".
type wireBool bool

func (b *wireBool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch string(trimmed) {
	case "true", `"true"`, "1", `"1"`:
		*b = true
	case "false", `"false"`, "0", `"0"`, `""`, "null":
		*b = false
	default:
		return fmt.Errorf("profile: cannot decode %s as boolean flag", trimmed)
	}
	return nil
}

// Raw is one person's raw profile record: the built-in attributes plus
// the field-id-keyed value bag. Never mutated by extraction.
type Raw struct {
	ID string `json:"id"`
	NameParts
	Details map[string]RawValue `json:"details,omitempty"`
	Family  []FamilyMember      `json:"family,omitempty"`
}
