package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobreeze/breeze/schema"
)

// FormatName renders built-in name attributes as a single display
// string: first, middle, nickname in parentheses, last, joined with
// single spaces. A nickname equal to the first name adds nothing.
// Returns "" when every part is blank.
func FormatName(n NameParts) string {
	parts := make([]string, 0, 4)
	if n.First != "" {
		parts = append(parts, n.First)
	}
	if n.Middle != "" {
		parts = append(parts, n.Middle)
	}
	if n.Nick != "" && n.Nick != n.First {
		parts = append(parts, "("+n.Nick+")")
	}
	if n.Last != "" {
		parts = append(parts, n.Last)
	}
	return strings.Join(parts, " ")
}

// normalizeFunc converts one field's raw value into its canonical form.
// A nil/empty Value means the field is absent from the normalized
// profile.
type normalizeFunc func(fs schema.FieldSchema, rv RawValue) (Value, error)

// normalizers is the closed dispatch table from field type to rule.
// Types without an entry fall through to the pass-through/unsupported
// policy in Normalize.
var normalizers = map[schema.FieldType]normalizeFunc{
	schema.FieldText:      normalizeText,
	schema.FieldNotes:     normalizeText,
	schema.FieldDate:      normalizeText,
	schema.FieldBirthdate: normalizeText,
	schema.FieldGrade:     normalizeText,
	schema.FieldNumber:    normalizeText,
	schema.FieldEmail:     normalizeEmail,
	schema.FieldPhone:     normalizePhone,
	schema.FieldCheckbox:  normalizeCheckbox,
	schema.FieldDropdown:  normalizeSingleSelect,
	schema.FieldRadio:     normalizeSingleSelect,
	schema.FieldName:      normalizeName,
	schema.FieldFamily:    normalizeFamily,
	schema.FieldAddress:   normalizeAddress,
}

// Normalize converts a raw field value into its canonical string form
// according to the field's schema type. The exact output shapes are
// load-bearing: diffing compares them by string equality.
//
// Unknown field types pass scalar values through unchanged; compound
// values of unknown types fail with ErrUnsupportedFieldType.
func Normalize(fs schema.FieldSchema, rv RawValue) (Value, error) {
	if rv.kind == KindAbsent {
		return nil, nil
	}
	if fn, ok := normalizers[fs.Type]; ok {
		return fn(fs, rv)
	}
	if rv.IsText() {
		return scalar(rv.text), nil
	}
	return nil, fmt.Errorf("%w: %s (field %s)", ErrUnsupportedFieldType, fs.WireType, fs.ID)
}

func scalar(s string) Value {
	if s == "" {
		return nil
	}
	return Value{s}
}

func normalizeText(fs schema.FieldSchema, rv RawValue) (Value, error) {
	if !rv.IsText() {
		return nil, fmt.Errorf("%w: %s value for scalar field %s", ErrUnsupportedFieldType, fs.WireType, fs.ID)
	}
	return scalar(rv.text), nil
}

// normalizePhone renders each entry as the base number followed by
// "(private)" then "(no_text)" when flagged, with non-primary kinds
// prefixed "kind:". Entries without a number are dropped.
func normalizePhone(fs schema.FieldSchema, rv RawValue) (Value, error) {
	if rv.IsText() {
		return scalar(rv.text), nil
	}
	if rv.kind != KindPhones {
		return nil, fmt.Errorf("%w: %s value for phone field %s", ErrUnsupportedFieldType, fs.WireType, fs.ID)
	}
	var out Value
	for _, p := range rv.phones {
		if p.Number == "" {
			continue
		}
		s := p.Number
		if p.Private {
			s += "(private)"
		}
		if p.NoText {
			s += "(no_text)"
		}
		if p.Kind != "" && p.Kind != "primary" {
			s = p.Kind + ":" + s
		}
		out = append(out, s)
	}
	return out, nil
}

// normalizeEmail renders entry lists like phone entries: address plus
// "(private)" when flagged, non-primary kinds prefixed "kind:".
func normalizeEmail(fs schema.FieldSchema, rv RawValue) (Value, error) {
	if rv.IsText() {
		return scalar(rv.text), nil
	}
	if rv.kind != KindEmails {
		return nil, fmt.Errorf("%w: %s value for email field %s", ErrUnsupportedFieldType, fs.WireType, fs.ID)
	}
	var out Value
	for _, e := range rv.emails {
		if e.Address == "" {
			continue
		}
		s := e.Address
		if e.Private {
			s += "(private)"
		}
		if e.Kind != "" && e.Kind != "primary" {
			s = e.Kind + ":" + s
		}
		out = append(out, s)
	}
	return out, nil
}

// normalizeCheckbox emits selected display names in the schema's
// option-declaration order, independent of selection order. Selections
// naming options the schema no longer declares sort after the declared
// ones, keeping their input order.
func normalizeCheckbox(fs schema.FieldSchema, rv RawValue) (Value, error) {
	if rv.kind != KindSelections {
		return nil, fmt.Errorf("%w: %s value for checkbox field %s", ErrUnsupportedFieldType, fs.WireType, fs.ID)
	}
	type ranked struct {
		name string
		rank int
		pos  int
	}
	var picked []ranked
	for i, sel := range rv.selections {
		if sel.Name == "" {
			continue
		}
		rank, ok := fs.OptionRank(sel.Name)
		if !ok {
			rank = len(fs.Options) + i
		}
		picked = append(picked, ranked{name: sel.Name, rank: rank, pos: i})
	}
	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].rank != picked[j].rank {
			return picked[i].rank < picked[j].rank
		}
		return picked[i].pos < picked[j].pos
	})
	var out Value
	for _, p := range picked {
		out = append(out, p.name)
	}
	return out, nil
}

func normalizeSingleSelect(fs schema.FieldSchema, rv RawValue) (Value, error) {
	if rv.IsText() {
		return scalar(rv.text), nil
	}
	if rv.kind != KindSelections {
		return nil, fmt.Errorf("%w: %s value for select field %s", ErrUnsupportedFieldType, fs.WireType, fs.ID)
	}
	for _, sel := range rv.selections {
		if sel.Name != "" {
			return Value{sel.Name}, nil
		}
	}
	return nil, nil
}

func normalizeName(fs schema.FieldSchema, rv RawValue) (Value, error) {
	if rv.IsText() {
		return scalar(rv.text), nil
	}
	return nil, fmt.Errorf("%w: %s value for name field %s", ErrUnsupportedFieldType, fs.WireType, fs.ID)
}

// normalizeFamily renders each household member as "Name (role)" in the
// order members are listed; members without a role render as just the
// name.
func normalizeFamily(fs schema.FieldSchema, rv RawValue) (Value, error) {
	if rv.kind != KindFamily {
		return nil, fmt.Errorf("%w: %s value for family field %s", ErrUnsupportedFieldType, fs.WireType, fs.ID)
	}
	var out Value
	for _, m := range rv.family {
		name := FormatName(m.Details)
		if name == "" {
			continue
		}
		if m.Role != "" {
			name += " (" + m.Role + ")"
		}
		out = append(out, name)
	}
	return out, nil
}

// normalizeAddress joins street lines and the "city state zip" segment
// with semicolons, one string per address entry. Street lines arrive
// joined with "<br />".
func normalizeAddress(fs schema.FieldSchema, rv RawValue) (Value, error) {
	if rv.kind != KindAddresses {
		return nil, fmt.Errorf("%w: %s value for address field %s", ErrUnsupportedFieldType, fs.WireType, fs.ID)
	}
	var out Value
	for _, a := range rv.addresses {
		var segments []string
		for _, street := range []string{a.Street, a.Street2} {
			if street == "" {
				continue
			}
			for _, line := range strings.Split(street, "<br />") {
				if line != "" {
					segments = append(segments, line)
				}
			}
		}
		var csz []string
		for _, part := range []string{a.City, a.State, a.Zip} {
			if part != "" {
				csz = append(csz, part)
			}
		}
		if len(csz) > 0 {
			segments = append(segments, strings.Join(csz, " "))
		}
		if len(segments) > 0 {
			out = append(out, strings.Join(segments, ";"))
		}
	}
	return out, nil
}
