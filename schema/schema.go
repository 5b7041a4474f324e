// Package schema builds an indexed view of a Breeze profile-field schema.
//
// Breeze describes member profiles as an ordered list of sections, each
// holding an ordered list of field specifications. The Index flattens that
// nesting into an O(1) lookup from field id to a FieldSchema carrying the
// qualified "section:field" name, the field type and the declared options.
package schema

import (
	"errors"
	"fmt"
)

// FieldType identifies the normalization rule a profile field follows.
// The set is closed: the extractor dispatches on it at compile time.
type FieldType string

// Field types understood by the profile extractor.
const (
	FieldText      FieldType = "text"
	FieldNotes     FieldType = "notes"
	FieldDate      FieldType = "date"
	FieldBirthdate FieldType = "birthdate"
	FieldGrade     FieldType = "grade"
	FieldNumber    FieldType = "number"
	FieldEmail     FieldType = "email"
	FieldPhone     FieldType = "phone"
	FieldCheckbox  FieldType = "checkbox"
	FieldDropdown  FieldType = "dropdown"
	FieldRadio     FieldType = "radio"
	FieldName      FieldType = "name"
	FieldFamily    FieldType = "family"
	FieldAddress   FieldType = "address"

	// FieldUnknown marks a wire type the index has no rule for. Scalar
	// values of unknown fields pass through untouched; anything else is
	// skipped during extraction.
	FieldUnknown FieldType = "unknown"
)

// wireTypes maps Breeze field_type strings to FieldType values.
var wireTypes = map[string]FieldType{
	"single_line":     FieldText,
	"notes":           FieldNotes,
	"date":            FieldDate,
	"birthdate":       FieldBirthdate,
	"grade":           FieldGrade,
	"number":          FieldNumber,
	"email":           FieldEmail,
	"phone":           FieldPhone,
	"checkbox":        FieldCheckbox,
	"dropdown":        FieldDropdown,
	"multiple_choice": FieldRadio,
	"radio":           FieldRadio,
	"name":            FieldName,
	"family":          FieldFamily,
	"address":         FieldAddress,
}

// TypeFromWire converts a Breeze field_type string into a FieldType.
// Unrecognized strings map to FieldUnknown.
func TypeFromWire(wire string) FieldType {
	if t, ok := wireTypes[wire]; ok {
		return t
	}
	return FieldUnknown
}

// Option is one selectable choice of a checkbox, dropdown or radio field.
type Option struct {
	ID   string `json:"option_id"`
	Name string `json:"name"`
}

// FieldSpec is the wire form of one profile field inside a section.
type FieldSpec struct {
	ID      string   `json:"field_id"`
	Name    string   `json:"name"`
	Type    string   `json:"field_type"`
	Options []Option `json:"options,omitempty"`
}

// Section is the wire form of one named group of profile fields.
type Section struct {
	ID     string      `json:"section_id"`
	Name   string      `json:"name"`
	Fields []FieldSpec `json:"fields"`
}

// FieldSchema is the indexed view of one profile field. Immutable once
// built.
type FieldSchema struct {
	ID            string
	Name          string
	Section       string
	QualifiedName string
	Type          FieldType
	WireType      string
	Options       []Option
}

// OptionRank returns the declaration position of the option with the
// given display name. Checkbox normalization sorts selections by this
// rank so output order is deterministic regardless of input order.
func (f FieldSchema) OptionRank(name string) (int, bool) {
	for i, opt := range f.Options {
		if opt.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Reserved field ids injected into every index. "name" covers the
// synthesized full name; "family" covers the household membership list.
// Neither belongs to a section, so their qualified names carry no
// section prefix.
const (
	NameFieldID   = "name"
	FamilyFieldID = "family"
)

// ErrUnknownField is returned by Index.Lookup for ids absent from the
// schema snapshot, typically fields that were retired after a profile
// referencing them was recorded.
var ErrUnknownField = errors.New("unknown field id")

// SchemaError reports a malformed or ambiguous schema payload. It is
// fatal: an index is never built from input that cannot be looked up
// unambiguously.
type SchemaError struct {
	FieldID string
	Reason  string
}

func (e *SchemaError) Error() string {
	if e.FieldID != "" {
		return fmt.Sprintf("schema: field %s: %s", e.FieldID, e.Reason)
	}
	return "schema: " + e.Reason
}

// Index maps field ids to their FieldSchema. Built once per schema
// snapshot and read-only afterwards.
type Index struct {
	byID map[string]FieldSchema
	ids  []string
}

// BuildIndex flattens a schema payload into an Index. The reserved
// "name" and "family" entries are registered first, mirroring the order
// extraction emits them. A repeated field id makes the whole payload
// untrustworthy and fails with a SchemaError.
func BuildIndex(sections []Section) (*Index, error) {
	idx := &Index{
		byID: make(map[string]FieldSchema, 64),
	}

	idx.add(FieldSchema{
		ID:            NameFieldID,
		Name:          "Name",
		QualifiedName: "Name",
		Type:          FieldName,
		WireType:      "name",
	})
	idx.add(FieldSchema{
		ID:            FamilyFieldID,
		Name:          "family",
		QualifiedName: "family",
		Type:          FieldFamily,
		WireType:      "family",
	})

	for _, section := range sections {
		for _, field := range section.Fields {
			if field.ID == "" {
				return nil, &SchemaError{Reason: fmt.Sprintf("field %q in section %q has no id", field.Name, section.Name)}
			}
			if _, exists := idx.byID[field.ID]; exists {
				return nil, &SchemaError{FieldID: field.ID, Reason: "duplicate field id"}
			}
			opts := make([]Option, len(field.Options))
			copy(opts, field.Options)
			idx.add(FieldSchema{
				ID:            field.ID,
				Name:          field.Name,
				Section:       section.Name,
				QualifiedName: section.Name + ":" + field.Name,
				Type:          TypeFromWire(field.Type),
				WireType:      field.Type,
				Options:       opts,
			})
		}
	}
	return idx, nil
}

func (idx *Index) add(fs FieldSchema) {
	idx.byID[fs.ID] = fs
	idx.ids = append(idx.ids, fs.ID)
}

// Lookup returns the FieldSchema for a field id. Ids not present in the
// snapshot fail with ErrUnknownField; callers extracting profiles should
// skip such fields rather than abort.
func (idx *Index) Lookup(fieldID string) (FieldSchema, error) {
	fs, ok := idx.byID[fieldID]
	if !ok {
		return FieldSchema{}, fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}
	return fs, nil
}

// Len returns the number of indexed fields, reserved entries included.
func (idx *Index) Len() int {
	return len(idx.ids)
}

// IDs returns all indexed field ids in schema declaration order, the
// reserved entries first. The returned slice is a copy.
func (idx *Index) IDs() []string {
	out := make([]string, len(idx.ids))
	copy(out, idx.ids)
	return out
}

// FieldNames returns a fresh map from field id to qualified name,
// suitable for resolving display names in diff reports.
func (idx *Index) FieldNames() map[string]string {
	out := make(map[string]string, len(idx.byID))
	for id, fs := range idx.byID {
		out[id] = fs.QualifiedName
	}
	return out
}
