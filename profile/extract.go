// Package profile converts raw Breeze member records into normalized
// field maps.
//
// A raw profile is a field-id-keyed bag of loosely shaped values. The
// extractor resolves each field through a schema.Index, normalizes the
// value with the type's rule, and produces an insertion-ordered map of
// field id to canonical string(s). The output shape is deterministic:
// the same schema and raw profile always produce byte-identical
// snapshots, which is what makes later diffing meaningful.
package profile

import (
	"fmt"

	"github.com/gobreeze/breeze/omap"
	"github.com/gobreeze/breeze/schema"
)

// Normalized is a field-id-keyed map of normalized values, ordered the
// way fields are declared in the schema, with the synthesized "name"
// entry first. No key ever maps to an empty value.
type Normalized = omap.Map[string, Value]

// People maps person ids to their normalized profiles, in input order.
type People = omap.Map[string, *Normalized]

// Extract normalizes one raw profile against a schema index.
//
// Fields referencing ids the index does not know (retired fields) and
// fields whose values have no rule for their type are skipped; a single
// malformed field never discards the rest of the profile. Absent and
// empty values are omitted entirely.
func Extract(idx *schema.Index, raw Raw) *Normalized {
	out := omap.New[string, Value]()

	if name := FormatName(raw.NameParts); name != "" {
		out.Set(schema.NameFieldID, Value{name})
	}

	for _, id := range idx.IDs() {
		if id == schema.NameFieldID {
			continue
		}
		fs, err := idx.Lookup(id)
		if err != nil {
			continue
		}

		var rv RawValue
		if id == schema.FamilyFieldID {
			if len(raw.Family) == 0 {
				continue
			}
			rv = Family(raw.Family...)
		} else {
			var ok bool
			rv, ok = raw.Details[id]
			if !ok {
				continue
			}
		}

		value, err := Normalize(fs, rv)
		if err != nil {
			// Recoverable by policy: skip the field, keep the profile.
			continue
		}
		if !value.Empty() {
			out.Set(id, value)
		}
	}
	return out
}

// ExtractAll normalizes a batch of raw profiles, keyed by person id in
// input order. A repeated person id fails with DuplicatePersonError;
// profiles without an id are rejected for the same reason: the batch
// identity is untrustworthy.
func ExtractAll(idx *schema.Index, raws []Raw) (*People, error) {
	out := omap.New[string, *Normalized]()
	for _, raw := range raws {
		if raw.ID == "" {
			return nil, fmt.Errorf("profile: person without id (name %q)", FormatName(raw.NameParts))
		}
		if out.Has(raw.ID) {
			return nil, &DuplicatePersonError{PersonID: raw.ID}
		}
		out.Set(raw.ID, Extract(idx, raw))
	}
	return out, nil
}
