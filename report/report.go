// Package report reconciles normalized profile snapshots taken at
// different times.
//
// Two snapshots are paired key by key with Join, then per-field value
// lists are compared as order-preserving set differences. The output
// names only what changed: values present before but gone now, and
// values present now that were not there before.
package report

import (
	"github.com/gobreeze/breeze/omap"
	"github.com/gobreeze/breeze/profile"
	"github.com/gobreeze/breeze/schema"
)

// Pair holds the two sides of a joined key. Left is the reference
// (older) side, Right the current side. The Has flags distinguish an
// absent side from a present zero value.
type Pair[V any] struct {
	Left     V
	Right    V
	HasLeft  bool
	HasRight bool
}

// Entry is one key of a joined map, in report order.
type Entry[K comparable, V any] struct {
	Key K
	Pair[V]
}

// Join pairs two ordered maps by key. Keys present on the right come
// first, in right insertion order, followed by left-only keys in left
// insertion order. Keys absent on both sides cannot appear since map
// inputs only hold present keys. Either input may be nil.
func Join[K comparable, V any](left, right *omap.Map[K, V]) []Entry[K, V] {
	var out []Entry[K, V]

	if right != nil {
		for _, k := range right.Keys() {
			e := Entry[K, V]{Key: k}
			e.Right, _ = right.Get(k)
			e.HasRight = true
			if left != nil {
				if lv, ok := left.Get(k); ok {
					e.Left = lv
					e.HasLeft = true
				}
			}
			out = append(out, e)
		}
	}
	if left != nil {
		for _, k := range left.Keys() {
			if right != nil && right.Has(k) {
				continue
			}
			e := Entry[K, V]{Key: k}
			e.Left, _ = left.Get(k)
			e.HasLeft = true
			out = append(out, e)
		}
	}
	return out
}

// FieldDiff records one field whose value set changed between two
// snapshots. Removed holds values only the reference side had, Added
// values only the current side has, both in their snapshot order.
type FieldDiff struct {
	Field   string   `json:"field"`
	Removed []string `json:"removed,omitempty"`
	Added   []string `json:"added,omitempty"`
}

// PersonDiff is the change report for one person. Only people with at
// least one changed field are reported.
type PersonDiff struct {
	Person string      `json:"person"`
	Fields []FieldDiff `json:"fields"`
}

// DiffValues walks a joined field map and emits a FieldDiff for every
// field whose value sets differ. Absent sides count as empty; scalar
// values compare as one-element lists. Field display names resolve
// through fieldNames, falling back to the raw field id.
func DiffValues(joined []Entry[string, profile.Value], fieldNames map[string]string) []FieldDiff {
	var out []FieldDiff
	for _, e := range joined {
		removed := difference(e.Left, e.Right)
		added := difference(e.Right, e.Left)
		if len(removed) == 0 && len(added) == 0 {
			continue
		}
		name := e.Key
		if qualified, ok := fieldNames[e.Key]; ok {
			name = qualified
		}
		out = append(out, FieldDiff{Field: name, Removed: removed, Added: added})
	}
	return out
}

// difference returns the elements of a that do not occur in b, in a's
// order, first occurrence only.
func difference(a, b profile.Value) []string {
	if len(a) == 0 {
		return nil
	}
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	var out []string
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		if inB[s] || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// DiffPeople compares joined per-person snapshots and reports each
// person whose profile changed. A person present on only one side is
// still compared: the absent side behaves as an all-empty profile, so
// every field shows as fully added or fully removed. The display name
// comes from the current side's "name" field when present, otherwise
// the reference side's, otherwise the person id.
func DiffPeople(joined []Entry[string, *profile.Normalized], fieldNames map[string]string) []PersonDiff {
	var out []PersonDiff
	for _, e := range joined {
		fields := DiffValues(Join(e.Left, e.Right), fieldNames)
		if len(fields) == 0 {
			continue
		}
		out = append(out, PersonDiff{
			Person: personName(e),
			Fields: fields,
		})
	}
	return out
}

func personName(e Entry[string, *profile.Normalized]) string {
	for _, side := range []*profile.Normalized{e.Right, e.Left} {
		if side == nil {
			continue
		}
		if v, ok := side.Get(schema.NameFieldID); ok && !v.Empty() {
			return v[0]
		}
	}
	return e.Key
}

// Compare produces the change report between two versions of a member
// database: a reference snapshot (schema plus raw profiles) and the
// current one. Field display names merge both schema snapshots, the
// current one winning on conflict.
func Compare(refIndex, curIndex *schema.Index, refPeople, curPeople []profile.Raw) ([]PersonDiff, error) {
	fieldNames := refIndex.FieldNames()
	for id, name := range curIndex.FieldNames() {
		fieldNames[id] = name
	}

	ref, err := profile.ExtractAll(refIndex, refPeople)
	if err != nil {
		return nil, err
	}
	cur, err := profile.ExtractAll(curIndex, curPeople)
	if err != nil {
		return nil, err
	}

	return DiffPeople(Join(ref, cur), fieldNames), nil
}
