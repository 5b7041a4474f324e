package profile

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFieldType is returned when a field's raw value has no
// normalization rule for its schema type. Extraction treats it as
// recoverable: the field is skipped and the rest of the profile is
// still processed.
var ErrUnsupportedFieldType = errors.New("unsupported field type")

// DuplicatePersonError reports the same person id appearing twice in a
// batch extraction input. It is fatal for the batch: the caller's data
// is ambiguous.
type DuplicatePersonError struct {
	PersonID string
}

func (e *DuplicatePersonError) Error() string {
	return fmt.Sprintf("profile: duplicate person id %q", e.PersonID)
}
