package columnio

import (
	"errors"
	"fmt"
)

var (
	// ErrStructure is wrapped by all errors reporting a malformed event
	// sequence: unbalanced fields or groups, out-of-range field indexes, or
	// value events sent to a node that cannot receive them. The record being
	// written must be discarded by the caller.
	ErrStructure = errors.New("malformed record")

	// ErrEmptyField is returned by EndField when no value or subgroup was
	// added since the matching StartField. ErrEmptyField wraps ErrStructure.
	ErrEmptyField = fmt.Errorf("%w: empty fields are illegal, the field should be omitted completely instead", ErrStructure)

	// ErrLevelBound is wrapped by errors reporting a repetition level above
	// the level declared by the schema, which indicates a bug in the event
	// producer or an engine bound to the wrong schema.
	ErrLevelBound = errors.New("repetition level exceeds the schema declared level")
)

func structuralError(msg string, args ...interface{}) error {
	return fmt.Errorf("columnio: %s: %w", fmt.Sprintf(msg, args...), ErrStructure)
}
