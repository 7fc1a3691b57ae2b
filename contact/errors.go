package contact

import "github.com/pkg/errors"

// Sentinel errors for the distinct failure kinds of the package. Callers can
// classify failures with errors.Is; the wrapped messages carry the specifics.
var (
	// ErrUnknownContactFamily indicates a contact plane family outside a shape's catalog.
	ErrUnknownContactFamily = errors.New("unknown contact plane family")

	// ErrPoseOverspecified indicates an object whose placement was declared twice,
	// by a fixed pose and by an incoming contact.
	ErrPoseOverspecified = errors.New("pose overspecified")

	// ErrStructuralViolation indicates an edge that would make the graph no longer a forest.
	ErrStructuralViolation = errors.New("contact graph must remain a forest")

	// ErrNameConflict indicates a duplicate object name.
	ErrNameConflict = errors.New("object name already in use")

	// ErrUnknownName indicates a lookup of an unregistered object name.
	ErrUnknownName = errors.New("no object with name")
)

// NewUnknownContactFamilyError returns an error for a family id missing from
// the given shape's catalog.
func NewUnknownContactFamilyError(shape, familyID string) error {
	return errors.Wrapf(ErrUnknownContactFamily, "%s has no family %q", shape, familyID)
}

// NewPoseOverspecifiedError returns an error for an object placed both by
// pose and by contact.
func NewPoseOverspecifiedError(name string) error {
	return errors.Wrapf(ErrPoseOverspecified, "object %q cannot have both an absolute pose and an incoming contact", name)
}

// NewNameConflictError returns an error for a duplicate object name.
func NewNameConflictError(name string) error {
	return errors.Wrapf(ErrNameConflict, "object %q", name)
}

// NewUnknownNameError returns an error for an unregistered object name.
func NewUnknownNameError(name string) error {
	return errors.Wrapf(ErrUnknownName, "%q", name)
}
