package mapping

import (
	"errors"
	"fmt"
)

// ErrMissingAttribute is returned when an element lacks an attribute needed
// to derive an entity IRI.
var ErrMissingAttribute = errors.New("missing required attribute")

// MissingAttributeError records which element lacked which attribute.
type MissingAttributeError struct {
	Element   string
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: <%s> has no %s", ErrMissingAttribute, e.Element, e.Attribute)
}

// Unwrap makes the error match ErrMissingAttribute.
func (e *MissingAttributeError) Unwrap() error {
	return ErrMissingAttribute
}
