package adaptive

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownVariant means a selector produced an id with no registered
	// template. It is a configuration bug and is never silently defaulted.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrMalformedNode means a configuration node is not a variant template
	// declaration.
	ErrMalformedNode = errors.New("malformed configuration node")
)

func unknownVariant(id VariantID) error {
	return fmt.Errorf("%w: %q", ErrUnknownVariant, string(id))
}

// MalformedNodeError describes a skipped configuration node.
type MalformedNodeError struct {
	Index  int
	ID     VariantID
	Reason string
}

func (e *MalformedNodeError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s at index %d: %s", ErrMalformedNode, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s %q at index %d: %s", ErrMalformedNode, string(e.ID), e.Index, e.Reason)
}

func (e *MalformedNodeError) Unwrap() error {
	return ErrMalformedNode
}
