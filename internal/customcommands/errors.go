package customcommands

import (
	"errors"
	"fmt"
)

// ErrUnknownConversion is wrapped by tag-decoding failures so loaders can
// skip a single bad definition instead of aborting the whole store.
var ErrUnknownConversion = errors.New("unknown conversion tag")

// ErrDuplicateCommand is returned by Store.Create when the name is already
// taken in the guild.
var ErrDuplicateCommand = errors.New("a command with that name already exists")

// ConstructionError reports an invalid definition at build time: a required
// argument after an optional one, an empty name, or a duplicate argument.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string {
	return "invalid command definition: " + e.Reason
}

// ArityError reports too few tokens at invocation time. Callers should show
// usage help rather than surface this as a fault.
type ArityError struct {
	Required int
	Supplied int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expected at least %d argument(s), got %d", e.Required, e.Supplied)
}

// ConversionError reports a token that could not be converted per its
// argument's rule. Kind tells callers which "not found" message to show.
type ConversionError struct {
	Arg   string
	Kind  Conversion
	Token string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("could not convert %q for argument %q (%s)", e.Token, e.Arg, e.Kind.Word())
}

// RenderError reports an output template referencing a name that is not in
// the bound argument set. This happens when users author templates and
// argument lists that drift apart; it is expected, not exceptional.
type RenderError struct {
	Placeholder string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("output template references unknown name %q", e.Placeholder)
}
