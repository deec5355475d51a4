package customcommands

import (
	"fmt"
	"strings"
)

// Conversion selects how a raw invocation token is turned into a value.
// The set is closed: a stored tag outside it is rejected at load time.
type Conversion int

const (
	ConvertNone Conversion = iota
	ConvertMember
	ConvertChannel
)

// Wire tags kept compatible with the original command_storage.json format.
const (
	tagMember  = "MemberConverter"
	tagChannel = "GuildChannelConverter"
)

// Tag returns the serialized form, or "" for ConvertNone.
func (c Conversion) Tag() string {
	switch c {
	case ConvertMember:
		return tagMember
	case ConvertChannel:
		return tagChannel
	default:
		return ""
	}
}

// Word returns the user-facing vocabulary word for the conversion.
func (c Conversion) Word() string {
	switch c {
	case ConvertMember:
		return "member"
	case ConvertChannel:
		return "channel"
	default:
		return "none"
	}
}

// ConversionFromTag resolves a stored tag. Unknown tags fail with
// ErrUnknownConversion so the caller can skip just that definition.
func ConversionFromTag(tag string) (Conversion, error) {
	switch tag {
	case "":
		return ConvertNone, nil
	case tagMember:
		return ConvertMember, nil
	case tagChannel:
		return ConvertChannel, nil
	default:
		return ConvertNone, fmt.Errorf("%w: %q", ErrUnknownConversion, tag)
	}
}

// ConversionFromWord maps wizard vocabulary to a conversion. Anything
// outside the vocabulary is reported as not ok so the wizard can re-prompt.
func ConversionFromWord(word string) (Conversion, bool) {
	switch strings.ToLower(word) {
	case "member", "user":
		return ConvertMember, true
	case "channel":
		return ConvertChannel, true
	case "none", "":
		return ConvertNone, true
	default:
		return ConvertNone, false
	}
}

// Default is the tagged default value of an argument: unset (required),
// a literal string, or a reference into the template context. Which one it
// is gets decided once at construction, not re-sniffed per invocation.
type Default struct {
	set     bool
	ref     bool
	literal string
	path    string
}

// NoDefault marks an argument required.
func NoDefault() Default {
	return Default{}
}

// LiteralDefault makes the argument optional with a fixed fallback.
func LiteralDefault(s string) Default {
	return Default{set: true, literal: s}
}

// ContextDefault makes the argument optional, resolving path against the
// template context at invocation time.
func ContextDefault(path string) Default {
	return Default{set: true, ref: true, path: path}
}

// ParseDefault decides literal vs. context reference from the raw text the
// user (or the stored file) supplied.
func ParseDefault(raw string) Default {
	if after, ok := strings.CutPrefix(raw, "ctx."); ok {
		return ContextDefault(after)
	}
	return LiteralDefault(raw)
}

func (d Default) IsSet() bool { return d.set }
func (d Default) IsRef() bool { return d.ref }

// Literal returns the fixed fallback text. Only meaningful when IsSet and
// not IsRef.
func (d Default) Literal() string { return d.literal }

// Path returns the context path (without the "ctx." prefix). Only
// meaningful when IsRef.
func (d Default) Path() string { return d.path }

// wire returns the serialized form: nil, a literal, or "ctx."+path.
func (d Default) wire() *string {
	if !d.set {
		return nil
	}
	s := d.literal
	if d.ref {
		s = "ctx." + d.path
	}
	return &s
}

// Argument is one typed, ordered parameter of a custom command.
type Argument struct {
	Name       string
	Conversion Conversion
	Default    Default
}

// IsOptional reports whether the argument has a default.
func (a Argument) IsOptional() bool {
	return a.Default.IsSet()
}

// validateArgs enforces the construction invariants: non-empty unique names
// and no required argument after an optional one.
func validateArgs(args []Argument) error {
	seen := make(map[string]bool, len(args))
	optionalYet := false

	for _, arg := range args {
		if arg.Name == "" {
			return &ConstructionError{Reason: "argument name cannot be empty"}
		}
		if seen[arg.Name] {
			return &ConstructionError{Reason: fmt.Sprintf("duplicate argument name %q", arg.Name)}
		}
		seen[arg.Name] = true

		if arg.IsOptional() {
			optionalYet = true
		} else if optionalYet {
			return &ConstructionError{
				Reason: fmt.Sprintf("required argument %q cannot follow an optional one", arg.Name),
			}
		}
	}
	return nil
}
