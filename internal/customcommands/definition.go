package customcommands

import (
	"encoding/json"
	"fmt"
)

// Origin ties a definition to the guild it was created in and a display
// string of its creator. The guild binding is permanent: a definition only
// ever executes in its origin guild.
type Origin struct {
	GuildID string
	Author  string
}

// Definition is one stored custom command. Definitions are immutable;
// "editing" is delete and recreate.
type Definition struct {
	Name   string
	Args   []Argument
	Output string
	Origin Origin
}

// NewDefinition validates and builds a definition.
func NewDefinition(name string, args []Argument, output string, origin Origin) (*Definition, error) {
	if name == "" {
		return nil, &ConstructionError{Reason: "command name cannot be empty"}
	}
	if err := validateArgs(args); err != nil {
		return nil, err
	}
	return &Definition{Name: name, Args: args, Output: output, Origin: origin}, nil
}

// RequiredArgs counts arguments without a default.
func (d *Definition) RequiredArgs() int {
	n := 0
	for _, arg := range d.Args {
		if !arg.IsOptional() {
			n++
		}
	}
	return n
}

// Usage renders a help line like "greet <who> [times]".
func (d *Definition) Usage() string {
	s := d.Name
	for _, arg := range d.Args {
		if arg.IsOptional() {
			s += " [" + arg.Name + "]"
		} else {
			s += " <" + arg.Name + ">"
		}
	}
	return s
}

// Wire format, compatible with the original command_storage.json:
// {"name": ..., "ctx": {"guild_id": ..., "author": ...}, "output": ...,
//  "args": [{"name": ..., "annotation": tag-or-null, "default": str-or-null}]}

type wireArgument struct {
	Name       string  `json:"name"`
	Annotation *string `json:"annotation"`
	Default    *string `json:"default"`
}

type wireOrigin struct {
	GuildID string `json:"guild_id"`
	Author  string `json:"author"`
}

type wireDefinition struct {
	Name   string         `json:"name"`
	Ctx    wireOrigin     `json:"ctx"`
	Output string         `json:"output"`
	Args   []wireArgument `json:"args"`
}

func (d *Definition) MarshalJSON() ([]byte, error) {
	wire := wireDefinition{
		Name:   d.Name,
		Ctx:    wireOrigin{GuildID: d.Origin.GuildID, Author: d.Origin.Author},
		Output: d.Output,
		Args:   make([]wireArgument, 0, len(d.Args)),
	}
	for _, arg := range d.Args {
		var tag *string
		if arg.Conversion != ConvertNone {
			t := arg.Conversion.Tag()
			tag = &t
		}
		wire.Args = append(wire.Args, wireArgument{
			Name:       arg.Name,
			Annotation: tag,
			Default:    arg.Default.wire(),
		})
	}
	return json.Marshal(wire)
}

func (d *Definition) UnmarshalJSON(data []byte) error {
	var wire wireDefinition
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	args := make([]Argument, 0, len(wire.Args))
	for _, wa := range wire.Args {
		tag := ""
		if wa.Annotation != nil {
			tag = *wa.Annotation
		}
		conv, err := ConversionFromTag(tag)
		if err != nil {
			return fmt.Errorf("argument %q: %w", wa.Name, err)
		}

		def := NoDefault()
		if wa.Default != nil {
			def = ParseDefault(*wa.Default)
		}

		args = append(args, Argument{Name: wa.Name, Conversion: conv, Default: def})
	}

	// Re-check the construction invariant: a hand-edited file could hold an
	// ordering no wizard would produce.
	if err := validateArgs(args); err != nil {
		return err
	}
	if wire.Name == "" {
		return &ConstructionError{Reason: "command name cannot be empty"}
	}

	d.Name = wire.Name
	d.Args = args
	d.Output = wire.Output
	d.Origin = Origin{GuildID: wire.Ctx.GuildID, Author: wire.Ctx.Author}
	return nil
}
