package customcommands

import (
	"fmt"
	"regexp"
	"strings"
)

// Value is a bound argument value. Structured values (members, channels)
// expose named attributes for {arg.attr} placeholders; plain tokens do not.
type Value interface {
	String() string
	Attr(name string) (string, bool)
}

// Literal is a raw text token bound as-is.
type Literal string

func (l Literal) String() string             { return string(l) }
func (l Literal) Attr(string) (string, bool) { return "", false }

// Converter resolves typed tokens against the invoking guild. Implementations
// return an error when nothing matches; the engine turns that into a
// ConversionError naming the argument and the rule that failed.
type Converter interface {
	Convert(kind Conversion, raw string) (Value, error)
}

// Bound couples a definition to the engine so dispatchers can invoke it
// without knowing about binding or rendering.
type Bound struct {
	Def *Definition
}

func (b *Bound) Invoke(tokens []string, tctx *TemplateContext, conv Converter) (string, error) {
	return Invoke(b.Def, tokens, tctx, conv)
}

// Invoke binds tokens to the definition's arguments and renders the output
// template. The whole binding-and-render pass does no I/O beyond what the
// converter needs.
//
// Failure modes, all terminal: *ArityError (too few tokens), *ConversionError
// (a token did not resolve), *RenderError (template names an unbound value).
func Invoke(def *Definition, tokens []string, tctx *TemplateContext, conv Converter) (string, error) {
	required := def.RequiredArgs()
	if len(tokens) < required {
		return "", &ArityError{Required: required, Supplied: len(tokens)}
	}

	binding := make(map[string]Value, len(def.Args))
	for i, arg := range def.Args {
		switch {
		case i < len(tokens):
			if arg.Conversion == ConvertNone {
				binding[arg.Name] = Literal(tokens[i])
				continue
			}
			v, err := conv.Convert(arg.Conversion, tokens[i])
			if err != nil {
				return "", &ConversionError{Arg: arg.Name, Kind: arg.Conversion, Token: tokens[i]}
			}
			binding[arg.Name] = v

		case arg.Default.IsSet():
			if arg.Default.IsRef() {
				// Resolved per invocation, never memoized: "ctx.author.name"
				// means whoever is invoking right now.
				binding[arg.Name] = Literal(tctx.Resolve(arg.Default.Path()))
			} else {
				binding[arg.Name] = Literal(arg.Default.Literal())
			}

		default:
			// Unreachable given the arity check and the ordering invariant.
			return "", fmt.Errorf("internal: argument %q has neither token nor default", arg.Name)
		}
	}

	return render(def.Output, binding, tctx)
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z0-9_.]+)?)\}`)

// render substitutes {name} and {name.attr} placeholders. "ctx" is
// implicitly bound to the template context. Attribute misses on a bound
// value degrade to "None"; an unbound top-level name is a RenderError.
func render(template string, binding map[string]Value, tctx *TemplateContext) (string, error) {
	var renderErr *RenderError

	out := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		path := m[1 : len(m)-1]
		head, rest, hasRest := strings.Cut(path, ".")

		if head == "ctx" {
			if !hasRest {
				return missing
			}
			return tctx.Resolve(rest)
		}

		v, ok := binding[head]
		if !ok {
			if renderErr == nil {
				renderErr = &RenderError{Placeholder: head}
			}
			return m
		}
		if !hasRest {
			return v.String()
		}
		s, ok := v.Attr(rest)
		if !ok {
			return missing
		}
		return s
	})

	if renderErr != nil {
		return "", renderErr
	}
	return out, nil
}
