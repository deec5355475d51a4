package customcommands

import "strings"

// missing is what any failed context or attribute lookup renders as. The
// original bot surfaced the literal text "None" and stored templates depend
// on it.
const missing = "None"

// Author is the invoking member as seen by templates.
type Author struct {
	Name          string
	Discriminator string
	Nick          string
	Mention       string
	ID            string
}

func (a Author) String() string {
	return a.Name + "#" + a.Discriminator
}

func (a Author) Attr(name string) (string, bool) {
	switch name {
	case "name":
		return a.Name, true
	case "discriminator":
		return a.Discriminator, true
	case "nick":
		return a.Nick, true
	case "mention":
		return a.Mention, true
	case "id":
		return a.ID, true
	default:
		return "", false
	}
}

// Channel is the invoking channel as seen by templates.
type Channel struct {
	Name    string
	Mention string
}

func (c Channel) String() string {
	return c.Mention
}

func (c Channel) Attr(name string) (string, bool) {
	switch name {
	case "name":
		return c.Name, true
	case "mention":
		return c.Mention, true
	default:
		return "", false
	}
}

// Guild is the invoking guild as seen by templates.
type Guild struct {
	Name string
}

func (g Guild) String() string {
	return g.Name
}

func (g Guild) Attr(name string) (string, bool) {
	if name == "name" {
		return g.Name, true
	}
	return "", false
}

// TemplateContext is a read-only snapshot of the invoking message, built
// fresh per invocation. Templates and defaults reach it through "ctx."
// paths; a path that does not exist resolves to "None", never an error.
type TemplateContext struct {
	Author  Author
	Channel Channel
	Guild   Guild
	Message string
}

// Resolve looks up a dotted path like "author.name" or "guild". "server"
// is an alias for "guild".
func (t *TemplateContext) Resolve(path string) string {
	head, rest, hasRest := strings.Cut(path, ".")

	switch head {
	case "author":
		return resolveAttr(t.Author, rest, hasRest)
	case "channel":
		return resolveAttr(t.Channel, rest, hasRest)
	case "guild", "server":
		return resolveAttr(t.Guild, rest, hasRest)
	case "message":
		if hasRest {
			return missing
		}
		return t.Message
	default:
		return missing
	}
}

type attrLookup interface {
	String() string
	Attr(name string) (string, bool)
}

func resolveAttr(v attrLookup, attr string, hasAttr bool) string {
	if !hasAttr {
		return v.String()
	}
	s, ok := v.Attr(attr)
	if !ok {
		return missing
	}
	return s
}
