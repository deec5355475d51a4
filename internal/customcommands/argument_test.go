package customcommands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionTags(t *testing.T) {
	tests := []struct {
		tag  string
		want Conversion
		ok   bool
	}{
		{"", ConvertNone, true},
		{"MemberConverter", ConvertMember, true},
		{"GuildChannelConverter", ConvertChannel, true},
		{"IntConverter", ConvertNone, false},
		{"memberconverter", ConvertNone, false},
	}
	for _, tt := range tests {
		got, err := ConversionFromTag(tt.tag)
		if tt.ok {
			require.NoError(t, err, "tag %q", tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.tag, got.Tag())
		} else {
			assert.ErrorIs(t, err, ErrUnknownConversion, "tag %q", tt.tag)
		}
	}
}

func TestConversionWords(t *testing.T) {
	tests := []struct {
		word string
		want Conversion
		ok   bool
	}{
		{"member", ConvertMember, true},
		{"user", ConvertMember, true},
		{"channel", ConvertChannel, true},
		{"none", ConvertNone, true},
		{"MEMBER", ConvertMember, true},
		{"integer", ConvertNone, false},
	}
	for _, tt := range tests {
		got, ok := ConversionFromWord(tt.word)
		assert.Equal(t, tt.ok, ok, "word %q", tt.word)
		if ok {
			assert.Equal(t, tt.want, got, "word %q", tt.word)
		}
	}
}

func TestParseDefault(t *testing.T) {
	d := ParseDefault("5")
	assert.True(t, d.IsSet())
	assert.False(t, d.IsRef())
	assert.Equal(t, "5", d.Literal())

	d = ParseDefault("ctx.author.name")
	assert.True(t, d.IsSet())
	assert.True(t, d.IsRef())
	assert.Equal(t, "author.name", d.Path())

	d = NoDefault()
	assert.False(t, d.IsSet())
}

func TestValidateArgs(t *testing.T) {
	req := func(name string) Argument { return Argument{Name: name, Default: NoDefault()} }
	opt := func(name string) Argument { return Argument{Name: name, Default: LiteralDefault("x")} }

	assert.NoError(t, validateArgs(nil))
	assert.NoError(t, validateArgs([]Argument{req("a"), req("b"), opt("c")}))

	var cerr *ConstructionError
	assert.ErrorAs(t, validateArgs([]Argument{req("")}), &cerr)
	assert.ErrorAs(t, validateArgs([]Argument{req("a"), opt("a")}), &cerr)
	assert.ErrorAs(t, validateArgs([]Argument{opt("a"), req("b")}), &cerr)
}
