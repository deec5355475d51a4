package command

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type UwuifyCommand struct{}

func (c *UwuifyCommand) Name() string        { return "uwuify" }
func (c *UwuifyCommand) Description() string { return "uwu." }
func (c *UwuifyCommand) Aliases() []string   { return []string{} }

func (c *UwuifyCommand) Group() string    { return "text" }
func (c *UwuifyCommand) Category() string { return "✏️ Text" }

func (c *UwuifyCommand) RequireAdmin() bool { return false }
func (c *UwuifyCommand) RequireDev() bool   { return false }

func (c *UwuifyCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "The text to uwuify",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "level",
				Description: "How far gone the result should be",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "owo", Value: "owo"},
					{Name: "uwu", Value: "uwu"},
					{Name: "uvu", Value: "uvu"},
				},
			},
		},
	}
}

func (c *UwuifyCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	opts := optionMap(slash.Event)
	text := opts["text"].StringValue()
	level := "owo"
	if opt, found := opts["level"]; found {
		level = opt.StringValue()
	}

	return respond(slash.Session, slash.Event, Owoify(text, level))
}

var (
	owoSmallWords = regexp.MustCompile(`(?i)\b(small|little)\b`)
	owoCuteWords  = regexp.MustCompile(`(?i)\b(cute|nice)\b`)
	owoNy         = regexp.MustCompile(`(?i)n([aeiou])`)
	owoFaces      = []string{"owo", "UwU", ">w<", "^w^", "(・`ω´・)", ";;w;;", "^•ﻌ•^", ":3"}
)

// Owoify rewrites text in the owo register. Levels stack: "owo" swaps
// letters and words, "uwu" adds stuttering, "uvu" tacks on faces too.
func Owoify(text, level string) string {
	out := owoSmallWords.ReplaceAllString(text, "smol")
	out = owoCuteWords.ReplaceAllString(out, "kawaii~")
	out = strings.NewReplacer("r", "w", "l", "w", "R", "W", "L", "W").Replace(out)
	out = owoNy.ReplaceAllString(out, "ny$1")

	if level == "uwu" || level == "uvu" {
		words := strings.Fields(out)
		for i, w := range words {
			if len(w) > 2 && rand.Intn(4) == 0 {
				words[i] = fmt.Sprintf("%c-%s", w[0], w)
			}
		}
		out = strings.Join(words, " ")
	}
	if level == "uvu" {
		out = fmt.Sprintf("%s %s", out, owoFaces[rand.Intn(len(owoFaces))])
	}
	return out
}

func init() {
	Register(ApplyMiddlewares(
		&UwuifyCommand{},
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
