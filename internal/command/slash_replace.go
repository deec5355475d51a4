package command

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type ReplaceCommand struct{}

func (c *ReplaceCommand) Name() string        { return "replace" }
func (c *ReplaceCommand) Description() string { return "Replace a character with another" }
func (c *ReplaceCommand) Aliases() []string   { return []string{} }

func (c *ReplaceCommand) Group() string    { return "text" }
func (c *ReplaceCommand) Category() string { return "✏️ Text" }

func (c *ReplaceCommand) RequireAdmin() bool { return false }
func (c *ReplaceCommand) RequireDev() bool   { return false }

func (c *ReplaceCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "The text to rewrite",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "from",
				Description: "Character(s) to replace",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "to",
				Description: "Replacement character(s)",
				Required:    true,
			},
		},
	}
}

func (c *ReplaceCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	opts := optionMap(slash.Event)
	text := opts["text"].StringValue()
	from := opts["from"].StringValue()
	to := opts["to"].StringValue()

	return respond(slash.Session, slash.Event, strings.ReplaceAll(text, from, to))
}

func init() {
	Register(ApplyMiddlewares(
		&ReplaceCommand{},
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
