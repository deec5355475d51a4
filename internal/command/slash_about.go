package command

import (
	"fmt"

	"bookshelf/internal/version"

	"github.com/bwmarrin/discordgo"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "About this bot" }
func (c *AboutCommand) Aliases() []string   { return []string{} }

func (c *AboutCommand) Group() string    { return "" }
func (c *AboutCommand) Category() string { return "🛠️ Maintenance" }

func (c *AboutCommand) RequireAdmin() bool { return false }
func (c *AboutCommand) RequireDev() bool   { return false }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	embed := &discordgo.MessageEmbed{
		Title:       version.AppName,
		Description: "A library-flavored companion: custom commands, book search, space pictures, elections, and more.",
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Version", Value: version.Semver, Inline: true},
			{Name: "Built", Value: version.BuildDate, Inline: true},
		},
	}
	return respondEmbed(slash.Session, slash.Event, embed)
}

func init() {
	Register(ApplyMiddlewares(
		&AboutCommand{},
		WithCommandLogger(),
	))
}
