package command

import (
	"context"
	"fmt"

	"bookshelf/internal/api"

	"github.com/bwmarrin/discordgo"
)

type APODCommand struct{}

func (c *APODCommand) Name() string        { return "apod" }
func (c *APODCommand) Description() string { return "NASA Astronomy Picture of the Day" }
func (c *APODCommand) Aliases() []string   { return []string{} }

func (c *APODCommand) Group() string    { return "space" }
func (c *APODCommand) Category() string { return "🔭 Space" }

func (c *APODCommand) RequireAdmin() bool { return false }
func (c *APODCommand) RequireDev() bool   { return false }

func (c *APODCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "date",
				Description: "Picture for a specific day (YYYY-MM-DD)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "random",
				Description: "Pick a random day instead of today",
			},
		},
	}
}

func (c *APODCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	session := slash.Session
	event := slash.Event

	opts := optionMap(event)
	date := ""
	random := false
	if opt, ok := opts["date"]; ok {
		date = opt.StringValue()
	}
	if opt, ok := opts["random"]; ok {
		random = opt.BoolValue()
	}

	var entry *api.APOD
	var err error
	if random {
		entry, err = slash.Deps.API.APODRandom(context.Background())
	} else {
		entry, err = slash.Deps.API.APODToday(context.Background(), date)
	}
	if err != nil {
		return respondEphemeral(session, event, fmt.Sprintf("NASA is not answering right now: %v", err))
	}

	embed := &discordgo.MessageEmbed{
		Title:       entry.Title,
		Description: entry.Explanation,
		Color:       embedColor,
		Image:       &discordgo.MessageEmbedImage{URL: entry.Image()},
		Footer:      &discordgo.MessageEmbedFooter{Text: entry.Date},
	}
	if entry.Copyright != "" {
		embed.Footer.Text = fmt.Sprintf("%s · © %s", entry.Date, entry.Copyright)
	}
	return respondEmbed(session, event, embed)
}

func init() {
	Register(ApplyMiddlewares(
		&APODCommand{},
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
