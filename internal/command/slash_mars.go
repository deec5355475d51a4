package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type MarsCommand struct{}

func (c *MarsCommand) Name() string        { return "mars" }
func (c *MarsCommand) Description() string { return "Random photo from a Mars rover" }
func (c *MarsCommand) Aliases() []string   { return []string{} }

func (c *MarsCommand) Group() string    { return "space" }
func (c *MarsCommand) Category() string { return "🔭 Space" }

func (c *MarsCommand) RequireAdmin() bool { return false }
func (c *MarsCommand) RequireDev() bool   { return false }

func (c *MarsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "rover",
				Description: "Which rover's camera roll to raid",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Curiosity", Value: "curiosity"},
					{Name: "Opportunity", Value: "opportunity"},
					{Name: "Spirit", Value: "spirit"},
				},
			},
		},
	}
}

func (c *MarsCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	rover := "curiosity"
	if opt, ok := optionMap(slash.Event)["rover"]; ok {
		rover = opt.StringValue()
	}

	photo, err := slash.Deps.API.MarsPhotoRandom(context.Background(), rover)
	if err != nil {
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Couldn't reach the rover: %v", err))
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s · %s", photo.Rover.Name, photo.Camera.FullName),
		Color: embedColor,
		Image: &discordgo.MessageEmbedImage{URL: photo.ImgSrc},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Taken %s", photo.EarthDate),
		},
	}
	return respondEmbed(slash.Session, slash.Event, embed)
}

func init() {
	Register(ApplyMiddlewares(
		&MarsCommand{},
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
