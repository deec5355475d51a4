package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type InsultCommand struct{}

func (c *InsultCommand) Name() string        { return "insult" }
func (c *InsultCommand) Description() string { return "Deliver a profanity-laced insult" }
func (c *InsultCommand) Aliases() []string   { return []string{} }

func (c *InsultCommand) Group() string    { return "fun" }
func (c *InsultCommand) Category() string { return "🎲 Fun" }

func (c *InsultCommand) RequireAdmin() bool { return false }
func (c *InsultCommand) RequireDev() bool   { return false }

func (c *InsultCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "target",
				Description: "Who deserves it",
			},
		},
	}
}

func (c *InsultCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	from := slash.Event.Member.User.Username
	if slash.Event.Member.Nick != "" {
		from = slash.Event.Member.Nick
	}

	target := ""
	if opt, found := optionMap(slash.Event)["target"]; found {
		user := opt.UserValue(slash.Session)
		if user != nil {
			target = user.Username
		}
	}

	insult, err := slash.Deps.API.RandomInsult(context.Background(), from, target)
	if err != nil {
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Lost for words: %v", err))
	}
	return respond(slash.Session, slash.Event, fmt.Sprintf("%s\n— *%s*", insult.Message, insult.Subtitle))
}

func init() {
	Register(ApplyMiddlewares(
		&InsultCommand{},
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
