package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type AdviceCommand struct{}

func (c *AdviceCommand) Name() string        { return "advice" }
func (c *AdviceCommand) Description() string { return "Questionable life advice on demand" }
func (c *AdviceCommand) Aliases() []string   { return []string{} }

func (c *AdviceCommand) Group() string    { return "fun" }
func (c *AdviceCommand) Category() string { return "🎲 Fun" }

func (c *AdviceCommand) RequireAdmin() bool { return false }
func (c *AdviceCommand) RequireDev() bool   { return false }

func (c *AdviceCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "topic",
				Description: "Search advice about a topic",
			},
		},
	}
}

func (c *AdviceCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	var advice string
	var err error
	if opt, found := optionMap(slash.Event)["topic"]; found {
		advice, err = slash.Deps.API.SearchAdvice(context.Background(), opt.StringValue())
	} else {
		advice, err = slash.Deps.API.RandomAdvice(context.Background())
	}
	if err != nil {
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("The oracle is silent: %v", err))
	}
	return respond(slash.Session, slash.Event, advice)
}

func init() {
	Register(ApplyMiddlewares(
		&AdviceCommand{},
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
