package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const maxBookResults = 5

type BooksCommand struct{}

func (c *BooksCommand) Name() string        { return "books" }
func (c *BooksCommand) Description() string { return "Search dbooks.org for free books" }
func (c *BooksCommand) Aliases() []string   { return []string{} }

func (c *BooksCommand) Group() string    { return "books" }
func (c *BooksCommand) Category() string { return "📚 Books" }

func (c *BooksCommand) RequireAdmin() bool { return false }
func (c *BooksCommand) RequireDev() bool   { return false }

func (c *BooksCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Title, author, or topic to search for",
				Required:    true,
			},
		},
	}
}

func (c *BooksCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	query := optionMap(slash.Event)["query"].StringValue()

	books, err := slash.Deps.API.SearchBooks(context.Background(), query)
	if err != nil {
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("The shelf is stuck: %v", err))
	}
	if len(books) == 0 {
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Nothing on the shelf for `%s`.", query))
	}
	if len(books) > maxBookResults {
		books = books[:maxBookResults]
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Results for “%s”", query),
		Color: embedColor,
	}
	for _, b := range books {
		title := b.Title
		if b.Subtitle != "" {
			title = fmt.Sprintf("%s: %s", b.Title, b.Subtitle)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  title,
			Value: fmt.Sprintf("%s\n%s", b.Authors, b.URL),
		})
	}
	return respondEmbed(slash.Session, slash.Event, embed)
}

func init() {
	Register(ApplyMiddlewares(
		&BooksCommand{},
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
