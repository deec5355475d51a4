package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List everything the bot can do" }
func (c *HelpCommand) Aliases() []string   { return []string{} }

func (c *HelpCommand) Group() string    { return "" }
func (c *HelpCommand) Category() string { return "🛠️ Maintenance" }

func (c *HelpCommand) RequireAdmin() bool { return false }
func (c *HelpCommand) RequireDev() bool   { return false }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	byCategory := map[string][]Command{}
	for _, cmd := range All() {
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	embed := &discordgo.MessageEmbed{
		Title: "BookShelf Commands",
		Color: embedColor,
	}
	for _, cat := range categories {
		cmds := byCategory[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

		var sb strings.Builder
		for _, cmd := range cmds {
			fmt.Fprintf(&sb, "`/%s` — %s\n", cmd.Name(), cmd.Description())
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  cat,
			Value: sb.String(),
		})
	}

	prefix := "bk "
	if slash.Deps != nil && slash.Deps.Config != nil {
		prefix = slash.Deps.Config.MessagePrefix
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Custom commands: %scc create <name> · %scc list · %scc delete <name>", prefix, prefix, prefix),
	}

	return respondEmbedEphemeral(slash.Session, slash.Event, embed)
}

func init() {
	Register(ApplyMiddlewares(
		&HelpCommand{},
		WithCommandLogger(),
	))
}
