package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type CommandsCommand struct{}

func (c *CommandsCommand) Name() string        { return "commands" }
func (c *CommandsCommand) Description() string { return "Manage command groups and view usage" }
func (c *CommandsCommand) Aliases() []string   { return []string{} }

func (c *CommandsCommand) Group() string    { return "" }
func (c *CommandsCommand) Category() string { return "🛠️ Maintenance" }

func (c *CommandsCommand) RequireAdmin() bool { return true }
func (c *CommandsCommand) RequireDev() bool   { return false }

func (c *CommandsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "toggle",
				Description: "Enable or disable a command group in this server",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "group",
						Description: "Group to toggle",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show which groups are disabled",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "log",
				Description: "Show recent command usage",
			},
		},
	}
}

func (c *CommandsCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	sub := slash.Event.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "toggle":
		return c.toggle(slash, sub.Options[0].StringValue())
	case "status":
		return c.status(slash)
	case "log":
		return c.log(slash)
	}
	return nil
}

func (c *CommandsCommand) toggle(slash *SlashContext, group string) error {
	store := slash.Deps.Storage
	guildID := slash.Event.GuildID

	known := map[string]bool{}
	for _, cmd := range All() {
		if cmd.Group() != "" {
			known[cmd.Group()] = true
		}
	}
	if !known[group] {
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Unknown group `%s`.", group))
	}

	disabled, err := store.IsGroupDisabled(guildID, group)
	if err != nil {
		return err
	}

	if disabled {
		if err := store.EnableGroup(guildID, group); err != nil {
			return respondEphemeral(slash.Session, slash.Event, "Failed to enable the group.")
		}
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Group `%s` enabled.", group))
	}
	if err := store.DisableGroup(guildID, group); err != nil {
		return respondEphemeral(slash.Session, slash.Event, "Failed to disable the group.")
	}
	return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Group `%s` disabled.", group))
}

func (c *CommandsCommand) status(slash *SlashContext) error {
	groups := map[string]bool{}
	for _, cmd := range All() {
		if cmd.Group() != "" {
			groups[cmd.Group()] = true
		}
	}

	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, g := range names {
		disabled, err := slash.Deps.Storage.IsGroupDisabled(slash.Event.GuildID, g)
		state := "enabled"
		if err == nil && disabled {
			state = "disabled"
		}
		fmt.Fprintf(&sb, "`%s` — %s\n", g, state)
	}
	return respondEphemeral(slash.Session, slash.Event, sb.String())
}

func (c *CommandsCommand) log(slash *SlashContext) error {
	history, err := slash.Deps.Storage.FetchCommandHistory(slash.Event.GuildID)
	if err != nil {
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Failed to fetch history: %v", err))
	}
	if len(history) == 0 {
		return respondEphemeral(slash.Session, slash.Event, "No commands logged yet.")
	}

	var sb strings.Builder
	for i := len(history) - 1; i >= 0; i-- {
		rec := history[i]
		fmt.Fprintf(&sb, "<t:%d:R> **%s** used `%s` in #%s\n",
			rec.Datetime.Unix(), rec.Username, rec.Command, rec.ChannelName)
	}
	return respondEphemeral(slash.Session, slash.Event, sb.String())
}

func init() {
	Register(ApplyMiddlewares(
		&CommandsCommand{},
		WithGuildOnly(),
		WithAdminCheck(),
		WithCommandLogger(),
	))
}
