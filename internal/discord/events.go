package discord

import (
	"errors"
	"fmt"
	"strings"

	"bookshelf/internal/customcommands"
	"bookshelf/internal/logger"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	// Wizard replies come unprefixed, so an active session always gets the
	// message first.
	if b.deps.Wizards.Active(m.ChannelID, m.Author.ID) {
		reply, res, handled := b.deps.Wizards.Deliver(m.ChannelID, m.Author.ID, m.Content)
		if handled {
			if reply != "" {
				_, _ = s.ChannelMessageSend(m.ChannelID, reply)
			}
			if res != nil {
				b.finishWizard(s, m, res)
			}
			return
		}
	}

	if !strings.HasPrefix(m.Content, b.cfg.MessagePrefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(m.Content, b.cfg.MessagePrefix))
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "cc", "customcommand", "customcommands":
		b.handleManage(s, m, args)
		return
	case "getclasses":
		b.sendClasses(s, m)
		return
	}

	if bound, ok := b.deps.Registry.Lookup(m.GuildID, name); ok {
		b.invokeCustom(s, m, name, bound, args)
	}
}

// finishWizard persists what the wizard collected and announces the result.
func (b *Bot) finishWizard(s *discordgo.Session, m *discordgo.MessageCreate, res *customcommands.Result) {
	_, err := b.deps.Commands.Create(res.Name, res.Args, res.Output, res.Origin)
	if err != nil {
		_, _ = s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Couldn't create the command: %v", err))
		return
	}
	if err := b.deps.Commands.Save(); err != nil {
		logger.Store("Failed to save custom commands: %v", err)
	}
	_, _ = s.ChannelMessageSend(m.ChannelID, "Custom command successfully created.")
}

func (b *Bot) handleManage(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		_, _ = s.ChannelMessageSend(m.ChannelID, "Custom commands only work inside a server.")
		return
	}
	if len(args) == 0 {
		b.sendManageHelp(s, m)
		return
	}

	switch args[0] {
	case "create":
		if len(args) < 2 {
			_, _ = s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Usage: `%scc create <name>`", b.cfg.MessagePrefix))
			return
		}
		b.startWizard(s, m, args[1])

	case "delete":
		if len(args) < 2 {
			_, _ = s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Usage: `%scc delete <name>`", b.cfg.MessagePrefix))
			return
		}
		b.deleteCustom(s, m, args[1])

	case "list":
		b.listCustom(s, m)

	default:
		b.sendManageHelp(s, m)
	}
}

func (b *Bot) startWizard(s *discordgo.Session, m *discordgo.MessageCreate, name string) {
	if _, exists := b.deps.Commands.Get(name, m.GuildID); exists {
		_, _ = s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("A command named `%s` already exists here.", name))
		return
	}

	origin := customcommands.Origin{
		GuildID: m.GuildID,
		Author:  fmt.Sprintf("%s#%s", m.Author.Username, m.Author.Discriminator),
	}
	prompt, err := b.deps.Wizards.Begin(m.ChannelID, m.Author.ID, name, origin)
	if err != nil {
		_, _ = s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}
	_, _ = s.ChannelMessageSend(m.ChannelID, prompt)
}

func (b *Bot) deleteCustom(s *discordgo.Session, m *discordgo.MessageCreate, name string) {
	def, ok := b.deps.Commands.Get(name, m.GuildID)
	if !ok {
		_, _ = s.ChannelMessageSend(m.ChannelID, "That command was not found.")
		return
	}

	author := fmt.Sprintf("%s#%s", m.Author.Username, m.Author.Discriminator)
	if def.Origin.Author != author && !b.memberIsAdmin(s, m) {
		_, _ = s.ChannelMessageSend(m.ChannelID, "You can't delete this command.")
		return
	}

	if b.deps.Commands.Delete(name, m.GuildID) {
		if err := b.deps.Commands.Save(); err != nil {
			logger.Store("Failed to save custom commands: %v", err)
		}
		_, _ = s.ChannelMessageSend(m.ChannelID, "Command successfully deleted.")
		return
	}
	_, _ = s.ChannelMessageSend(m.ChannelID, "That command was not found.")
}

func (b *Bot) listCustom(s *discordgo.Session, m *discordgo.MessageCreate) {
	defs := b.deps.Commands.List(m.GuildID)
	if len(defs) == 0 {
		_, _ = s.ChannelMessageSend(m.ChannelID, "No custom commands here yet.")
		return
	}

	var sb strings.Builder
	for _, def := range defs {
		fmt.Fprintf(&sb, "`%s%s` — by %s\n", b.cfg.MessagePrefix, def.Usage(), def.Origin.Author)
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Custom Commands",
		Description: sb.String(),
		Color:       embedColor,
	}
	_, _ = s.ChannelMessageSendEmbed(m.ChannelID, embed)
}

func (b *Bot) sendManageHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	p := b.cfg.MessagePrefix
	_, _ = s.ChannelMessageSend(m.ChannelID, fmt.Sprintf(
		"Custom commands: `%scc create <name>`, `%scc delete <name>`, `%scc list`. See `%sgetclasses` for template context.",
		p, p, p, p))
}

// sendClasses shows what an output template can reference through ctx.
func (b *Bot) sendClasses(s *discordgo.Session, m *discordgo.MessageCreate) {
	embed := &discordgo.MessageEmbed{
		Title: "Context `ctx`",
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Author",
				Value: "`ctx.author` — name, discriminator, nick, mention, id",
			},
			{
				Name:   "Channel",
				Value:  "`ctx.channel` — name, mention",
				Inline: false,
			},
			{
				Name:   "Guild (server)",
				Value:  "`ctx.guild` / `ctx.server` — name",
				Inline: false,
			},
			{
				Name:   "Message",
				Value:  "`ctx.message` — everything after the command name",
				Inline: false,
			},
		},
	}
	_, _ = s.ChannelMessageSendEmbed(m.ChannelID, embed)
}

// invokeCustom runs a stored command against the message and maps engine
// errors to user-facing replies.
func (b *Bot) invokeCustom(s *discordgo.Session, m *discordgo.MessageCreate, name string, bound *customcommands.Bound, tokens []string) {
	tctx := customcommands.Snapshot(s, m, b.cfg.MessagePrefix, name)
	conv := customcommands.NewStateConverter(s, m.GuildID)

	out, err := bound.Invoke(tokens, tctx, conv)
	if err != nil {
		var arity *customcommands.ArityError
		var convErr *customcommands.ConversionError
		var render *customcommands.RenderError
		switch {
		case errors.As(err, &arity):
			_, _ = s.ChannelMessageSend(m.ChannelID, fmt.Sprintf(
				"Missing arguments. Usage: `%s%s`", b.cfg.MessagePrefix, bound.Def.Usage()))
		case errors.As(err, &convErr):
			what := "member"
			if convErr.Kind == customcommands.ConvertChannel {
				what = "channel"
			}
			_, _ = s.ChannelMessageSend(m.ChannelID, fmt.Sprintf(
				"Couldn't find a %s matching `%s`.", what, convErr.Token))
		case errors.As(err, &render):
			_, _ = s.ChannelMessageSend(m.ChannelID,
				"This command may not be formatted correctly. Try deleting and remaking it.")
		default:
			logger.Error("Custom command %s failed: %v", name, err)
		}
		return
	}
	if out != "" {
		_, _ = s.ChannelMessageSend(m.ChannelID, out)
	}
}

func (b *Bot) memberIsAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if m.Member == nil {
		return false
	}
	if m.Author.ID == b.cfg.DeveloperID {
		return true
	}
	guild, err := s.State.Guild(m.GuildID)
	if err == nil && guild != nil && m.Author.ID == guild.OwnerID {
		return true
	}
	for _, r := range m.Member.Roles {
		role, _ := s.State.Role(m.GuildID, r)
		if role != nil && role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}
