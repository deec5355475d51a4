package customcommands

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Snapshot projects the triggering message into a TemplateContext.
// "ctx."-referencing defaults resolve against a fresh snapshot per
// invocation.
func Snapshot(s *discordgo.Session, m *discordgo.MessageCreate, prefix, commandName string) *TemplateContext {
	tctx := &TemplateContext{}

	if m.Author != nil {
		author := Author{
			Name:          m.Author.Username,
			Discriminator: m.Author.Discriminator,
			Nick:          m.Author.GlobalName,
			Mention:       m.Author.Mention(),
			ID:            m.Author.ID,
		}
		if m.Member != nil && m.Member.Nick != "" {
			author.Nick = m.Member.Nick
		}
		if author.Nick == "" {
			author.Nick = author.Name
		}
		tctx.Author = author
	}

	if ch, err := s.State.Channel(m.ChannelID); err == nil {
		tctx.Channel = Channel{Name: ch.Name, Mention: ch.Mention()}
	}

	if guild, err := s.State.Guild(m.GuildID); err == nil {
		tctx.Guild = Guild{Name: guild.Name}
	}

	// Message text with the invoking prefix and command name stripped.
	text := strings.TrimPrefix(m.Content, prefix)
	text = strings.TrimPrefix(text, commandName)
	tctx.Message = strings.TrimSpace(text)

	return tctx
}
