package customcommands

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var (
	memberMentionRe  = regexp.MustCompile(`^<@!?(\d+)>$`)
	channelMentionRe = regexp.MustCompile(`^<#(\d+)>$`)
	snowflakeRe      = regexp.MustCompile(`^\d{15,20}$`)
)

// StateConverter resolves member and channel tokens against one guild,
// preferring the session state cache and falling back to the REST API.
type StateConverter struct {
	session *discordgo.Session
	guildID string
}

func NewStateConverter(s *discordgo.Session, guildID string) *StateConverter {
	return &StateConverter{session: s, guildID: guildID}
}

func (c *StateConverter) Convert(kind Conversion, raw string) (Value, error) {
	switch kind {
	case ConvertMember:
		return c.member(raw)
	case ConvertChannel:
		return c.channel(raw)
	default:
		return Literal(raw), nil
	}
}

func (c *StateConverter) member(raw string) (Value, error) {
	if m := memberMentionRe.FindStringSubmatch(raw); m != nil {
		return c.memberByID(m[1])
	}
	if snowflakeRe.MatchString(raw) {
		return c.memberByID(raw)
	}

	guild, err := c.session.State.Guild(c.guildID)
	if err == nil {
		lowered := strings.ToLower(raw)
		for _, member := range guild.Members {
			if strings.ToLower(member.User.Username) == lowered ||
				strings.ToLower(member.Nick) == lowered ||
				strings.ToLower(member.User.GlobalName) == lowered {
				return memberValue(member), nil
			}
		}
	}

	found, err := c.session.GuildMembersSearch(c.guildID, raw, 1)
	if err != nil || len(found) == 0 {
		return nil, fmt.Errorf("member %q not found", raw)
	}
	return memberValue(found[0]), nil
}

func (c *StateConverter) memberByID(id string) (Value, error) {
	member, err := c.session.State.Member(c.guildID, id)
	if err != nil {
		member, err = c.session.GuildMember(c.guildID, id)
		if err != nil {
			return nil, fmt.Errorf("member %q not found", id)
		}
	}
	return memberValue(member), nil
}

func (c *StateConverter) channel(raw string) (Value, error) {
	if m := channelMentionRe.FindStringSubmatch(raw); m != nil {
		return c.channelByID(m[1])
	}
	if snowflakeRe.MatchString(raw) {
		return c.channelByID(raw)
	}

	guild, err := c.session.State.Guild(c.guildID)
	if err == nil {
		lowered := strings.ToLower(raw)
		for _, ch := range guild.Channels {
			if strings.ToLower(ch.Name) == lowered {
				return channelValue(ch), nil
			}
		}
	}
	return nil, fmt.Errorf("channel %q not found", raw)
}

func (c *StateConverter) channelByID(id string) (Value, error) {
	ch, err := c.session.State.Channel(id)
	if err != nil {
		ch, err = c.session.Channel(id)
		if err != nil {
			return nil, fmt.Errorf("channel %q not found", id)
		}
	}
	if ch.GuildID != c.guildID {
		return nil, fmt.Errorf("channel %q not found", id)
	}
	return channelValue(ch), nil
}

func memberValue(m *discordgo.Member) Author {
	nick := m.Nick
	if nick == "" {
		nick = m.User.GlobalName
	}
	if nick == "" {
		nick = m.User.Username
	}
	return Author{
		Name:          m.User.Username,
		Discriminator: m.User.Discriminator,
		Nick:          nick,
		Mention:       m.User.Mention(),
		ID:            m.User.ID,
	}
}

func channelValue(ch *discordgo.Channel) Channel {
	return Channel{Name: ch.Name, Mention: ch.Mention()}
}
