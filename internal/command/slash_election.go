package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"bookshelf/internal/db"

	"github.com/bwmarrin/discordgo"
)

type ElectionCommand struct{}

func (c *ElectionCommand) Name() string        { return "election" }
func (c *ElectionCommand) Description() string { return "Set up a democratic election" }
func (c *ElectionCommand) Aliases() []string   { return []string{} }

func (c *ElectionCommand) Group() string    { return "democracy" }
func (c *ElectionCommand) Category() string { return "🗳️ Democracy" }

func (c *ElectionCommand) RequireAdmin() bool { return false }
func (c *ElectionCommand) RequireDev() bool   { return false }

func (c *ElectionCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minDays := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Start an election in this server",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "expiry",
						Description: "Days until the election ends automatically (1-7)",
						Required:    true,
						MinValue:    &minDays,
						MaxValue:    7,
					},
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "Channel to announce the results in",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "vote",
				Description: "Vote for someone in the running election",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "member",
						Description: "The member to vote for",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "finish",
				Description: "Finish the election manually or early",
			},
		},
	}
}

func (c *ElectionCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	sub := slash.Event.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "create":
		return c.create(slash, sub)
	case "vote":
		return c.vote(slash, sub)
	case "finish":
		return c.finish(slash)
	}
	return nil
}

func (c *ElectionCommand) create(slash *SlashContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	if !isAdmin(slash.Session, slash.Deps, slash.Event.GuildID, slash.Event.Member) {
		return respondEphemeral(slash.Session, slash.Event, "Only admins can start elections.")
	}

	days := 1
	channelID := slash.Event.ChannelID
	for _, opt := range sub.Options {
		switch opt.Name {
		case "expiry":
			days = int(opt.IntValue())
		case "channel":
			channelID = opt.ChannelValue(slash.Session).ID
		}
	}

	expiry := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	err := slash.Deps.DB.CreateElection(context.Background(), slash.Event.GuildID, channelID, expiry)
	if errors.Is(err, db.ErrElectionExists) {
		return respondEphemeral(slash.Session, slash.Event, "There is already a running election.")
	}
	if err != nil {
		return err
	}
	return respond(slash.Session, slash.Event,
		fmt.Sprintf("The polls are open! This election ends <t:%d:R>. Cast your vote with `/election vote`.", expiry.Unix()))
}

func (c *ElectionCommand) vote(slash *SlashContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	member := sub.Options[0].UserValue(slash.Session)

	updated, err := slash.Deps.DB.Vote(context.Background(), slash.Event.GuildID, slash.Event.Member.User.ID, member.ID)
	if errors.Is(err, db.ErrNoElection) {
		return respondEphemeral(slash.Session, slash.Event, "There is no election happening.")
	}
	if err != nil {
		return err
	}

	if updated {
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Your vote has been updated to %s.", member.Username))
	}
	return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("You just voted for %s.", member.Username))
}

func (c *ElectionCommand) finish(slash *SlashContext) error {
	if !isAdmin(slash.Session, slash.Deps, slash.Event.GuildID, slash.Event.Member) {
		return respondEphemeral(slash.Session, slash.Event, "Only admins can finish elections.")
	}

	channelID, tally, err := slash.Deps.DB.FinishElection(context.Background(), slash.Event.GuildID)
	if errors.Is(err, db.ErrNoElection) {
		return respondEphemeral(slash.Session, slash.Event, "There is no election happening.")
	}
	if err != nil {
		return err
	}

	embed := ElectionResultsEmbed(tally)
	if _, err := slash.Session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		return err
	}
	return respondEphemeral(slash.Session, slash.Event, "The election is over. Results are posted.")
}

// ElectionResultsEmbed formats a vote tally as a top-five leaderboard.
func ElectionResultsEmbed(tally map[string]int) *discordgo.MessageEmbed {
	if len(tally) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Election Results",
			Description: "No one voted.",
			Color:       embedColor,
		}
	}

	type entry struct {
		candidate string
		votes     int
	}
	ranked := make([]entry, 0, len(tally))
	for candidate, votes := range tally {
		ranked = append(ranked, entry{candidate, votes})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].votes > ranked[j].votes })
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}

	var sb strings.Builder
	for i, e := range ranked {
		fmt.Fprintf(&sb, "%d. <@%s> with %d vote(s)\n", i+1, e.candidate, e.votes)
	}
	return &discordgo.MessageEmbed{
		Title:       "Election Results",
		Description: sb.String(),
		Color:       embedColor,
	}
}

func init() {
	Register(ApplyMiddlewares(
		&ElectionCommand{},
		WithGuildOnly(),
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
