// Package discord wires the command registry, custom commands, and guild
// state to a live gateway session.
package discord

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"bookshelf/internal/command"
	"bookshelf/internal/config"
	"bookshelf/internal/db"
	"bookshelf/internal/logger"

	"github.com/bwmarrin/discordgo"
)

const electionSweepInterval = 20 * time.Minute

// Bot is the Discord frontend.
type Bot struct {
	dg   *discordgo.Session
	cfg  *config.Config
	deps *command.Deps
}

// StartBot connects and blocks until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, deps *command.Deps) error {
	b := &Bot{cfg: cfg, deps: deps}
	if err := b.run(ctx); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	go b.sweepElections(ctx)

	<-ctx.Done()
	logger.Discord("Shutdown signal received. Closing session.")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Discord("Logged in as %s (%d guilds)", r.User.Username, len(r.Guilds))

	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			logger.Discord("Leaving blacklisted guild %s", g.ID)
			if err := s.GuildLeave(g.ID); err != nil {
				logger.Error("Failed to leave guild %s: %v", g.ID, err)
			}
		}
	}

	if b.cfg.InitSlashCommands {
		go func() {
			for _, g := range r.Guilds {
				if b.isGuildBlacklisted(g.ID) {
					continue
				}
				if err := b.registerCommands(g.ID); err != nil {
					logger.Error("Failed to register commands for guild %s: %v", g.ID, err)
				}
			}
		}()
	}

	// Custom commands only answer once startup registration settled.
	b.deps.Registry.SetReady()
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.isGuildBlacklisted(g.ID) {
		logger.Discord("Leaving blacklisted guild %s (%s)", g.ID, g.Name)
		_ = s.GuildLeave(g.ID)
		return
	}
	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(g.ID); err != nil {
			logger.Error("Failed to register commands for guild %s: %v", g.ID, err)
		}
	}
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.GuildBlacklist, guildID)
}

// sweepElections finishes overdue elections and posts their results.
func (b *Bot) sweepElections(ctx context.Context) {
	ticker := time.NewTicker(electionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		due, err := b.deps.DB.DueElections(ctx, time.Now())
		if err != nil {
			logger.Election("Failed to query due elections: %v", err)
			continue
		}
		for _, e := range due {
			channelID, tally, err := b.deps.DB.FinishElection(ctx, e.GuildID)
			if err != nil {
				if !errors.Is(err, db.ErrNoElection) {
					logger.Election("Failed to finish election in guild %s: %v", e.GuildID, err)
				}
				continue
			}
			logger.Election("Election in guild %s is over, %d candidate(s)", e.GuildID, len(tally))
			embed := command.ElectionResultsEmbed(tally)
			if _, err := b.dg.ChannelMessageSendEmbed(channelID, embed); err != nil {
				logger.Election("Failed to post results in guild %s: %v", e.GuildID, err)
			}
		}
	}
}
