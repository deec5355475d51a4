package discord

import (
	"context"

	"bookshelf/internal/command"
	"bookshelf/internal/logger"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// registrationLimiter keeps startup registration under Discord's application
// command rate limit across all guilds.
var registrationLimiter = rate.NewLimiter(rate.Limit(2), 1)

// registerCommands syncs the guild's slash commands with the local registry:
// obsolete remote commands are deleted and the current set is upserted.
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID

	remote, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}

	local := buildCommandDefinitions()
	localNames := make(map[string]struct{}, len(local))
	for _, d := range local {
		localNames[d.Name] = struct{}{}
	}

	for _, rc := range remote {
		if _, keep := localNames[rc.Name]; keep {
			continue
		}
		_ = registrationLimiter.Wait(context.Background())
		logger.Discord("[%s] Deleting obsolete command: %s", guildID, rc.Name)
		if err := b.dg.ApplicationCommandDelete(appID, guildID, rc.ID); err != nil {
			logger.Error("[%s] Failed to delete %s: %v", guildID, rc.Name, err)
		}
	}

	for _, d := range local {
		_ = registrationLimiter.Wait(context.Background())
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, d); err != nil {
			logger.Error("[%s] Failed to register %s: %v", guildID, d.Name, err)
		}
	}
	logger.Discord("[%s] Registered %d command(s)", guildID, len(local))
	return nil
}

func buildCommandDefinitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range command.All() {
		if sp, ok := c.(command.SlashProvider); ok {
			if def := sp.SlashDefinition(); def != nil {
				defs = append(defs, def)
			}
		}
	}
	return defs
}
