package discord

import (
	"strings"

	"bookshelf/internal/command"
	"bookshelf/internal/logger"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x5865f2

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.dispatchSlash(s, i)
	case discordgo.InteractionMessageComponent:
		b.dispatchComponent(s, i)
	}
}

func (b *Bot) dispatchSlash(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	cmd, ok := command.Get(name)
	if !ok {
		logger.Discord("Unknown slash command: %s", name)
		return
	}

	ctx := &command.SlashContext{
		Session: s,
		Event:   i,
		Deps:    b.deps,
	}
	if err := cmd.Run(ctx); err != nil {
		logger.Error("Slash command /%s failed: %v", name, err)
	}
}

func (b *Bot) dispatchComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	// Component IDs are "<command>" or "<command>:<detail>".
	name := customID
	if idx := strings.IndexByte(customID, ':'); idx >= 0 {
		name = customID[:idx]
	}
	if name == roleMenuComponentOwner {
		name = "role"
	}

	cmd, ok := command.Get(name)
	if !ok {
		logger.Discord("Unknown component: %s", customID)
		return
	}
	handler, ok := cmd.(command.ComponentHandler)
	if !ok {
		return
	}

	ctx := &command.ComponentContext{
		Session: s,
		Event:   i,
		Deps:    b.deps,
	}
	if err := handler.Component(ctx); err != nil {
		logger.Error("Component %s failed: %v", customID, err)
	}
}

// roleMenuComponentOwner matches the custom ID used on role select menus.
const roleMenuComponentOwner = "rolemenu"
