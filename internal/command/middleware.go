package command

import (
	"bookshelf/internal/logger"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *wrappedCommand) Component(ctx *ComponentContext) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	if ch, ok := w.Command.(ComponentHandler); ok {
		return ch.Component(ctx)
	}
	return nil
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				switch v := ctx.(type) {
				case *SlashContext:
					if v.Event.GuildID == "" {
						return respondEphemeral(v.Session, v.Event, "This command only works inside a server.")
					}
				case *MessageContext:
					if v.Event.GuildID == "" {
						return nil
					}
				}
				return runAny(cmd, ctx)
			},
		}
	}
}

func WithGroupAccessCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				var guildID string
				var deps *Deps

				switch v := ctx.(type) {
				case *SlashContext:
					guildID, deps = v.Event.GuildID, v.Deps
				case *ComponentContext:
					guildID, deps = v.Event.GuildID, v.Deps
				case *MessageContext:
					guildID, deps = v.Event.GuildID, v.Deps
				default:
					return runAny(cmd, ctx)
				}

				if cmd.Group() != "" && deps != nil && deps.Storage != nil {
					disabled, err := deps.Storage.IsGroupDisabled(guildID, cmd.Group())
					if err == nil && disabled {
						return nil
					}
				}
				return runAny(cmd, ctx)
			},
		}
	}
}

func WithAdminCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if !cmd.RequireAdmin() {
					return runAny(cmd, ctx)
				}
				if v, ok := ctx.(*SlashContext); ok {
					if v.Event.Member == nil || !isAdmin(v.Session, v.Deps, v.Event.GuildID, v.Event.Member) {
						return respondEphemeral(v.Session, v.Event, "You must be a server admin to use this command.")
					}
				}
				return runAny(cmd, ctx)
			},
		}
	}
}

func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				err := runAny(cmd, ctx)

				switch v := ctx.(type) {
				case *SlashContext:
					if v.Event.Member != nil && v.Deps != nil && v.Deps.Storage != nil {
						user := v.Event.Member.User
						if e := logCommand(v.Session, v.Deps.Storage, v.Event.GuildID, v.Event.ChannelID, user.ID, user.Username, cmd.Name()); e != nil {
							logger.Warn("Failed to log command /%s: %v", cmd.Name(), e)
						}
					}
				case *MessageContext:
					if v.Deps != nil && v.Deps.Storage != nil {
						user := v.Event.Author
						if e := logCommand(v.Session, v.Deps.Storage, v.Event.GuildID, v.Event.ChannelID, user.ID, user.Username, cmd.Name()); e != nil {
							logger.Warn("Failed to log command %s: %v", cmd.Name(), e)
						}
					}
				}
				return err
			},
		}
	}
}

// runAny dispatches through the handler matching the context type so
// wrapped components keep working under middleware.
func runAny(cmd Command, ctx interface{}) error {
	if v, ok := ctx.(*ComponentContext); ok {
		if ch, ok := cmd.(ComponentHandler); ok {
			return ch.Component(v)
		}
	}
	return cmd.Run(ctx)
}
