package command

import (
	"bookshelf/internal/api"
	"bookshelf/internal/config"
	"bookshelf/internal/customcommands"
	"bookshelf/internal/db"
	"bookshelf/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Group() string
	Category() string
	RequireAdmin() bool
	RequireDev() bool
	Run(ctx interface{}) error
}

// Deps bundles the shared services every command can reach.
type Deps struct {
	Config   *config.Config
	Storage  *storage.Storage
	DB       *db.DB
	API      *api.Client
	Commands *customcommands.Store
	Wizards  *customcommands.Manager
	Registry *customcommands.Registry
}

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ComponentHandler interface {
	Component(*ComponentContext) error
}

type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Deps    *Deps
}

type ComponentContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Deps    *Deps
}

type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Args    []string
	Deps    *Deps
}
