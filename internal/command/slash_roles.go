package command

import (
	"context"
	"fmt"

	"bookshelf/internal/db"

	"github.com/bwmarrin/discordgo"
)

// roleMenuCustomID is the component ID shared by every self-assign menu.
const roleMenuCustomID = "rolemenu"

type RolesCommand struct{}

func (c *RolesCommand) Name() string        { return "role" }
func (c *RolesCommand) Description() string { return "Let members grab roles from a select menu" }
func (c *RolesCommand) Aliases() []string   { return []string{} }

func (c *RolesCommand) Group() string    { return "roles" }
func (c *RolesCommand) Category() string { return "🎭 Roles" }

func (c *RolesCommand) RequireAdmin() bool { return true }
func (c *RolesCommand) RequireDev() bool   { return false }

func (c *RolesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	roleOpts := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel",
			Description: "Where to post the menu",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "title",
			Description: "Title shown above the menu",
			Required:    true,
		},
	}
	for i := 1; i <= 5; i++ {
		roleOpts = append(roleOpts, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        fmt.Sprintf("role%d", i),
			Description: fmt.Sprintf("Role option %d", i),
			Required:    i == 1,
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "select",
				Description: "Post a role select menu",
				Options:     roleOpts,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a role select menu",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "message",
						Description: "ID of the menu message",
						Required:    true,
					},
				},
			},
		},
	}
}

func (c *RolesCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	sub := slash.Event.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "select":
		return c.create(slash, sub)
	case "remove":
		return c.remove(slash, sub)
	}
	return nil
}

func (c *RolesCommand) create(slash *SlashContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	var channel *discordgo.Channel
	title := ""
	var roles []*discordgo.Role
	for _, opt := range sub.Options {
		switch {
		case opt.Name == "channel":
			channel = opt.ChannelValue(slash.Session)
		case opt.Name == "title":
			title = opt.StringValue()
		default:
			roles = append(roles, opt.RoleValue(slash.Session, slash.Event.GuildID))
		}
	}

	menuOptions := make([]discordgo.SelectMenuOption, 0, len(roles))
	dbOptions := make([]db.RoleOption, 0, len(roles))
	for _, role := range roles {
		menuOptions = append(menuOptions, discordgo.SelectMenuOption{
			Label: role.Name,
			Value: role.ID,
		})
		dbOptions = append(dbOptions, db.RoleOption{RoleID: role.ID, Description: role.Name})
	}

	maxValues := len(menuOptions)
	msg, err := slash.Session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{Title: title, Color: embedColor}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						CustomID:    roleMenuCustomID,
						Placeholder: "Pick your roles",
						MinValues:   new(int),
						MaxValues:   maxValues,
						Options:     menuOptions,
					},
				},
			},
		},
	})
	if err != nil {
		return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("I couldn't send a message in <#%s>.", channel.ID))
	}

	err = slash.Deps.DB.InsertMenu(context.Background(), msg.ID, slash.Event.GuildID, channel.ID,
		slash.Event.Member.User.ID, dbOptions)
	if err != nil {
		return err
	}
	return respondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Menu posted in <#%s>.", channel.ID))
}

func (c *RolesCommand) remove(slash *SlashContext, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	messageID := sub.Options[0].StringValue()

	author, err := slash.Deps.DB.MenuAuthor(context.Background(), messageID)
	if err != nil {
		return err
	}
	if author == "" {
		return respondEphemeral(slash.Session, slash.Event, "That message is not a role select menu.")
	}
	if author != slash.Event.Member.User.ID && !isAdmin(slash.Session, slash.Deps, slash.Event.GuildID, slash.Event.Member) {
		return respondEphemeral(slash.Session, slash.Event, "You can't remove this menu.")
	}

	if err := slash.Deps.DB.DeleteMenu(context.Background(), messageID); err != nil {
		return err
	}
	return respondEphemeral(slash.Session, slash.Event, "Menu removed. You can delete the message now.")
}

// Component applies the member's selection: selected roles are added, the
// menu's other roles are taken away.
func (c *RolesCommand) Component(ctx *ComponentContext) error {
	event := ctx.Event
	data := event.MessageComponentData()

	options, err := ctx.Deps.DB.MenuOptions(context.Background(), event.Message.ID)
	if err != nil || len(options) == 0 {
		return respondEphemeral(ctx.Session, event, "This menu is no longer active.")
	}

	selected := make(map[string]bool, len(data.Values))
	for _, v := range data.Values {
		selected[v] = true
	}

	for _, opt := range options {
		if selected[opt.RoleID] {
			err = ctx.Session.GuildMemberRoleAdd(event.GuildID, event.Member.User.ID, opt.RoleID)
		} else {
			err = ctx.Session.GuildMemberRoleRemove(event.GuildID, event.Member.User.ID, opt.RoleID)
		}
		if err != nil {
			return respondEphemeral(ctx.Session, event, "I couldn't update your roles. Check my permissions.")
		}
	}
	return respondEphemeral(ctx.Session, event, "Roles updated.")
}

func init() {
	Register(ApplyMiddlewares(
		&RolesCommand{},
		WithGuildOnly(),
		WithAdminCheck(),
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
