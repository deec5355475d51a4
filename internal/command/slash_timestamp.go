package command

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

type TimestampCommand struct{}

func (c *TimestampCommand) Name() string        { return "timestamp" }
func (c *TimestampCommand) Description() string { return "Easily create a Discord timestamp" }
func (c *TimestampCommand) Aliases() []string   { return []string{} }

func (c *TimestampCommand) Group() string    { return "text" }
func (c *TimestampCommand) Category() string { return "✏️ Text" }

func (c *TimestampCommand) RequireAdmin() bool { return false }
func (c *TimestampCommand) RequireDev() bool   { return false }

var timestampStyles = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Short time (16:20)", Value: "t"},
	{Name: "Long time (16:20:30)", Value: "T"},
	{Name: "Short date (20/04/2021)", Value: "d"},
	{Name: "Long date (20 April 2021)", Value: "D"},
	{Name: "Short date/time", Value: "f"},
	{Name: "Long date/time", Value: "F"},
	{Name: "Relative (2 months ago)", Value: "R"},
}

func (c *TimestampCommand) SlashDefinition() *discordgo.ApplicationCommand {
	intOpt := func(name, desc string, min, max float64) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        name,
			Description: desc,
			MinValue:    &min,
			MaxValue:    max,
		}
	}
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			intOpt("year", "Year of the timestamp", 1970, 9999),
			intOpt("month", "Month of the timestamp", 1, 12),
			intOpt("day", "Day of the timestamp", 1, 31),
			intOpt("hour", "Hour (24-hour time)", 0, 23),
			intOpt("minute", "Minute of the timestamp", 0, 59),
			intOpt("second", "Second of the timestamp", 0, 59),
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "style",
				Description: "How Discord should render it",
				Choices:     timestampStyles,
			},
		},
	}
}

func (c *TimestampCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	opts := optionMap(slash.Event)
	now := time.Now()

	part := func(name string, fallback int) int {
		if opt, found := opts[name]; found {
			return int(opt.IntValue())
		}
		return fallback
	}

	year := part("year", now.Year())
	month := part("month", int(now.Month()))
	day := part("day", now.Day())
	hour := part("hour", now.Hour())
	minute := part("minute", now.Minute())
	second := part("second", now.Second())

	style := "f"
	if opt, found := opts["style"]; found {
		style = opt.StringValue()
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	tag := fmt.Sprintf("<t:%d:%s>", ts.Unix(), style)

	return respond(slash.Session, slash.Event, fmt.Sprintf("%s\n`%s`", tag, tag))
}

func init() {
	Register(ApplyMiddlewares(
		&TimestampCommand{},
		WithGroupAccessCheck(),
		WithCommandLogger(),
	))
}
