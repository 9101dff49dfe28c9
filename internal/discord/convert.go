package discord

import (
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

// emptyFieldName stands in for blank embed field names, which Discord rejects.
const emptyFieldName = "\u200b"

// applicationCommands describes registry commands as slash commands.
// Every option is an optional boolean.
func applicationCommands(cmds []pkgcmd.Command) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, cmd := range cmds {
		ac := &discordgo.ApplicationCommand{
			Name:        cmd.Name(),
			Description: cmd.Description(),
		}
		if withOpts, ok := cmd.(pkgcmd.WithOptions); ok {
			for _, opt := range withOpts.Options() {
				ac.Options = append(ac.Options, &discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        opt.Name,
					Description: opt.Description,
				})
			}
		}
		out = append(out, ac)
	}
	return out
}

// interactionArgs collects boolean options from an interaction.
func interactionArgs(opts []*discordgo.ApplicationCommandInteractionDataOption) pkgcmd.Args {
	args := make(pkgcmd.Args, len(opts))
	for _, opt := range opts {
		if opt.Type != discordgo.ApplicationCommandOptionBoolean {
			continue
		}
		args[opt.Name] = opt.BoolValue()
	}
	return args
}

// formatArgs renders args as "name=value" pairs in name order for the audit log.
func formatArgs(args pkgcmd.Args) string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		if args[name] {
			parts = append(parts, name+"=true")
		} else {
			parts = append(parts, name+"=false")
		}
	}
	return strings.Join(parts, " ")
}

// messageEmbed converts a transport-neutral embed.
func messageEmbed(e *pkgcmd.Embed) *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		name := f.Name
		if name == "" {
			name = emptyFieldName
		}
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if e.Footer != "" {
		me.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	return me
}

// interactionResponse answers an interaction with the response. Responses
// that are not public are only shown to the invoking user.
func interactionResponse(resp *pkgcmd.Response) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{Content: resp.Text}
	if resp.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{messageEmbed(resp.Embed)}
	}
	if !resp.Public {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}
