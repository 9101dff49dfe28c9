package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

func TestMessageEmbed(t *testing.T) {
	e := &pkgcmd.Embed{
		Title:       "System Information",
		Description: "Detailed system specifications and status",
		Color:       0x2ECC71,
		Fields: []pkgcmd.Field{
			{Name: "Device", Value: "`Pixel`", Inline: true},
			{Name: "", Value: "━━", Inline: false},
		},
		Footer: "Generated on now",
	}

	got := messageEmbed(e)

	assert.Equal(t, "System Information", got.Title)
	assert.Equal(t, 0x2ECC71, got.Color)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, &discordgo.MessageEmbedField{Name: "Device", Value: "`Pixel`", Inline: true}, got.Fields[0])
	assert.Equal(t, emptyFieldName, got.Fields[1].Name)
	assert.False(t, got.Fields[1].Inline)
	require.NotNil(t, got.Footer)
	assert.Equal(t, "Generated on now", got.Footer.Text)

	assert.Nil(t, messageEmbed(&pkgcmd.Embed{Title: "x"}).Footer)
}

func TestInteractionArgs(t *testing.T) {
	args := interactionArgs([]*discordgo.ApplicationCommandInteractionDataOption{
		boolOption("send", true),
		boolOption("detailed", false),
		{Name: "other", Type: discordgo.ApplicationCommandOptionString, Value: "x"},
	})

	assert.Equal(t, pkgcmd.Args{"send": true, "detailed": false}, args)
}

func TestFormatArgs(t *testing.T) {
	assert.Equal(t, "detailed=false send=true", formatArgs(pkgcmd.Args{"send": true, "detailed": false}))
	assert.Empty(t, formatArgs(nil))
}

func TestInteractionResponse(t *testing.T) {
	private := interactionResponse(pkgcmd.TextResponse("hi", false))
	assert.Equal(t, discordgo.MessageFlagsEphemeral, private.Data.Flags)
	assert.Empty(t, private.Data.Embeds)

	public := interactionResponse(&pkgcmd.Response{Embed: &pkgcmd.Embed{Title: "t"}, Public: true})
	assert.Zero(t, public.Data.Flags)
	require.Len(t, public.Data.Embeds, 1)
}
