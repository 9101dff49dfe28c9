// Package discord serves commands as Discord slash commands.
package discord

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/rashpile/pako-sysinfo/internal/audit"
	"github.com/rashpile/pako-sysinfo/internal/auth"
	"github.com/rashpile/pako-sysinfo/internal/command"
	"github.com/rashpile/pako-sysinfo/internal/logging"
	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

const (
	transportName  = "discord"
	defaultTimeout = 60 * time.Second

	// Discord drops interactions not answered within three seconds.
	responseDeadline = 2500 * time.Millisecond
)

// responder is the part of a discordgo session the bot talks to.
type responder interface {
	respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	overwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand) error
}

type sessionResponder struct {
	s *discordgo.Session
}

func (r sessionResponder) respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return r.s.InteractionRespond(i, resp)
}

func (r sessionResponder) overwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand) error {
	_, err := r.s.ApplicationCommandBulkOverwrite(appID, guildID, cmds)
	return err
}

// Config holds dependencies for Bot construction.
type Config struct {
	Token      string
	GuildID    string // empty registers commands globally
	Authorizer *auth.Allowlist
	Registry   *command.Registry
	Timeout    time.Duration
	Audit      audit.Logger
	Logger     *zap.Logger
}

// Bot routes slash command interactions to registered commands.
type Bot struct {
	session    *discordgo.Session
	responder  responder
	guildID    string
	authorizer *auth.Allowlist
	registry   *command.Registry
	timeout    time.Duration
	audit      audit.Logger
	logger     *zap.Logger
}

// New creates a Bot. The gateway connection is opened by Run.
func New(cfg Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	b := newBot(sessionResponder{s: session}, cfg)
	b.session = session
	return b, nil
}

func newBot(r responder, cfg Config) *Bot {
	registry := cfg.Registry
	if registry == nil {
		registry = command.NewRegistry()
	}
	authorizer := cfg.Authorizer
	if authorizer == nil {
		authorizer = auth.NewOptionalAllowlist(nil)
	}
	auditLog := cfg.Audit
	if auditLog == nil {
		auditLog = audit.NopLogger{}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Bot{
		responder:  r,
		guildID:    cfg.GuildID,
		authorizer: authorizer,
		registry:   registry,
		timeout:    timeout,
		audit:      auditLog,
		logger:     logging.Component(cfg.Logger, transportName),
	}
}

// Run opens the gateway, registers slash commands and blocks until the
// context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handleInteraction(ctx, i.Interaction)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	defer b.session.Close()

	b.logger.Info("connected to discord", zap.String("username", b.session.State.User.Username))

	if err := b.RegisterCommands(b.session.State.User.ID); err != nil {
		return err
	}

	<-ctx.Done()
	b.logger.Info("bot stopped")
	return nil
}

// RegisterCommands replaces the application's slash commands with the registry contents.
func (b *Bot) RegisterCommands(appID string) error {
	cmds := applicationCommands(b.registry.All())
	if err := b.responder.overwrite(appID, b.guildID, cmds); err != nil {
		return fmt.Errorf("register discord commands: %w", err)
	}
	b.logger.Info("registered slash commands", zap.Int("count", len(cmds)), zap.String("guild_id", b.guildID))
	return nil
}

// handleInteraction processes a single slash command invocation.
func (b *Bot) handleInteraction(ctx context.Context, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	logger := b.logger.With(zap.String("guild_id", i.GuildID), zap.String("command", data.Name))

	if !b.authorizer.IsAllowedString(i.GuildID) {
		logger.Warn("unauthorized access attempt")
		b.respondText(i, "This server is not allowed to use this bot.")
		return
	}

	cmd := b.registry.Get(data.Name)
	if cmd == nil {
		logger.Debug("unknown command")
		b.respondText(i, fmt.Sprintf("Unknown command: /%s", data.Name))
		return
	}

	args := interactionArgs(data.Options)

	logger.Info("executing command", zap.Int("args_count", len(args)))
	entry := audit.Entry{
		Timestamp: time.Now(),
		Transport: transportName,
		ChatID:    channelID(i),
		Command:   cmd.Name(),
		Args:      formatArgs(args),
		Username:  username(i),
	}

	if err := b.executeCommand(ctx, i, cmd, args); err != nil {
		logger.Error("command execution failed", zap.Error(err))
		entry.ExitCode = 1
	}
	entry.DurationMs = time.Since(entry.Timestamp).Milliseconds()

	if err := b.audit.Log(ctx, entry); err != nil {
		logger.Error("failed to write audit log", zap.Error(err))
	}
}

func (b *Bot) executeCommand(ctx context.Context, i *discordgo.Interaction, cmd pkgcmd.Command, args pkgcmd.Args) error {
	timeout := b.timeout
	if timeout > responseDeadline {
		timeout = responseDeadline
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := cmd.Execute(execCtx, args)
	if err != nil {
		b.respondText(i, fmt.Sprintf("Error: %v", err))
		return err
	}
	if resp == nil {
		resp = pkgcmd.TextResponse("Done.", false)
	}

	if err := b.responder.respond(i, interactionResponse(resp)); err != nil {
		return fmt.Errorf("send response: %w", err)
	}
	return nil
}

// respondText answers an interaction immediately with an ephemeral message.
func (b *Bot) respondText(i *discordgo.Interaction, text string) {
	err := b.responder.respond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error("failed to send message", zap.Error(err))
	}
}

func username(i *discordgo.Interaction) string {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.Username
	case i.User != nil:
		return i.User.Username
	}
	return ""
}

// channelID returns the numeric channel snowflake, or zero.
func channelID(i *discordgo.Interaction) int64 {
	id, err := strconv.ParseInt(i.ChannelID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
