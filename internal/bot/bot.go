// Package bot handles Telegram updates and routes commands to handlers.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rashpile/pako-sysinfo/internal/audit"
	"github.com/rashpile/pako-sysinfo/internal/auth"
	"github.com/rashpile/pako-sysinfo/internal/command"
	"github.com/rashpile/pako-sysinfo/internal/logging"
	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

const (
	transportName  = "telegram"
	defaultTimeout = 60 * time.Second
)

// api is the subset of tgbotapi.BotAPI the bot uses.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Config holds dependencies for Bot construction.
type Config struct {
	Token          string
	Authorizer     auth.Authorizer
	Registry       *command.Registry
	Timeout        time.Duration
	Audit          audit.Logger
	Logger         *zap.Logger
	AllowedChatIDs []int64 // Chat IDs to notify on startup
}

// Bot handles Telegram updates and routes commands to handlers.
type Bot struct {
	botAPI         *tgbotapi.BotAPI
	api            api
	authorizer     auth.Authorizer
	registry       *command.Registry
	timeout        time.Duration
	audit          audit.Logger
	logger         *zap.Logger
	allowedChatIDs []int64
}

// New creates a Bot with the given dependencies.
func New(cfg Config) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	b := newBot(botAPI, cfg)
	b.botAPI = botAPI
	b.logger.Info("authorized on telegram", zap.String("username", botAPI.Self.UserName))
	return b, nil
}

// newBot wires a Bot around any api implementation.
func newBot(a api, cfg Config) *Bot {
	registry := cfg.Registry
	if registry == nil {
		registry = command.NewRegistry()
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
		api:            a,
		authorizer:     cfg.Authorizer,
		registry:       registry,
		timeout:        timeout,
		audit:          auditLog,
		logger:         logging.Component(cfg.Logger, transportName),
		allowedChatIDs: cfg.AllowedChatIDs,
	}
}

// RegisterCommands publishes the command list shown by Telegram clients.
func (b *Bot) RegisterCommands() error {
	var cmds []tgbotapi.BotCommand
	for _, cmd := range b.registry.All() {
		cmds = append(cmds, tgbotapi.BotCommand{
			Command:     telegramName(cmd.Name()),
			Description: cmd.Description(),
		})
	}
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(cmds...)); err != nil {
		return fmt.Errorf("set telegram commands: %w", err)
	}
	return nil
}

// NotifyStartup sends a startup message to all allowed chats.
func (b *Bot) NotifyStartup() {
	for _, chatID := range b.allowedChatIDs {
		b.sendText(chatID, "Bot restarted")
	}
}

// Run starts the bot's update loop. Blocks until context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.botAPI.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.botAPI.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return nil

		case update := <-updates:
			if update.Message != nil && update.Message.IsCommand() {
				go b.handleCommand(ctx, update.Message)
			}
		}
	}
}

// handleCommand processes a single command message.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	cmdName := msg.Command()

	logger := b.logger.With(zap.Int64("chat_id", chatID), zap.String("command", cmdName))

	if !b.authorizer.IsAllowed(chatID) {
		logger.Warn("unauthorized access attempt")
		b.sendText(chatID, fmt.Sprintf("Unauthorized. Your chat ID (%d) is not in the allowlist.", chatID))
		return
	}

	cmd := b.registry.Get(cmdName)
	if cmd == nil {
		logger.Debug("unknown command")
		b.sendText(chatID, fmt.Sprintf("Unknown command: /%s\nUse /help to see available commands.", cmdName))
		return
	}

	tokens := strings.Fields(msg.CommandArguments())
	var opts []pkgcmd.Option
	if withOpts, ok := cmd.(pkgcmd.WithOptions); ok {
		opts = withOpts.Options()
	}
	args, err := parseArgs(tokens, opts)
	if err != nil {
		logger.Debug("invalid arguments", zap.Error(err))
		b.sendText(chatID, fmt.Sprintf("%v\n\n%s", err, usage(cmd)))
		return
	}

	logger.Info("executing command", zap.Int("args_count", len(args)))
	entry := audit.Entry{
		Timestamp: time.Now(),
		Transport: transportName,
		ChatID:    chatID,
		Command:   cmd.Name(),
		Args:      strings.Join(tokens, " "),
	}
	if msg.From != nil {
		entry.Username = msg.From.UserName
	}

	if err := b.executeCommand(ctx, chatID, cmd, args); err != nil {
		logger.Error("command execution failed", zap.Error(err))
		entry.ExitCode = 1
	}
	entry.DurationMs = time.Since(entry.Timestamp).Milliseconds()

	if err := b.audit.Log(ctx, entry); err != nil {
		logger.Error("failed to write audit log", zap.Error(err))
	}
}

// executeCommand runs a command and delivers its response.
func (b *Bot) executeCommand(ctx context.Context, chatID int64, cmd pkgcmd.Command, args pkgcmd.Args) error {
	execCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	resp, err := cmd.Execute(execCtx, args)
	if err != nil {
		b.sendText(chatID, fmt.Sprintf("Error: %v", err))
		return err
	}
	if resp == nil {
		return nil
	}
	return b.sendResponse(chatID, resp)
}

// sendResponse delivers a response as HTML, falling back to plain text when
// it does not fit or Telegram rejects the markup.
func (b *Bot) sendResponse(chatID int64, resp *pkgcmd.Response) error {
	text := responseHTML(resp)
	if len(text) <= maxMessageLength {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableNotification = !resp.Public
		_, err := b.api.Send(msg)
		if err == nil {
			return nil
		}
		b.logger.Warn("html send failed, retrying as plain text", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	msg := tgbotapi.NewMessage(chatID, plainFallback(resp))
	msg.DisableNotification = !resp.Public
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send response: %w", err)
	}
	return nil
}

// sendText sends a simple text message.
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
