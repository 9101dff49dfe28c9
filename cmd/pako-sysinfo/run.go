package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rashpile/pako-sysinfo/internal/audit"
	"github.com/rashpile/pako-sysinfo/internal/auth"
	"github.com/rashpile/pako-sysinfo/internal/bot"
	"github.com/rashpile/pako-sysinfo/internal/command"
	"github.com/rashpile/pako-sysinfo/internal/command/builtin"
	"github.com/rashpile/pako-sysinfo/internal/config"
	"github.com/rashpile/pako-sysinfo/internal/discord"
	"github.com/rashpile/pako-sysinfo/internal/hostinfo"
	"github.com/rashpile/pako-sysinfo/internal/logging"
	"github.com/rashpile/pako-sysinfo/internal/sysinfo"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the configured chat transports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
}

func run(ctx context.Context, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, _, err := logging.Setup(opts.debug || cfg.Log.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("configuration loaded",
		zap.String("config", opts.configPath),
		zap.String("database", cfg.Database.Path),
		zap.Bool("telegram", cfg.Telegram.Token != ""),
		zap.Bool("discord", cfg.Discord.Token != ""),
	)

	auditLogger, err := openAudit(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer auditLogger.Close()

	registry := newRegistry(cfg, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Telegram.Token != "" {
		tg, err := bot.New(bot.Config{
			Token:          cfg.Telegram.Token,
			Authorizer:     auth.NewAllowlist(cfg.Telegram.AllowedChatIDs),
			Registry:       registry,
			Timeout:        cfg.Defaults.Timeout,
			Audit:          auditLogger,
			Logger:         logger,
			AllowedChatIDs: cfg.Telegram.AllowedChatIDs,
		})
		if err != nil {
			return err
		}
		if err := tg.RegisterCommands(); err != nil {
			logger.Warn("failed to register telegram commands", zap.Error(err))
		}
		tg.NotifyStartup()
		g.Go(func() error { return tg.Run(ctx) })
	}

	if cfg.Discord.Token != "" {
		dc, err := discord.New(discord.Config{
			Token:      cfg.Discord.Token,
			GuildID:    cfg.Discord.GuildID,
			Authorizer: auth.NewOptionalAllowlist(cfg.Discord.AllowedGuildIDs),
			Registry:   registry,
			Timeout:    cfg.Defaults.Timeout,
			Audit:      auditLogger,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return dc.Run(ctx) })
	}

	logger.Info("starting bot", zap.Int("commands", len(registry.All())))
	if err := g.Wait(); err != nil {
		return fmt.Errorf("transport stopped: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// openAudit opens the SQLite audit log. The path "-" disables auditing.
func openAudit(path string) (audit.Logger, error) {
	if path == "-" {
		return audit.NopLogger{}, nil
	}
	return audit.NewSQLiteLogger(path)
}

func newProvider(cfg *config.Config) *hostinfo.Local {
	return hostinfo.NewLocal(hostinfo.Options{
		DataPath:     cfg.Sysinfo.DataPath,
		ExternalPath: cfg.Sysinfo.ExternalPath,
		CPUInfoPath:  cfg.Sysinfo.CPUInfoPath,
		VersionPath:  cfg.Sysinfo.VersionPath,
		ReadTimeout:  cfg.Sysinfo.ReadTimeout,
	})
}

func newRegistry(cfg *config.Config, logger *zap.Logger) *command.Registry {
	assembler := sysinfo.NewAssembler(newProvider(cfg), logger)

	registry := command.NewRegistry()
	registry.Register(builtin.NewHelpCommand(registry))
	registry.Register(builtin.NewVersionCommand())
	registry.Register(builtin.NewSystemInfoCommand(assembler))
	return registry
}
