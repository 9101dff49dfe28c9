package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rashpile/pako-sysinfo/internal/config"
	"github.com/rashpile/pako-sysinfo/internal/logging"
	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var send, detailed bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a system report to stdout without connecting to chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadOptionalConfig(opts.configPath)
			if err != nil {
				return err
			}

			logger := zap.NewNop()
			if opts.debug {
				if logger, _, err = logging.Setup(true); err != nil {
					return err
				}
				defer logger.Sync() //nolint:errcheck
			}

			sysCmd := newRegistry(cfg, logger).Get("system-info")
			resp, err := sysCmd.Execute(cmd.Context(), pkgcmd.Args{"send": send, "detailed": detailed})
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().BoolVar(&send, "send", false, "render the public text layout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include additional details")
	return cmd
}

// loadOptionalConfig reads the config file if present, defaults otherwise.
func loadOptionalConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// writeResponse prints text responses verbatim and lays embeds out as lines.
func writeResponse(w io.Writer, resp *pkgcmd.Response) error {
	if resp.Embed == nil {
		_, err := fmt.Fprintln(w, resp.Text)
		return err
	}

	e := resp.Embed
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s\n\n", e.Title, e.Description)
	for _, f := range e.Fields {
		value := strings.Trim(f.Value, "`")
		if f.Name == "" {
			sb.WriteString(value + "\n")
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", f.Name, value)
	}
	if e.Footer != "" {
		sb.WriteString("\n" + e.Footer + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
