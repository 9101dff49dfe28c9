package bot

import (
	"fmt"
	"strings"

	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

// boolLiterals maps accepted boolean spellings to their value.
var boolLiterals = map[string]bool{
	"true": true, "false": false,
	"yes": true, "no": false,
	"1": true, "0": false,
}

// parseArgs converts "name" and "name=value" tokens into boolean options.
// A bare name sets the option to true.
func parseArgs(tokens []string, opts []pkgcmd.Option) (pkgcmd.Args, error) {
	known := make(map[string]bool, len(opts))
	for _, opt := range opts {
		known[opt.Name] = true
	}

	args := make(pkgcmd.Args, len(tokens))
	for _, token := range tokens {
		name, raw, hasValue := strings.Cut(token, "=")
		name = strings.ToLower(strings.TrimSpace(name))

		if !known[name] {
			return nil, fmt.Errorf("unknown option %q", name)
		}

		value := true
		if hasValue {
			v, ok := boolLiterals[strings.ToLower(strings.TrimSpace(raw))]
			if !ok {
				return nil, fmt.Errorf("option %s: please enter yes/no, true/false, or 1/0", name)
			}
			value = v
		}
		args[name] = value
	}

	return args, nil
}

// usage describes a command's options for error replies.
func usage(cmd pkgcmd.Command) string {
	withOpts, ok := cmd.(pkgcmd.WithOptions)
	if !ok || len(withOpts.Options()) == 0 {
		return fmt.Sprintf("Usage: /%s", telegramName(cmd.Name()))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage: /%s", telegramName(cmd.Name()))
	for _, opt := range withOpts.Options() {
		fmt.Fprintf(&sb, " [%s]", opt.Name)
	}
	for _, opt := range withOpts.Options() {
		fmt.Fprintf(&sb, "\n  %s - %s", opt.Name, opt.Description)
	}
	return sb.String()
}

// telegramName converts a command name to Telegram's allowed alphabet.
func telegramName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
