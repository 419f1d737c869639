package cli

import (
	"os"

	"golang.org/x/term"
)

// Globals holds global flags available to all commands
type Globals struct {
	Output    string `help:"Output format" default:"auto" enum:"json,yaml,plain,rich,auto" short:"o" env:"FA_OUTPUT"`
	Verbose   bool   `help:"Verbose output" short:"v" env:"FA_VERBOSE"`
	NoInput   bool   `help:"Disable interactive prompts (fail instead)" name:"no-input" env:"FA_NO_INPUT"`
	Force     bool   `help:"Skip confirmation prompts for destructive operations" env:"FA_FORCE"`
	ConfigDir string `help:"Configuration directory (default: $XDG_CONFIG_HOME/fa)" name:"config-dir" type:"path" env:"FA_CONFIG_DIR"`
	GPGBinary string `help:"gpg executable used for encryption" name:"gpg-binary" default:"gpg" env:"FA_GPG"`
}

// ResolvedOutput returns the effective output mode
// "auto" detects TTY: if stdout is TTY -> rich, else -> plain
func (g *Globals) ResolvedOutput() string {
	if g.Output != "auto" {
		return g.Output
	}

	// Detect if stdout is a TTY
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}

	return "plain"
}
