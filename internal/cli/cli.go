package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/fa/internal/config"
	"github.com/semmy-space/fa/internal/output"
)

// FormatterProvider wraps the formatter interface and the process streams for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
	In        io.Reader // prompt answers and CSV input
	Out       io.Writer // CSV output and plain messages
	Status    io.Writer // human-readable progress lines
}

// Statusf prints a "fa: " prefixed progress line
func (fp *FormatterProvider) Statusf(format string, args ...any) {
	fmt.Fprintf(fp.Status, "fa: "+format+"\n", args...)
}

// CLI is the root command structure
type CLI struct {
	Globals

	Init   InitCmd   `cmd:"" help:"Create the configuration"`
	List   ListCmd   `cmd:"" help:"List credentials from a store"`
	Add    AddCmd    `cmd:"" help:"Add a credential to a store"`
	Remove RemoveCmd `cmd:"" help:"Remove a credential from a store"`
	Search SearchCmd `cmd:"" help:"Search credentials by user prefix"`
	Import ImportCmd `cmd:"" help:"Import credentials from a CSV file"`
	Export ExportCmd `cmd:"" help:"Export credentials to a CSV file"`
	Config ConfigCmd `cmd:"" help:"Configuration commands"`
	Store  StoreCmd  `cmd:"" help:"Store management commands"`

	Schema     SchemaCmd                    `cmd:"" help:"Describe the command tree (best with -o json)"`
	Completion kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
	Version    VersionCmd                   `cmd:"" help:"Show version information"`
}

// AfterApply hook runs once flags are applied, before any command executes.
// It sets up logging, resolves the config directory and binds dependencies.
func (c *CLI) AfterApply(ctx *kong.Context) error {
	setupLogging(os.Stderr, c.Verbose)

	dir, err := configDir(c.ConfigDir)
	if err != nil {
		return err
	}

	// Create output formatter
	formatter := &FormatterProvider{
		Formatter: output.New(c.ResolvedOutput()),
		In:        os.Stdin,
		Out:       os.Stdout,
		Status:    os.Stderr,
	}

	// Bind dependencies to kong context
	ctx.Bind(config.NewResolver(dir))
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)

	return nil
}

// configDir returns the explicit directory if set, else the XDG default
func configDir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return config.DefaultDir()
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	View ConfigViewCmd `cmd:"" help:"Show the configuration"`
	Path ConfigPathCmd `cmd:"" help:"Show config file path"`
}

// StoreCmd holds store management subcommands
type StoreCmd struct {
	List    StoreListCmd    `cmd:"" help:"List stores"`
	Create  StoreCreateCmd  `cmd:"" help:"Create an empty store"`
	Remove  StoreRemoveCmd  `cmd:"" help:"Remove a store and all its credentials"`
	Default StoreDefaultCmd `cmd:"" help:"Set the default store"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context, fp *FormatterProvider) error {
	version := ctx.Model.Vars()["version"]
	fmt.Fprintln(fp.Out, "fa version "+version)
	return nil
}
