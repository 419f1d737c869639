package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/fa/internal/cli"
	"github.com/semmy-space/fa/internal/output"
)

var (
	version = "dev"
)

func main() {
	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("fa"),
		kong.Description("Local credential manager with GPG or age encrypted stores"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	// Answer shell completion requests and exit before parsing
	kongplete.Complete(parser, cli.Predictors()...)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Hook failures such as a missing HOME carry a mapped exit code
		if cli.AsCLIError(err).ExitCode != output.ExitGeneral {
			exit(err)
		}
		parser.FatalIfErrorf(err)
	}

	// Run command with bound dependencies
	if err := ctx.Run(); err != nil {
		exit(err)
	}
}

// exit prints err with its hint and terminates with the mapped exit code
func exit(err error) {
	cliErr := cli.AsCLIError(err)

	// We need a formatter instance, create a basic one for error output
	formatter := output.New("plain")
	formatter.PrintError(cliErr)
	if cliErr.Hint != "" {
		formatter.PrintHint(cliErr.Hint)
	}
	os.Exit(cliErr.ExitCode)
}
