package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/semmy-space/fa/internal/config"
	"github.com/semmy-space/fa/internal/output"
	"github.com/semmy-space/fa/internal/provider"
	"github.com/semmy-space/fa/internal/store"
)

// InitCmd writes a fresh configuration, prompting for anything not given as a flag
type InitCmd struct {
	Identity   string `help:"Key used to encrypt stores (gpg fingerprint or age recipient)"`
	Store      string `help:"Name of the default store"`
	StorePath  string `help:"Directory holding all stores" name:"store-path" type:"path"`
	Provider   string `help:"Encryption provider" enum:"gpg,age" default:"gpg"`
	AgeKeyFile string `help:"age identity file to import into the secret store" name:"age-key-file" type:"existingfile" predictor:"file"`
}

// identityImporter is implemented by providers that keep their own secret keys
type identityImporter interface {
	ImportIdentities(r io.Reader) ([]string, error)
}

// Run executes the init command
func (cmd *InitCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	ctx := context.Background()
	reader := bufio.NewReader(fp.In)

	p, err := newProvider(cmd.Provider, g)
	if err != nil {
		return err
	}

	identity := cmd.Identity
	if cmd.AgeKeyFile != "" {
		recipients, err := cmd.importKeys(p)
		if err != nil {
			return err
		}
		for _, r := range recipients {
			fp.Statusf("imported age identity %s.", r)
		}
		if identity == "" && len(recipients) == 1 {
			identity = recipients[0]
		}
	}

	identity, err = cmd.resolveIdentity(ctx, p, identity, reader, fp, g)
	if err != nil {
		return err
	}

	storeName, err := cmd.resolveStoreName(reader, fp, g)
	if err != nil {
		return err
	}

	storePath := cmd.StorePath
	if storePath == "" {
		storePath = config.DefaultStorePath()
		if !g.NoInput {
			answer, err := promptLine(reader, fp.Status, fmt.Sprintf("Directory for all your stores [%s]: ", storePath))
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			if answer != "" {
				storePath = answer
			}
		}
	}

	cfg, err := res.Create(storePath, storeName, identity, cmd.Provider)
	if err != nil {
		return err
	}

	fp.Statusf("successfully created a configuration at %s.", res.Path())
	fp.Formatter.PrintHint(fmt.Sprintf("Add a credential with: fa add <user> <password> (stores live in %s)", cfg.Store.BasePath))
	return nil
}

// importKeys hands the age identity file to the provider
func (cmd *InitCmd) importKeys(p provider.Provider) ([]string, error) {
	importer, ok := p.(identityImporter)
	if !ok {
		return nil, fmt.Errorf("the %s provider does not import key files", cmd.Provider)
	}

	f, err := os.Open(cmd.AgeKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open age key file: %w", err)
	}
	defer f.Close()

	return importer.ImportIdentities(f)
}

// resolveIdentity returns supplied when the provider accepts it. Otherwise it
// prompts until a valid identity is entered or input ends.
func (cmd *InitCmd) resolveIdentity(ctx context.Context, p provider.Provider, supplied string, reader *bufio.Reader, fp *FormatterProvider, g *Globals) (string, error) {
	if supplied != "" {
		ok, err := p.IdentityIsValid(ctx, supplied)
		if err != nil {
			return "", err
		}
		if ok {
			return supplied, nil
		}
		if g.NoInput {
			return "", fmt.Errorf("%w: %s", provider.ErrInvalidIdentity, supplied)
		}
		fp.Statusf("could not find a key for %q.", supplied)
	}

	if g.NoInput {
		return "", fmt.Errorf("%w: pass --identity when prompts are disabled", provider.ErrInvalidIdentity)
	}

	question := "GPG key fingerprint or user id: "
	if cmd.Provider == config.ProviderAge {
		question = "age recipient (age1...): "
	}

	for {
		answer, err := promptLine(reader, fp.Status, question)
		if answer != "" {
			ok, verr := p.IdentityIsValid(ctx, answer)
			if verr != nil {
				return "", verr
			}
			if ok {
				return answer, nil
			}
			fp.Statusf("could not find a key for %q.", answer)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: no valid identity entered", provider.ErrInvalidIdentity)
			}
			return "", err
		}
	}
}

// resolveStoreName returns the --store value or prompts for one
func (cmd *InitCmd) resolveStoreName(reader *bufio.Reader, fp *FormatterProvider, g *Globals) (string, error) {
	if cmd.Store != "" {
		return cmd.Store, store.ValidateName(cmd.Store)
	}
	if g.NoInput {
		return "", output.NewCLIError(output.ExitUsage, "a default store name is required").
			WithHint("Pass --store <name>")
	}

	for {
		answer, err := promptLine(reader, fp.Status, "Default store name: ")
		if answer != "" {
			if verr := store.ValidateName(answer); verr == nil {
				return answer, nil
			}
			fp.Statusf("%q is not a valid store name.", answer)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", output.NewCLIError(output.ExitUsage, "no default store name entered")
			}
			return "", err
		}
	}
}

// promptLine writes text to w and reads one trimmed answer. At end of input
// it returns whatever was read along with io.EOF.
func promptLine(reader *bufio.Reader, w io.Writer, text string) (string, error) {
	fmt.Fprint(w, text)
	line, err := reader.ReadString('\n')
	return strings.TrimSpace(line), err
}
