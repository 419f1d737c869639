package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/semmy-space/fa/internal/config"
	"github.com/semmy-space/fa/internal/transfer"
	"github.com/semmy-space/fa/internal/vault"
)

// ImportCmd reads credentials from a CSV file
type ImportCmd struct {
	CSVPath string `help:"CSV file to read (default: stdin)" name:"csv-path" type:"path" predictor:"file"`
	Store   string `help:"Store to use (default: the configured default store)" short:"s" env:"FA_STORE" predictor:"store"`
}

// Run executes the import command
func (cmd *ImportCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	ctx := context.Background()

	m, err := loadManager(res, g)
	if err != nil {
		return err
	}

	in := fp.In
	if cmd.CSVPath != "" {
		f, err := os.Open(cmd.CSVPath)
		if err != nil {
			return fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		in = f
	}

	// A malformed file fails before any store is created
	creds, err := transfer.Read(in)
	if err != nil {
		return err
	}

	name := vault.ResolveStoreName(cmd.Store, m.Config())

	return withStoreLock(ctx, m, name, func() error {
		st, err := m.Open(ctx, name, vault.CreateIfAbsent)
		if err != nil {
			return err
		}

		result, err := transfer.Merge(st, creds)
		if err != nil {
			return err
		}

		if result.Imported > 0 {
			if err := st.Save(ctx); err != nil {
				return err
			}
		}

		fp.Statusf("imported %d credentials into %s store (%d already present).", result.Imported, name, result.Skipped)
		return nil
	})
}

// ExportCmd writes credentials to a CSV file
type ExportCmd struct {
	CSVPath string `help:"CSV file to write (default: stdout)" name:"csv-path" type:"path" predictor:"file"`
	Store   string `help:"Store to use (default: the configured default store)" short:"s" env:"FA_STORE" predictor:"store"`
}

// Run executes the export command
func (cmd *ExportCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	ctx := context.Background()

	m, err := loadManager(res, g)
	if err != nil {
		return err
	}

	name := vault.ResolveStoreName(cmd.Store, m.Config())
	st, err := m.Open(ctx, name, vault.MustExist)
	if err != nil {
		return err
	}

	var out io.Writer = fp.Out
	if cmd.CSVPath != "" {
		// Exported passwords are plaintext
		f, err := os.OpenFile(cmd.CSVPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer f.Close()
		out = f
	}

	count, err := transfer.Export(st, out)
	if err != nil {
		return err
	}

	fp.Statusf("exported %d credentials from %s store.", count, name)
	return nil
}
