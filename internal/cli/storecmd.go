package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/semmy-space/fa/internal/config"
	"github.com/semmy-space/fa/internal/output"
	"github.com/semmy-space/fa/internal/vault"
)

// storeItem is one row of the store list
type storeItem struct {
	Name    string `json:"name" yaml:"name"`
	Default bool   `json:"default" yaml:"default"`
}

var storeColumns = []output.Column{
	{Name: "Name", Key: "Name"},
	{Name: "Default", Key: "Default"},
}

// StoreListCmd lists the stores in the base path
type StoreListCmd struct{}

// Run executes the store list command
func (cmd *StoreListCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	m, err := loadManager(res, g)
	if err != nil {
		return err
	}

	names, err := m.ListStores()
	if err != nil {
		return err
	}

	fp.Statusf("store directory @ '%s'", m.Config().Store.BasePath)
	if len(names) == 0 {
		fp.Statusf("no stores yet.")
		fp.Formatter.PrintHint("Create one with: fa store create <name>")
		return nil
	}

	items := make([]storeItem, len(names))
	for i, name := range names {
		items[i] = storeItem{Name: name, Default: name == m.Config().Store.DefaultStore}
	}

	return fp.Formatter.PrintList(items, storeColumns)
}

// StoreCreateCmd creates an empty store
type StoreCreateCmd struct {
	Name string `arg:"" help:"Store name"`
}

// Run executes the store create command
func (cmd *StoreCreateCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	m, err := loadManager(res, g)
	if err != nil {
		return err
	}

	if _, err := m.CreateStore(context.Background(), cmd.Name); err != nil {
		return err
	}

	fp.Statusf("successfully created %s store.", cmd.Name)
	return nil
}

// StoreRemoveCmd deletes a store and every credential in it
type StoreRemoveCmd struct {
	Name string `arg:"" help:"Store name" predictor:"store"`
}

// Run executes the store remove command
func (cmd *StoreRemoveCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	ctx := context.Background()

	m, err := loadManager(res, g)
	if err != nil {
		return err
	}

	if !g.Force {
		if g.NoInput {
			return output.NewCLIError(output.ExitUsage, fmt.Sprintf("refusing to remove %s store without confirmation", cmd.Name)).
				WithHint("Pass --force to remove it")
		}

		reader := bufio.NewReader(fp.In)
		answer, _ := promptLine(reader, fp.Status, fmt.Sprintf("Remove %s store and all its credentials? [y/N]: ", cmd.Name))
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fp.Statusf("aborted.")
			return nil
		}
	}

	err = withExistingStoreLock(ctx, m, cmd.Name, func() error {
		return m.RemoveStore(ctx, cmd.Name)
	})
	if err != nil {
		return err
	}

	fp.Statusf("successfully removed %s store.", cmd.Name)
	if cmd.Name == m.Config().Store.DefaultStore {
		fp.Formatter.PrintHint("It was the default store. Pick another with: fa store default <name>")
	}
	return nil
}

// StoreDefaultCmd makes an existing store the default
type StoreDefaultCmd struct {
	Name string `arg:"" help:"Store name" predictor:"store"`
}

// Run executes the store default command
func (cmd *StoreDefaultCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	m, err := loadManager(res, g)
	if err != nil {
		return err
	}

	changed, err := m.SetDefault(cmd.Name)
	if err != nil {
		return err
	}
	if !changed {
		fp.Statusf("%s store does not exist, default store unchanged.", cmd.Name)
		return nil
	}

	fp.Statusf("default store is now %s.", cmd.Name)
	return nil
}

// storeNames lists the stores of the configuration in dir, for completion
func storeNames(dir string) []string {
	cfg, err := config.NewResolver(dir).Load()
	if err != nil {
		return nil
	}

	names, err := vault.NewManager(nil, cfg, nil).ListStores()
	if err != nil {
		return nil
	}
	return names
}
