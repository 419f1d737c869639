package cli

import (
	"context"

	"github.com/semmy-space/fa/internal/config"
	"github.com/semmy-space/fa/internal/output"
	"github.com/semmy-space/fa/internal/store"
	"github.com/semmy-space/fa/internal/vault"
)

var credentialColumns = []output.Column{
	{Name: "User", Key: "User"},
	{Name: "Password", Key: "Password"},
	{Name: "Tag", Key: "Tag", Width: 20},
	{Name: "Site", Key: "Site", Width: 40},
}

// ListCmd prints every credential of a store
type ListCmd struct {
	Store string `help:"Store to use (default: the configured default store)" short:"s" env:"FA_STORE" predictor:"store"`
}

// Run executes the list command
func (cmd *ListCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
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

	fp.Statusf("store @ '%s'", name)
	if st.Len() == 0 {
		fp.Statusf("the store is currently empty.")
		fp.Formatter.PrintHint("Add one with: fa add <user> <password>")
		return nil
	}

	return fp.Formatter.PrintList(st.Credentials(), credentialColumns)
}

// AddCmd adds a credential, creating the store when it does not exist yet
type AddCmd struct {
	User     string `arg:"" help:"Login or username"`
	Password string `arg:"" help:"Password"`
	Tag      string `help:"Free-form label" short:"t"`
	Site     string `help:"Site the credential belongs to"`
	Store    string `help:"Store to use (default: the configured default store)" short:"s" env:"FA_STORE" predictor:"store"`
}

// Run executes the add command
func (cmd *AddCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	ctx := context.Background()

	m, err := loadManager(res, g)
	if err != nil {
		return err
	}

	name := vault.ResolveStoreName(cmd.Store, m.Config())
	cred := store.Credential{User: cmd.User, Password: cmd.Password, Tag: cmd.Tag, Site: cmd.Site}
	if err := cred.Validate(); err != nil {
		return err
	}

	return withStoreLock(ctx, m, name, func() error {
		st, err := m.Open(ctx, name, vault.CreateIfAbsent)
		if err != nil {
			return err
		}
		if err := st.Add(cred); err != nil {
			return err
		}
		if err := st.Save(ctx); err != nil {
			return err
		}

		fp.Statusf("successfully added %s to %s store.", cmd.User, name)
		return nil
	})
}

// RemoveCmd removes the credential matching both user and password
type RemoveCmd struct {
	User     string `arg:"" help:"Login or username"`
	Password string `arg:"" help:"Password"`
	Store    string `help:"Store to use (default: the configured default store)" short:"s" env:"FA_STORE" predictor:"store"`
}

// Run executes the remove command
func (cmd *RemoveCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	ctx := context.Background()

	m, err := loadManager(res, g)
	if err != nil {
		return err
	}

	name := vault.ResolveStoreName(cmd.Store, m.Config())

	return withExistingStoreLock(ctx, m, name, func() error {
		st, err := m.Open(ctx, name, vault.MustExist)
		if err != nil {
			return err
		}

		if !st.Remove(cmd.User, cmd.Password) {
			fp.Statusf("no credential for %s in %s store.", cmd.User, name)
			return nil
		}
		if err := st.Save(ctx); err != nil {
			return err
		}

		fp.Statusf("successfully removed %s from %s store.", cmd.User, name)
		return nil
	})
}

// SearchCmd lists credentials whose user starts with a query
type SearchCmd struct {
	Query  string `arg:"" help:"User prefix to search for"`
	Filter string `help:"Narrow results by tag/<value> or site/<value>" short:"f" placeholder:"FIELD/VALUE"`
	Store  string `help:"Store to use (default: the configured default store)" short:"s" env:"FA_STORE" predictor:"store"`
}

// Run executes the search command
func (cmd *SearchCmd) Run(res *config.Resolver, fp *FormatterProvider, g *Globals) error {
	ctx := context.Background()

	// Reject malformed filters before touching the store
	filter, err := store.ParseFilter(cmd.Filter)
	if err != nil {
		return err
	}

	m, err := loadManager(res, g)
	if err != nil {
		return err
	}

	name := vault.ResolveStoreName(cmd.Store, m.Config())
	st, err := m.Open(ctx, name, vault.MustExist)
	if err != nil {
		return err
	}

	if filter.Field == store.NoFilter {
		fp.Statusf("searching @ '%s' in %s store", cmd.Query, name)
	} else {
		fp.Statusf("searching @ '%s' in %s store (filter: %s)", cmd.Query, name, filter)
	}
	results := st.Search(cmd.Query, filter)
	if len(results) == 0 {
		fp.Statusf("no matches.")
		return nil
	}

	return fp.Formatter.PrintList(results, credentialColumns)
}
