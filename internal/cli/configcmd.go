package cli

import (
	"fmt"
	"os"

	"github.com/semmy-space/fa/internal/config"
	"github.com/semmy-space/fa/internal/secrets"
)

// configView is the printable form of the configuration
type configView struct {
	ConfigFile   string `json:"config_file" yaml:"config_file"`
	StorePath    string `json:"store_path" yaml:"store_path"`
	DefaultStore string `json:"default_store" yaml:"default_store"`
	Identity     string `json:"identity" yaml:"identity"`
	Provider     string `json:"provider" yaml:"provider"`
	SecretStore  string `json:"secret_store,omitempty" yaml:"secret_store,omitempty"`
}

// ConfigViewCmd implements config view command
type ConfigViewCmd struct{}

// Run executes the view command
func (cmd *ConfigViewCmd) Run(res *config.Resolver, fp *FormatterProvider) error {
	cfg, err := res.Load()
	if err != nil {
		return err
	}

	view := configView{
		ConfigFile:   res.Path(),
		StorePath:    cfg.Store.BasePath,
		DefaultStore: cfg.Store.DefaultStore,
		Identity:     cfg.Security.Identity,
		Provider:     cfg.ProviderName(),
	}
	// Only age keeps secret keys in fa's own secret store
	if cfg.ProviderName() == config.ProviderAge {
		view.SecretStore = secrets.Backend().String()
	}

	return fp.Formatter.Print(view)
}

// ConfigPathCmd implements config path command
type ConfigPathCmd struct{}

// Run executes the path command
func (cmd *ConfigPathCmd) Run(res *config.Resolver, fp *FormatterProvider) error {
	path := res.Path()

	// Print path to stdout
	fmt.Fprintln(fp.Out, path)

	// Print existence hint to stderr
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(fp.Status, "(file does not exist yet - run fa init)\n")
	} else {
		fmt.Fprintf(fp.Status, "(file exists)\n")
	}

	return nil
}
