package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
)

// ErrUnknownCommand is returned when a schema path names no command
var ErrUnknownCommand = errors.New("unknown command")

// SchemaCmd describes the command tree for scripts and shell integrations
type SchemaCmd struct {
	Command string `arg:"" optional:"" help:"Command path to describe (e.g. 'store create')"`
}

// SchemaNode is one command in the tree
type SchemaNode struct {
	Name     string        `json:"name" yaml:"name"`
	Help     string        `json:"help,omitempty" yaml:"help,omitempty"`
	Flags    []*SchemaFlag `json:"flags,omitempty" yaml:"flags,omitempty"`
	Args     []*SchemaArg  `json:"args,omitempty" yaml:"args,omitempty"`
	Children []*SchemaNode `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// SchemaFlag is one flag of a command
type SchemaFlag struct {
	Name      string   `json:"name" yaml:"name"`
	Short     string   `json:"short,omitempty" yaml:"short,omitempty"`
	Help      string   `json:"help,omitempty" yaml:"help,omitempty"`
	Default   string   `json:"default,omitempty" yaml:"default,omitempty"`
	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Env       string   `json:"env,omitempty" yaml:"env,omitempty"`
	Completes string   `json:"completes,omitempty" yaml:"completes,omitempty"`
}

// SchemaArg is one positional argument
type SchemaArg struct {
	Name      string `json:"name" yaml:"name"`
	Help      string `json:"help,omitempty" yaml:"help,omitempty"`
	Required  bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Completes string `json:"completes,omitempty" yaml:"completes,omitempty"`
}

// Run executes the schema command
func (cmd *SchemaCmd) Run(ctx *kong.Context, fp *FormatterProvider) error {
	node, err := findNode(ctx.Model.Node, cmd.Command)
	if err != nil {
		return err
	}
	return fp.Formatter.Print(describe(node))
}

// describe converts a kong node and its subcommands
func describe(node *kong.Node) *SchemaNode {
	out := &SchemaNode{Name: node.Name, Help: node.Help}

	for _, flag := range node.Flags {
		if flag.Name == "help" {
			continue
		}
		f := &SchemaFlag{
			Name:      flag.Name,
			Help:      flag.Help,
			Default:   flag.Default,
			Completes: flag.Tag.Get("predictor"),
		}
		if flag.Short != 0 {
			f.Short = string(flag.Short)
		}
		if flag.Enum != "" {
			f.Enum = strings.Split(flag.Enum, ",")
		}
		if len(flag.Envs) > 0 {
			f.Env = flag.Envs[0]
		}
		out.Flags = append(out.Flags, f)
	}

	for _, arg := range node.Positional {
		out.Args = append(out.Args, &SchemaArg{
			Name:      arg.Name,
			Help:      arg.Help,
			Required:  arg.Required,
			Completes: arg.Tag.Get("predictor"),
		})
	}

	for _, child := range node.Children {
		if child.Hidden {
			continue
		}
		out.Children = append(out.Children, describe(child))
	}

	return out
}

// findNode walks space-separated command names down from root
func findNode(root *kong.Node, path string) (*kong.Node, error) {
	current := root
	for _, part := range strings.Fields(path) {
		var next *kong.Node
		for _, child := range current.Children {
			if child.Name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, path)
		}
		current = next
	}
	return current, nil
}
