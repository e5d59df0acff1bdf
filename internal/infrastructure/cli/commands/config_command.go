package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mtakeda/plansh/internal/app"
)

// NewConfigCommand creates the config command with its subcommands.
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect plansh configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigPathCommand(container),
	)
	return configCmd
}

func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), container)
		},
	}
}

func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the preferences file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}
}

// showConfiguration renders the resolved config as YAML. API keys carry the
// `yaml:"-"` tag so they never appear in the output.
func showConfiguration(out io.Writer, container *app.Container) error {
	raw, err := yaml.Marshal(container.Config)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# resolved configuration (file: %s)\n", container.ConfigLoader.Path())
	_, err = out.Write(raw)
	return err
}
