package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtakeda/plansh/internal/app"
)

var errCacheDisabled = errors.New("cache is disabled in configuration")

// NewCacheCommand creates the cache command with its subcommands.
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the plan cache",
	}

	cacheCmd.AddCommand(newCacheClearCommand(container))
	return cacheCmd
}

func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CacheStore == nil {
				return errCacheDisabled
			}
			if err := container.CacheStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
}
