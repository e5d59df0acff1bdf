package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtakeda/plansh/internal/app"
	"github.com/mtakeda/plansh/internal/domain"
)

const msgNoHistoryRecorded = "No history recorded yet."

var errHistoryDisabled = errors.New("history is disabled in configuration")

// NewHistoryCommand creates the history command with its subcommands.
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect plansh query history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
	)
	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search history by prompt or command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit, strings.Join(args, " "))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistorySearchLimit, "Max results to show")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return errHistoryDisabled
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func listHistoryEntries(out io.Writer, container *app.Container, limit int, search string) error {
	if container.HistoryStore == nil {
		return errHistoryDisabled
	}
	records, err := container.HistoryStore.Records(limit, search)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}
	for _, rec := range records {
		line := rec.Command
		if len(rec.Args) > 0 {
			line += " " + strings.Join(rec.Args, " ")
		}
		fmt.Fprintf(out, "%s  [%s/%s]  %q -> %s\n",
			rec.Timestamp.Format("2006-01-02 15:04"),
			rec.Provider, rec.Model, rec.Prompt, line)
	}
	return nil
}
