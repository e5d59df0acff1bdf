// Package cli wires the cobra command tree for the plansh binary.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtakeda/plansh/internal/app"
	"github.com/mtakeda/plansh/internal/domain"
	"github.com/mtakeda/plansh/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. A bare `plansh <words>` invocation
// is shorthand for `plansh query <words>`.
func NewRootCmd(opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(opts.Verbose)
	if err != nil {
		return nil, err
	}

	queryCmd := newQueryCommand(container)

	root := &cobra.Command{
		Use:   "plansh [query]",
		Short: "plansh - natural language to executable shell plans",
		Long:  "plansh turns a natural-language request into a validated, structured shell command plan.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			queryCmd.SetArgs(args)
			return queryCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(queryCmd)
	root.AddCommand(commands.NewVersionCommand())
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewCacheCommand(container))
	return root, nil
}

func newQueryCommand(container *app.Container) *cobra.Command {
	var (
		model        string
		providerName string
		legacy       bool
		maxRetries   int
		noContext    bool
		noCache      bool
		execute      bool
		snapshotFile string
		debug        bool
	)

	cmd := &cobra.Command{
		Use:   "query [natural language]",
		Short: "Generate a command plan from natural language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(snapshotFile)
			if err != nil {
				return err
			}
			req := domain.QueryRequest{
				Context:          cmd.Context(),
				Prompt:           strings.Join(args, " "),
				ProviderOverride: providerName,
				ModelOverride:    model,
				PlanMode:         !legacy,
				MaxRetries:       maxRetries,
				Snapshot:         snapshot,
				SkipContext:      noContext,
				SkipCache:        noCache,
				Execute:          execute,
				Debug:            debug,
			}
			resp, err := container.QueryService.Run(req)
			RenderResponse(cmd.OutOrStdout(), resp)
			return err
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().StringVar(&providerName, "provider", "", "Override provider (anthropic|gemini|openai|ollama|echo)")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Return a single command line instead of a structured plan")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 0, "Override plan-validation retry bound")
	cmd.Flags().BoolVar(&noContext, "no-context", false, "Skip directory/git context collection")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the plan cache")
	cmd.Flags().BoolVarP(&execute, "execute", "x", false, "Execute the plan after generation (subject to its confirm_mode)")
	cmd.Flags().StringVar(&snapshotFile, "snapshot-file", "", "Path to a JSON terminal snapshot to append to the prompt")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose logging")

	return cmd
}

// loadSnapshot reads an externally captured terminal snapshot. The capture
// itself happens outside this binary (a terminal-emulation engine); we only
// consume its JSON form.
func loadSnapshot(path string) (*domain.TerminalSnapshot, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap domain.TerminalSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}
