package cli

import (
	"fmt"
	"io"

	"github.com/mtakeda/plansh/internal/domain"
)

// RenderResponse prints the response in a plain, ASCII-only format.
func RenderResponse(out io.Writer, resp domain.QueryResponse) {
	if resp.FromCache {
		fmt.Fprintln(out, "Note: result served from cache")
	}

	if resp.Plan != nil {
		renderPlan(out, resp.Plan)
	} else if resp.Command != "" {
		fmt.Fprintln(out, resp.Command)
	}

	if resp.Attempts > 1 {
		fmt.Fprintf(out, "\n(plan accepted on attempt %d)\n", resp.Attempts)
	}

	if resp.ExecutionResult != nil {
		renderExecution(out, resp.ExecutionResult)
	}
}

func renderPlan(out io.Writer, plan *domain.CommandPlan) {
	fmt.Fprintf(out, "Plan %s:\n", plan.PlanID)
	fmt.Fprintf(out, "  command: %s\n", plan.Command)
	if len(plan.Args) > 0 {
		fmt.Fprintf(out, "  args:    %q\n", plan.Args)
	}
	for k, v := range plan.Env {
		fmt.Fprintf(out, "  env:     %s=%s\n", k, v)
	}
	if plan.Stdin != "" {
		fmt.Fprintf(out, "  stdin:   %d bytes\n", len(plan.Stdin))
	}
	fmt.Fprintf(out, "  paste:   %s  confirm: %s\n", plan.PastePolicy, plan.ConfirmMode)
}

func renderExecution(out io.Writer, result *domain.ExecutionResult) {
	if !result.Ran {
		fmt.Fprintln(out, "\nCommand was not executed.")
		if result.DryRunNotes != "" {
			fmt.Fprintf(out, "  %s\n", result.DryRunNotes)
		}
		return
	}
	fmt.Fprintf(out, "\nExecuted in %dms, exit code %d.\n", result.DurationMS, result.ExitCode)
	if result.Satisfied {
		fmt.Fprintln(out, "Expectations satisfied.")
	}
	for _, sig := range result.MatchedSignals {
		fmt.Fprintf(out, "Failure signal matched (%s): %s\n", sig.Severity, sig.Pattern)
	}
	if result.Stdout != "" {
		fmt.Fprintln(out, "\nstdout:")
		fmt.Fprint(out, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprintln(out, "\nstderr:")
		fmt.Fprint(out, result.Stderr)
	}
}
