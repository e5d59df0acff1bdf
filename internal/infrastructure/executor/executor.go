// Package executor runs validated command plans and scores the outcome
// against the plan's expectations and failure signals.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/mtakeda/plansh/internal/domain"
	"github.com/mtakeda/plansh/internal/ports"
)

// PlanExecutor executes plans directly via argv, never through a shell:
// the plan already separates command and arguments, so nothing gets
// re-tokenized or glob-expanded on the way in.
type PlanExecutor struct{}

func NewPlanExecutor() *PlanExecutor {
	return &PlanExecutor{}
}

// Execute runs the plan's command with its args, env overlay, and stdin, then
// evaluates expectations and failure signals against the captured output.
func (e *PlanExecutor) Execute(ctx context.Context, plan domain.CommandPlan) (domain.ExecutionResult, error) {
	cmd := exec.CommandContext(ctx, plan.Command, plan.Args...)
	cmd.Env = overlayEnv(plan.Env)
	if plan.Stdin != "" {
		cmd.Stdin = strings.NewReader(plan.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()

	result := domain.ExecutionResult{
		Ran:        true,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: time.Since(start).Milliseconds(),
	}

	if exitErr, ok := runErr.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
	} else if runErr != nil {
		result.Ran = false
		return result, fmt.Errorf("run %s: %w", plan.Command, runErr)
	}

	combined := result.Stdout + "\n" + result.Stderr
	result.Satisfied = checkExpectations(plan.Expectations, combined, result.ExitCode)
	result.MatchedSignals = matchSignals(plan.FailureSignals, combined)
	return result, nil
}

// checkExpectations reports whether every hint holds. A plan without
// expectations is satisfied by a zero exit code alone.
func checkExpectations(expectations []domain.Expectation, output string, exitCode int) bool {
	if len(expectations) == 0 {
		return exitCode == 0
	}
	for _, exp := range expectations {
		if exp.ExitCode != exitCode {
			return false
		}
		if exp.Pattern == "" {
			continue
		}
		re, err := regexp.Compile(exp.Pattern)
		if err != nil {
			// An unparsable hint cannot confirm success.
			return false
		}
		if !re.MatchString(output) {
			return false
		}
	}
	return true
}

func matchSignals(signals []domain.FailureSignal, output string) []domain.FailureSignal {
	var matched []domain.FailureSignal
	for _, sig := range signals {
		re, err := regexp.Compile(sig.Pattern)
		if err != nil {
			continue
		}
		if re.MatchString(output) {
			matched = append(matched, sig)
		}
	}
	return matched
}

func overlayEnv(extra map[string]string) []string {
	if len(extra) == 0 {
		return os.Environ()
	}
	env := os.Environ()
	for key, value := range extra {
		env = append(env, key+"="+value)
	}
	return env
}

var _ ports.PlanExecutor = (*PlanExecutor)(nil)
