package domain

import "fmt"

// PastePolicy governs whether a generated command may be inserted into the
// shell buffer without confirmation.
type PastePolicy string

const (
	PasteAuto         PastePolicy = "auto"
	PasteNeedsConfirm PastePolicy = "needs_confirm"
	PasteNever        PastePolicy = "never"
)

// ParsePastePolicy validates a paste policy against its closed set.
func ParsePastePolicy(s string) (PastePolicy, error) {
	switch PastePolicy(s) {
	case PasteAuto, PasteNeedsConfirm, PasteNever:
		return PastePolicy(s), nil
	}
	return "", fmt.Errorf("paste_policy must be auto|needs_confirm|never, got %q", s)
}

// ConfirmMode governs execution gating for a generated plan.
type ConfirmMode string

const (
	ConfirmAuto    ConfirmMode = "auto"
	ConfirmPreview ConfirmMode = "preview"
	ConfirmReject  ConfirmMode = "reject"
)

// ParseConfirmMode validates a confirm mode against its closed set.
func ParseConfirmMode(s string) (ConfirmMode, error) {
	switch ConfirmMode(s) {
	case ConfirmAuto, ConfirmPreview, ConfirmReject:
		return ConfirmMode(s), nil
	}
	return "", fmt.Errorf("confirm_mode must be auto|preview|reject, got %q", s)
}

// Severity ranks a matched failure signal.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityErr      Severity = "err"
	SeverityCritical Severity = "critical"
)

// ParseSeverity validates a severity against its closed set.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityWarning, SeverityErr, SeverityCritical:
		return Severity(s), nil
	}
	return "", fmt.Errorf("severity must be warning|err|critical, got %q", s)
}

// Expectation is a success-validation hint attached to a plan.
type Expectation struct {
	Pattern  string `json:"pattern"`
	ExitCode int    `json:"exit_code"`
}

// FailureSignal is a failure-detection hint attached to a plan.
type FailureSignal struct {
	Pattern  string   `json:"pattern"`
	Severity Severity `json:"severity"`
}

// CommandPlan is the structured, schema-validated description of a shell
// action. It is constructed exactly once per successful query, owned by the
// caller, and never mutated after construction.
type CommandPlan struct {
	PlanID         string            `json:"plan_id"`
	Command        string            `json:"command"`
	Args           []string          `json:"args"`
	Env            map[string]string `json:"env"`
	Stdin          string            `json:"stdin,omitempty"`
	PastePolicy    PastePolicy       `json:"paste_policy"`
	ConfirmMode    ConfirmMode       `json:"confirm_mode"`
	Expectations   []Expectation     `json:"expectations"`
	FailureSignals []FailureSignal   `json:"failure_signals"`
	CreatedAt      int64             `json:"created_at"`
}

// ExecutionResult wraps details from the plan executor.
type ExecutionResult struct {
	Ran            bool
	Stdout         string
	Stderr         string
	ExitCode       int
	DurationMS     int64
	Satisfied      bool
	MatchedSignals []FailureSignal
	DryRunNotes    string
}
