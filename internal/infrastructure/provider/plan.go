package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mtakeda/plansh/internal/domain"
)

// rawPlan mirrors the plan schema with pointer fields so that "absent" and
// "present but zero" stay distinguishable during validation.
type rawPlan struct {
	PlanID         *string           `json:"plan_id"`
	Command        *string           `json:"command"`
	Args           *[]string         `json:"args"`
	Env            map[string]string `json:"env"`
	Stdin          *string           `json:"stdin"`
	PastePolicy    *string           `json:"paste_policy"`
	ConfirmMode    *string           `json:"confirm_mode"`
	Expectations   []rawExpectation  `json:"expectations"`
	FailureSignals []rawSignal       `json:"failure_signals"`
	CreatedAt      *int64            `json:"created_at"`
}

type rawExpectation struct {
	Pattern  string `json:"pattern"`
	ExitCode int    `json:"exit_code"`
}

type rawSignal struct {
	Pattern  string `json:"pattern"`
	Severity string `json:"severity"`
}

// ParsePlan turns provider output into a validated CommandPlan. Failures
// carry one of the plan error sentinels: ErrPlanSyntax for unparsable JSON,
// ErrPlanUnknownField for keys outside the schema, ErrPlanMissingField for
// absent required keys, and ErrPlanInvalidValue for enum or emptiness
// violations. Optional fields default to empty.
func ParsePlan(text string) (domain.CommandPlan, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var raw rawPlan
	if err := dec.Decode(&raw); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return domain.CommandPlan{}, fmt.Errorf("%w: %v", domain.ErrPlanUnknownField, err)
		}
		return domain.CommandPlan{}, fmt.Errorf("%w: %v", domain.ErrPlanSyntax, err)
	}

	if err := requireFields(raw); err != nil {
		return domain.CommandPlan{}, err
	}

	if *raw.PlanID == "" {
		return domain.CommandPlan{}, fmt.Errorf("%w: plan_id is empty", domain.ErrPlanInvalidValue)
	}
	if *raw.Command == "" {
		return domain.CommandPlan{}, fmt.Errorf("%w: command is empty", domain.ErrPlanInvalidValue)
	}

	paste, err := domain.ParsePastePolicy(*raw.PastePolicy)
	if err != nil {
		return domain.CommandPlan{}, fmt.Errorf("%w: %v", domain.ErrPlanInvalidValue, err)
	}
	confirm, err := domain.ParseConfirmMode(*raw.ConfirmMode)
	if err != nil {
		return domain.CommandPlan{}, fmt.Errorf("%w: %v", domain.ErrPlanInvalidValue, err)
	}

	plan := domain.CommandPlan{
		PlanID:      *raw.PlanID,
		Command:     *raw.Command,
		Args:        append([]string{}, (*raw.Args)...),
		Env:         raw.Env,
		PastePolicy: paste,
		ConfirmMode: confirm,
		CreatedAt:   *raw.CreatedAt,
	}
	if plan.Env == nil {
		plan.Env = map[string]string{}
	}
	if raw.Stdin != nil {
		plan.Stdin = *raw.Stdin
	}

	for _, e := range raw.Expectations {
		plan.Expectations = append(plan.Expectations, domain.Expectation{
			Pattern:  e.Pattern,
			ExitCode: e.ExitCode,
		})
	}
	for _, s := range raw.FailureSignals {
		severity, err := domain.ParseSeverity(s.Severity)
		if err != nil {
			return domain.CommandPlan{}, fmt.Errorf("%w: %v", domain.ErrPlanInvalidValue, err)
		}
		plan.FailureSignals = append(plan.FailureSignals, domain.FailureSignal{
			Pattern:  s.Pattern,
			Severity: severity,
		})
	}

	return plan, nil
}

func requireFields(raw rawPlan) error {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s", domain.ErrPlanMissingField, name)
	}
	switch {
	case raw.PlanID == nil:
		return missing("plan_id")
	case raw.Command == nil:
		return missing("command")
	case raw.Args == nil:
		return missing("args")
	case raw.PastePolicy == nil:
		return missing("paste_policy")
	case raw.ConfirmMode == nil:
		return missing("confirm_mode")
	case raw.CreatedAt == nil:
		return missing("created_at")
	}
	return nil
}
