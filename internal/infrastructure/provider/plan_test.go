package provider

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mtakeda/plansh/internal/domain"
)

const fullPlanJSON = `{"plan_id":"cmd-1","command":"echo","args":["Hello World!"],"env":{},"stdin":null,"paste_policy":"auto","confirm_mode":"auto","expectations":[],"failure_signals":[],"created_at":1699564800000}`

func TestParsePlanFullDocument(t *testing.T) {
	plan, err := ParsePlan(fullPlanJSON)
	if err != nil {
		t.Fatalf("ParsePlan() error = %v", err)
	}

	want := domain.CommandPlan{
		PlanID:      "cmd-1",
		Command:     "echo",
		Args:        []string{"Hello World!"},
		Env:         map[string]string{},
		PastePolicy: domain.PasteAuto,
		ConfirmMode: domain.ConfirmAuto,
		CreatedAt:   1699564800000,
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePlanOptionalFieldsDefault(t *testing.T) {
	plan, err := ParsePlan(`{"plan_id":"p","command":"ls","args":[],"paste_policy":"never","confirm_mode":"preview","created_at":1}`)
	if err != nil {
		t.Fatalf("ParsePlan() error = %v", err)
	}
	if plan.Env == nil || len(plan.Env) != 0 {
		t.Errorf("env = %v, want empty map", plan.Env)
	}
	if plan.Stdin != "" || len(plan.Expectations) != 0 || len(plan.FailureSignals) != 0 {
		t.Errorf("optional fields not defaulted: %+v", plan)
	}
}

func TestParsePlanRichFields(t *testing.T) {
	plan, err := ParsePlan(`{"plan_id":"p","command":"grep","args":["-r","TODO","."],` +
		`"env":{"LC_ALL":"C"},"stdin":"input here","paste_policy":"needs_confirm","confirm_mode":"preview",` +
		`"expectations":[{"pattern":"TODO","exit_code":0}],` +
		`"failure_signals":[{"pattern":"permission denied","severity":"err"}],"created_at":42}`)
	if err != nil {
		t.Fatalf("ParsePlan() error = %v", err)
	}
	if plan.Env["LC_ALL"] != "C" || plan.Stdin != "input here" {
		t.Errorf("plan = %+v", plan)
	}
	if len(plan.Expectations) != 1 || plan.Expectations[0].Pattern != "TODO" {
		t.Errorf("expectations = %+v", plan.Expectations)
	}
	if len(plan.FailureSignals) != 1 || plan.FailureSignals[0].Severity != domain.SeverityErr {
		t.Errorf("failure_signals = %+v", plan.FailureSignals)
	}
}

func TestParsePlanSyntaxError(t *testing.T) {
	_, err := ParsePlan("sure! here is your command: ls -la")
	if !errors.Is(err, domain.ErrPlanSyntax) {
		t.Fatalf("error = %v, want ErrPlanSyntax", err)
	}
}

func TestParsePlanUnknownField(t *testing.T) {
	_, err := ParsePlan(`{"plan_id":"p","command":"ls","args":[],"paste_policy":"auto","confirm_mode":"auto","created_at":1,"comment":"extra"}`)
	if !errors.Is(err, domain.ErrPlanUnknownField) {
		t.Fatalf("error = %v, want ErrPlanUnknownField", err)
	}
}

func TestParsePlanMissingField(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"no plan_id", `{"command":"ls","args":[],"paste_policy":"auto","confirm_mode":"auto","created_at":1}`},
		{"no command", `{"plan_id":"p","args":[],"paste_policy":"auto","confirm_mode":"auto","created_at":1}`},
		{"no args", `{"plan_id":"p","command":"ls","paste_policy":"auto","confirm_mode":"auto","created_at":1}`},
		{"no paste_policy", `{"plan_id":"p","command":"ls","args":[],"confirm_mode":"auto","created_at":1}`},
		{"no confirm_mode", `{"plan_id":"p","command":"ls","args":[],"paste_policy":"auto","created_at":1}`},
		{"no created_at", `{"plan_id":"p","command":"ls","args":[],"paste_policy":"auto","confirm_mode":"auto"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePlan(tc.json); !errors.Is(err, domain.ErrPlanMissingField) {
				t.Fatalf("error = %v, want ErrPlanMissingField", err)
			}
		})
	}
}

func TestParsePlanRejectsUnknownEnumValues(t *testing.T) {
	_, err := ParsePlan(`{"plan_id":"p","command":"ls","args":[],"paste_policy":"sometimes","confirm_mode":"auto","created_at":1}`)
	if !errors.Is(err, domain.ErrPlanInvalidValue) {
		t.Fatalf("paste_policy error = %v, want ErrPlanInvalidValue", err)
	}

	_, err = ParsePlan(`{"plan_id":"p","command":"ls","args":[],"paste_policy":"auto","confirm_mode":"maybe","created_at":1}`)
	if !errors.Is(err, domain.ErrPlanInvalidValue) {
		t.Fatalf("confirm_mode error = %v, want ErrPlanInvalidValue", err)
	}

	_, err = ParsePlan(`{"plan_id":"p","command":"ls","args":[],"paste_policy":"auto","confirm_mode":"auto",` +
		`"failure_signals":[{"pattern":"x","severity":"fatal"}],"created_at":1}`)
	if !errors.Is(err, domain.ErrPlanInvalidValue) {
		t.Fatalf("severity error = %v, want ErrPlanInvalidValue", err)
	}
}

func TestParsePlanRejectsEmptyCommand(t *testing.T) {
	_, err := ParsePlan(`{"plan_id":"p","command":"","args":[],"paste_policy":"auto","confirm_mode":"auto","created_at":1}`)
	if !errors.Is(err, domain.ErrPlanInvalidValue) {
		t.Fatalf("error = %v, want ErrPlanInvalidValue", err)
	}
}
