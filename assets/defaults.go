package assets

import (
	_ "embed"
)

// CommandPrompt contains the embedded base system prompt for legacy
// single-line command generation.
//
//go:embed defaults/command_prompt.txt
var CommandPrompt string

// PlanPrompt contains the embedded base system prompt for structured
// command-plan generation.
//
//go:embed defaults/plan_prompt.txt
var PlanPrompt string
