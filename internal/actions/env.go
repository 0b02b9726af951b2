package actions

import (
	"os"
	"strings"
)

// Environment looks up variables of the runner environment
type Environment func(name string) string

// OSEnvironment reads the process environment
var OSEnvironment Environment = os.Getenv

// Input returns the trimmed value of an action input.
// Names follow the runner convention: upper case, spaces replaced by underscores.
func (e Environment) Input(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(e(key))
}

// State returns a value saved by an earlier step of the same action
func (e Environment) State(name string) string {
	return e("STATE_" + name)
}

// SummaryPath returns the job summary file path, empty when unset
func (e Environment) SummaryPath() string {
	return e("GITHUB_STEP_SUMMARY")
}

// OutputPath returns the step outputs file path, empty when unset
func (e Environment) OutputPath() string {
	return e("GITHUB_OUTPUT")
}

// Workspace returns the checkout directory, empty when unset
func (e Environment) Workspace() string {
	return e("GITHUB_WORKSPACE")
}
