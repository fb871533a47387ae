package domain

import "path/filepath"

// Resource represents a resource or module block found in a Terraform file
type Resource struct {
	Type       string // resource type, e.g. "aws_instance"; empty for modules
	Name       string
	IsModule   bool
	File       string // path of the declaring .tf file
	HasCount   bool
	HasForEach bool
}

// Address returns the Terraform address of the resource
func (r Resource) Address() string {
	if r.IsModule {
		return "module." + r.Name
	}
	return r.Type + "." + r.Name
}

// Candidate is one selectable row of the menu
type Candidate struct {
	Identifier string
	Label      string
	Detail     string // secondary display text, never ranked
}

// CandidateSet is the ordered, immutable list of candidates for one session.
// Order is discovery order.
type CandidateSet []Candidate

// Contains reports whether id is the identifier of any candidate in the set
func (s CandidateSet) Contains(id string) bool {
	for _, c := range s {
		if c.Identifier == id {
			return true
		}
	}
	return false
}

// Action is the verb passed to the external executable
type Action string

const (
	ActionPlan  Action = "plan"
	ActionApply Action = "apply"
)

// Actions lists the supported actions in menu order
var Actions = []Action{ActionPlan, ActionApply}

// Description returns the one-line help shown next to the action in the action menu
func (a Action) Description() string {
	switch a {
	case ActionPlan:
		return "Show changes to be made"
	case ActionApply:
		return "Execute the planned changes"
	default:
		return ""
	}
}

// Valid reports whether a is one of the supported actions
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// RunRequest is built once when the selection is confirmed and never modified afterwards
type RunRequest struct {
	Action  Action
	Targets []string
	Dir     string // working directory of the child; "" means the current directory
}

// NewRunRequest copies targets so later changes to the caller's slice cannot leak in
func NewRunRequest(action Action, targets []string, dir string) RunRequest {
	t := make([]string, len(targets))
	copy(t, targets)
	return RunRequest{Action: action, Targets: t, Dir: dir}
}

// WorkDirFor returns the directory declaring the first target
func WorkDirFor(resources []Resource, targets []string) string {
	if len(targets) == 0 {
		return ""
	}
	for _, r := range resources {
		if r.Address() == targets[0] {
			return filepath.Dir(r.File)
		}
	}
	return ""
}
