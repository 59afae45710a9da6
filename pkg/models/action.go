package models

import (
	"fmt"
)

// ActionKind selects what to do with unpaired files
type ActionKind string

const (
	// ActionNone leaves both trees untouched
	ActionNone ActionKind = "none"
	// ActionRelocate moves unpaired files into a subfolder of their own root
	ActionRelocate ActionKind = "relocate"
	// ActionDelete permanently removes unpaired files after confirmation
	ActionDelete ActionKind = "delete"
)

// Folder names created under the relocation subfolder
const (
	MissingInTargetDir = "missing_in_target"
	ExtraInTargetDir   = "extra_in_target"
)

// ReconciliationAction is built once from user input and applied once
type ReconciliationAction struct {
	Kind ActionKind

	// Subfolder is the relocation destination, relative to each root.
	// Only used by ActionRelocate.
	Subfolder string
}

// NoAction returns the no-op action
func NoAction() ReconciliationAction {
	return ReconciliationAction{Kind: ActionNone}
}

// Relocate returns a relocation action targeting subfolder
func Relocate(subfolder string) ReconciliationAction {
	return ReconciliationAction{Kind: ActionRelocate, Subfolder: subfolder}
}

// Delete returns the delete action
func Delete() ReconciliationAction {
	return ReconciliationAction{Kind: ActionDelete}
}

// Validate checks the action before any filesystem access
func (a ReconciliationAction) Validate() error {
	switch a.Kind {
	case ActionNone, ActionDelete:
		return nil
	case ActionRelocate:
		if a.Subfolder == "" {
			return &ValidationError{Field: "Subfolder", Message: "relocation requires a destination subfolder"}
		}
		return nil
	case "":
		return &ValidationError{Field: "Kind", Message: "action is required"}
	default:
		return &ValidationError{Field: "Kind", Message: fmt.Sprintf("unknown action %q", a.Kind)}
	}
}

func (a ReconciliationAction) String() string {
	if a.Kind == ActionRelocate {
		return fmt.Sprintf("%s(%s)", a.Kind, a.Subfolder)
	}
	return string(a.Kind)
}

// ActionState tracks the executor's linear pass
type ActionState string

const (
	StateIdle       ActionState = "idle"
	StateConfirming ActionState = "confirming"
	StateApplying   ActionState = "applying"
	StateDone       ActionState = "done"
)

// Relocation records one moved file
type Relocation struct {
	From string
	To   string

	// Overwrote is true when a file already existed at To
	Overwrote bool
}

// ActionOutcome reports what an applied action did
type ActionOutcome struct {
	Action ReconciliationAction

	// State is the last state reached. StateIdle after a declined confirmation.
	State ActionState

	// Aborted is set when a delete was not confirmed
	Aborted bool

	Moved   []Relocation
	Deleted []string

	// Skipped lists absolute paths already inside the relocation folder
	Skipped []string

	// Vanished lists absolute paths that no longer existed when the action ran
	Vanished []string

	// Failures holds per-file errors; processing continued past each one
	Failures []*FileError
}

// NewActionOutcome returns an idle outcome for action
func NewActionOutcome(action ReconciliationAction) *ActionOutcome {
	return &ActionOutcome{Action: action, State: StateIdle}
}

// Touched returns how many files were moved or deleted
func (o *ActionOutcome) Touched() int {
	if o == nil {
		return 0
	}
	return len(o.Moved) + len(o.Deleted)
}
