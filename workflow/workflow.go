package workflow

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Action is a requested status change.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

// Role of the actor requesting a transition.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Slots is the fixed set of bookable time labels.
var Slots = []string{"09:00 AM", "10:00 AM", "11:00 AM", "02:00 PM", "04:00 PM", "06:00 PM"}

// DateLayout is the calendar date format used on appointment records.
const DateLayout = "2006-01-02"

// transitions maps current status and action to the next status.
// Missing entries are invalid transitions.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
		ActionCancel:  StatusRejected,
	},
	StatusApproved: {
		ActionCancel:   StatusRejected,
		ActionComplete: StatusCompleted,
	},
}

// permissions is the single authorization table: role x action.
var permissions = map[Role]map[Action]bool{
	RoleDoctor: {
		ActionApprove:  true,
		ActionReject:   true,
		ActionComplete: true,
	},
	RolePatient: {
		ActionCancel: true,
	},
}

// ValidStatus reports whether s is one of the four enumerated statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// ValidSlot reports whether label is a bookable time slot.
func ValidSlot(label string) bool {
	for _, s := range Slots {
		if s == label {
			return true
		}
	}
	return false
}

// ValidDate reports whether value parses as a calendar date.
func ValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// Apply validates a transition against the current status and the actor's
// role and returns the next status. Both an edge missing from the transition
// table and a role not permitted for the action fail with
// ErrInvalidTransition; nothing here silently no-ops.
func Apply(current Status, action Action, role Role) (Status, error) {
	if !permissions[role][action] {
		return "", fmt.Errorf("%w: role %q may not %s", ErrInvalidTransition, role, action)
	}
	next, ok := transitions[current][action]
	if !ok {
		return "", fmt.Errorf("%w: cannot %s a %s appointment", ErrInvalidTransition, action, current)
	}
	return next, nil
}

// ActionForStatus maps a requested target status to the action that reaches
// it. The HTTP surface takes `{status}` in the body; the engine reasons in
// actions so that patient cancel and doctor reject stay distinct edges.
func ActionForStatus(target Status, role Role) (Action, error) {
	switch target {
	case StatusApproved:
		return ActionApprove, nil
	case StatusRejected:
		if role == RolePatient {
			return ActionCancel, nil
		}
		return ActionReject, nil
	case StatusCompleted:
		return ActionComplete, nil
	}
	return "", fmt.Errorf("%w: unknown target status %q", ErrValidation, target)
}

// CanReschedule reports whether date/timeSlot may still be mutated.
// Terminal appointments are frozen.
func CanReschedule(current Status) error {
	if current == StatusRejected || current == StatusCompleted {
		return fmt.Errorf("%w: cannot reschedule a %s appointment", ErrInvalidState, current)
	}
	return nil
}

// CanRecordTreatment reports whether clinical outcome fields may be written.
// Only an approved appointment accepts treatment; once completed the fields
// are read-only.
func CanRecordTreatment(current Status) error {
	if current != StatusApproved {
		return fmt.Errorf("%w: cannot record treatment for a %s appointment", ErrInvalidState, current)
	}
	return nil
}
