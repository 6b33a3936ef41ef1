package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDoctorEdges(t *testing.T) {
	next, err := Apply(StatusPending, ActionApprove, RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, next)

	next, err = Apply(StatusPending, ActionReject, RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, next)

	next, err = Apply(StatusApproved, ActionComplete, RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, next)
}

func TestApplyPatientCancel(t *testing.T) {
	next, err := Apply(StatusPending, ActionCancel, RolePatient)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, next)

	next, err = Apply(StatusApproved, ActionCancel, RolePatient)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, next)
}

func TestApproveRejectOnlyFromPending(t *testing.T) {
	for _, from := range []Status{StatusApproved, StatusRejected, StatusCompleted} {
		_, err := Apply(from, ActionApprove, RoleDoctor)
		assert.ErrorIs(t, err, ErrInvalidTransition, "approve from %s", from)

		_, err = Apply(from, ActionReject, RoleDoctor)
		assert.ErrorIs(t, err, ErrInvalidTransition, "reject from %s", from)
	}
}

func TestTerminalStatesHaveNoEdges(t *testing.T) {
	for _, from := range []Status{StatusRejected, StatusCompleted} {
		for _, action := range []Action{ActionApprove, ActionReject, ActionCancel, ActionComplete} {
			role := RoleDoctor
			if action == ActionCancel {
				role = RolePatient
			}
			_, err := Apply(from, action, role)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s from %s", action, from)
		}
	}
}

func TestApplyUnauthorizedRole(t *testing.T) {
	// Patients may not approve, reject or complete.
	for _, action := range []Action{ActionApprove, ActionReject, ActionComplete} {
		_, err := Apply(StatusPending, action, RolePatient)
		assert.ErrorIs(t, err, ErrInvalidTransition, "patient %s", action)
	}

	// Doctors may not cancel on the patient's behalf.
	_, err := Apply(StatusPending, ActionCancel, RoleDoctor)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestActionForStatus(t *testing.T) {
	action, err := ActionForStatus(StatusApproved, RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, ActionApprove, action)

	// A patient asking for rejected is a cancel; a doctor asking is a reject.
	action, err = ActionForStatus(StatusRejected, RolePatient)
	require.NoError(t, err)
	assert.Equal(t, ActionCancel, action)

	action, err = ActionForStatus(StatusRejected, RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, ActionReject, action)

	action, err = ActionForStatus(StatusCompleted, RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, ActionComplete, action)

	_, err = ActionForStatus(StatusPending, RolePatient)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ActionForStatus(Status("archived"), RoleDoctor)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCanReschedule(t *testing.T) {
	assert.NoError(t, CanReschedule(StatusPending))
	assert.NoError(t, CanReschedule(StatusApproved))
	assert.ErrorIs(t, CanReschedule(StatusRejected), ErrInvalidState)
	assert.ErrorIs(t, CanReschedule(StatusCompleted), ErrInvalidState)
}

func TestCanRecordTreatment(t *testing.T) {
	assert.NoError(t, CanRecordTreatment(StatusApproved))
	assert.ErrorIs(t, CanRecordTreatment(StatusPending), ErrInvalidState)
	assert.ErrorIs(t, CanRecordTreatment(StatusRejected), ErrInvalidState)
	assert.ErrorIs(t, CanRecordTreatment(StatusCompleted), ErrInvalidState)
}

func TestLifecycleScenario(t *testing.T) {
	// create -> approve -> treat -> re-treat fails
	status := StatusPending

	status, err := Apply(status, ActionApprove, RoleDoctor)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, status)

	require.NoError(t, CanRecordTreatment(status))
	status, err = Apply(status, ActionComplete, RoleDoctor)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)

	assert.ErrorIs(t, CanRecordTreatment(status), ErrInvalidState)
}

func TestRejectThenRescheduleScenario(t *testing.T) {
	status, err := Apply(StatusPending, ActionReject, RoleDoctor)
	require.NoError(t, err)
	require.Equal(t, StatusRejected, status)

	assert.ErrorIs(t, CanReschedule(status), ErrInvalidState)
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected, StatusCompleted} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus(Status("scheduled")))
	assert.False(t, ValidStatus(Status("")))
}

func TestValidSlot(t *testing.T) {
	for _, slot := range Slots {
		assert.True(t, ValidSlot(slot))
	}
	assert.False(t, ValidSlot("07:00 AM"))
	assert.False(t, ValidSlot(""))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-03-14"))
	assert.False(t, ValidDate("14-03-2025"))
	assert.False(t, ValidDate("2025-13-01"))
	assert.False(t, ValidDate("tomorrow"))
}
