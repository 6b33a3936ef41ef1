package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatsBuckets(t *testing.T) {
	records := []Record{
		{PatientID: "p1", DoctorID: "d1", Status: StatusPending},
		{PatientID: "p1", DoctorID: "d1", Status: StatusPending},
		{PatientID: "p1", DoctorID: "d2", Status: StatusApproved},
		{PatientID: "p1", DoctorID: "d1", Status: StatusRejected},
		{PatientID: "p1", DoctorID: "d2", Status: StatusCompleted},
	}

	stats := ComputeStats(records, "p1", RolePatient)
	assert.Equal(t, Stats{Total: 5, Upcoming: 3, Completed: 1, Cancelled: 1}, stats)
}

func TestComputeStatsFiltersByViewer(t *testing.T) {
	records := []Record{
		{PatientID: "p1", DoctorID: "d1", Status: StatusPending},
		{PatientID: "p2", DoctorID: "d1", Status: StatusCompleted},
		{PatientID: "p2", DoctorID: "d2", Status: StatusApproved},
	}

	// Doctor d1 sees only their two appointments.
	stats := ComputeStats(records, "d1", RoleDoctor)
	assert.Equal(t, Stats{Total: 2, Upcoming: 1, Completed: 1}, stats)

	// Patient p2 sees only their two.
	stats = ComputeStats(records, "p2", RolePatient)
	assert.Equal(t, Stats{Total: 2, Upcoming: 1, Completed: 1}, stats)

	// A viewer with no appointments gets zeroes.
	stats = ComputeStats(records, "p9", RolePatient)
	assert.Equal(t, Stats{}, stats)
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil, "p1", RolePatient))
}
