package workflow

// Record is the slice of an appointment the aggregator needs.
type Record struct {
	PatientID string
	DoctorID  string
	Status    Status
}

// Stats summarizes a viewer's appointments per status bucket.
type Stats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// ComputeStats filters records to those belonging to the viewer and counts
// them per bucket. Pure function, no ordering requirements.
func ComputeStats(records []Record, viewerID string, role Role) Stats {
	var stats Stats
	for _, r := range records {
		if role == RoleDoctor && r.DoctorID != viewerID {
			continue
		}
		if role == RolePatient && r.PatientID != viewerID {
			continue
		}
		stats.Total++
		switch r.Status {
		case StatusPending, StatusApproved:
			stats.Upcoming++
		case StatusCompleted:
			stats.Completed++
		case StatusRejected:
			stats.Cancelled++
		}
	}
	return stats
}
