package models

// TimelineStep is one stage of the patient-facing progress tracker.
type TimelineStep struct {
	Label     string            `json:"label"`
	Status    AppointmentStatus `json:"status"`
	Completed bool              `json:"completed"`
}

var timelineStages = []struct {
	label  string
	status AppointmentStatus
}{
	{"Booked", StatusConfirmed},
	{"Collected", StatusSampleCollected},
	{"Report", StatusReportReady},
}

// Timeline builds the Booked -> Collected -> Report tracker for a status.
func Timeline(status AppointmentStatus) []TimelineStep {
	steps := make([]TimelineStep, len(timelineStages))
	for i, stage := range timelineStages {
		done := status == stage.status ||
			(status == StatusReportReady && i < 2) ||
			status == StatusCompleted
		steps[i] = TimelineStep{Label: stage.label, Status: stage.status, Completed: done}
	}
	return steps
}
