package models

// CancellationNotice carries everything the notification worker needs to
// tell a patient their appointment was cancelled. It is queued after the
// cancellation has committed; delivery failures never touch booking state.
type CancellationNotice struct {
	PatientID    string `json:"patientId"`
	ProviderName string `json:"providerName"`
	SlotDate     string `json:"slotDate"`
	SlotTime     string `json:"slotTime"`
	Reason       string `json:"reason"`
}

// ReminderPayload is the queued payload for an upcoming-appointment
// reminder push.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	ProviderName  string `json:"providerName"`
	SlotDate      string `json:"slotDate"`
	SlotTime      string `json:"slotTime"`
}
