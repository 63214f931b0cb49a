package scheduling

import (
	"time"

	"github.com/hms/hms/internal/platform/store"
)

// Appointment statuses. Scheduled appointments may move to completed or
// cancelled; cancelled is terminal.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool { return validStatuses[s] }

// MinGap is the minimum separation between two non-cancelled
// appointments of the same doctor on the same date. A gap of exactly
// MinGap is allowed; anything shorter is a conflict.
const MinGap = 30 * time.Minute

// Appointment is one scheduled visit. Date is a calendar date
// (YYYY-MM-DD) and Time a 24-hour wall-clock time (HH:MM) with no
// timezone. PatientID and DoctorID reference patient and staff records
// by convention only; the scheduler does not own their lifecycle.
type Appointment struct {
	store.Meta
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func NewAppointment(patientID, doctorID, date, timeOfDay, notes string, now time.Time) *Appointment {
	return &Appointment{
		Meta:      store.NewMeta(now),
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      timeOfDay,
		Status:    StatusScheduled,
		Notes:     notes,
	}
}

func (a *Appointment) Cancelled() bool { return a.Status == StatusCancelled }
