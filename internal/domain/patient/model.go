package patient

import (
	"time"

	"github.com/hms/hms/internal/platform/store"
)

// Patient is one registered patient record.
type Patient struct {
	store.Meta
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Contact        string `json:"contact"`
	MedicalHistory string `json:"medical_history"`
}

func NewPatient(name string, age int, gender, contact, history string, now time.Time) *Patient {
	return &Patient{
		Meta:           store.NewMeta(now),
		Name:           name,
		Age:            age,
		Gender:         gender,
		Contact:        contact,
		MedicalHistory: history,
	}
}
