package patient

import "github.com/hms/hms/internal/platform/store"

// Repository is the whole-collection persistence contract for patients.
type Repository interface {
	Load() ([]*Patient, store.Fault)
	Save(records []*Patient) store.Fault
}
