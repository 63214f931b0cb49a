package scheduling

import "github.com/hms/hms/internal/platform/store"

// Repository is the whole-collection persistence contract for
// appointments. Load returns a fresh view of the stored collection on
// every call; Save replaces it. There is no per-record write path:
// callers mutate the loaded slice and write the whole collection back.
type Repository interface {
	Load() ([]*Appointment, store.Fault)
	Save(records []*Appointment) store.Fault
}
