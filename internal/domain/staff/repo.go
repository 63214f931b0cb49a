package staff

import "github.com/hms/hms/internal/platform/store"

// Repository is the whole-collection persistence contract for staff.
type Repository interface {
	Load() ([]*Staff, store.Fault)
	Save(records []*Staff) store.Fault
}
