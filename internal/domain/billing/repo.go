package billing

import "github.com/hms/hms/internal/platform/store"

// Repository is the whole-collection persistence contract for bills.
type Repository interface {
	Load() ([]*Bill, store.Fault)
	Save(records []*Bill) store.Fault
}
