package scheduling

import (
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

type jsonRepo struct {
	coll *store.Collection[*Appointment]
}

// NewJSONRepository persists appointments as a JSON array file at path.
func NewJSONRepository(path string, log zerolog.Logger) Repository {
	return &jsonRepo{coll: store.NewCollection[*Appointment](path, log)}
}

func (r *jsonRepo) Load() ([]*Appointment, store.Fault) { return r.coll.Load() }

func (r *jsonRepo) Save(records []*Appointment) store.Fault { return r.coll.Save(records) }
