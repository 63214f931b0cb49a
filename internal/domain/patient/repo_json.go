package patient

import (
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

type jsonRepo struct {
	coll *store.Collection[*Patient]
}

// NewJSONRepository persists patients as a JSON array file at path.
func NewJSONRepository(path string, log zerolog.Logger) Repository {
	return &jsonRepo{coll: store.NewCollection[*Patient](path, log)}
}

func (r *jsonRepo) Load() ([]*Patient, store.Fault) { return r.coll.Load() }

func (r *jsonRepo) Save(records []*Patient) store.Fault { return r.coll.Save(records) }
