package billing

import (
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

type jsonRepo struct {
	coll *store.Collection[*Bill]
}

// NewJSONRepository persists bills as a JSON array file at path.
func NewJSONRepository(path string, log zerolog.Logger) Repository {
	return &jsonRepo{coll: store.NewCollection[*Bill](path, log)}
}

func (r *jsonRepo) Load() ([]*Bill, store.Fault) { return r.coll.Load() }

func (r *jsonRepo) Save(records []*Bill) store.Fault { return r.coll.Save(records) }
