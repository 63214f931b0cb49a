package staff

import (
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

type jsonRepo struct {
	coll *store.Collection[*Staff]
}

// NewJSONRepository persists staff as a JSON array file at path.
func NewJSONRepository(path string, log zerolog.Logger) Repository {
	return &jsonRepo{coll: store.NewCollection[*Staff](path, log)}
}

func (r *jsonRepo) Load() ([]*Staff, store.Fault) { return r.coll.Load() }

func (r *jsonRepo) Save(records []*Staff) store.Fault { return r.coll.Save(records) }
