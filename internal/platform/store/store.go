// Package store provides generic whole-file JSON persistence for record
// collections. Each collection is one JSON array file on disk; every
// read loads the full file and every write replaces it, after copying
// the previous contents to a .backup sibling.
//
// The store never propagates I/O or parse faults to callers. Load
// degrades to an empty collection and Save reports failure through a
// Fault tag; details go to the injected logger only.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Fault classifies the outcome of a store operation. The zero value
// means the operation fully succeeded.
type Fault int

const (
	FaultNone Fault = iota
	// FaultInitialized: the file was missing and has been created empty.
	FaultInitialized
	// FaultCorrupt: the file contents were not a JSON record array.
	FaultCorrupt
	// FaultRead: the file exists but could not be read.
	FaultRead
	// FaultWrite: the collection could not be written back.
	FaultWrite
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultInitialized:
		return "initialized"
	case FaultCorrupt:
		return "corrupt"
	case FaultRead:
		return "read"
	case FaultWrite:
		return "write"
	}
	return fmt.Sprintf("fault(%d)", int(f))
}

// Failed reports whether the operation failed to persist data. Load
// faults degrade to an empty collection and are not failures in this
// sense.
func (f Fault) Failed() bool { return f == FaultWrite }

// Collection binds a record type to its JSON array file.
type Collection[T Record] struct {
	path string
	log  zerolog.Logger
}

func NewCollection[T Record](path string, log zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		path: path,
		log:  log.With().Str("collection", filepath.Base(path)).Logger(),
	}
}

// Path returns the collection's file path.
func (c *Collection[T]) Path() string { return c.path }

// Load reads the whole collection from disk. A missing file is
// initialized to an empty array; unparseable contents degrade to an
// empty collection. Load never returns an error; the Fault tag tells
// callers which of those happened.
func (c *Collection[T]) Load() ([]T, Fault) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		if werr := c.write(nil); werr != nil {
			c.log.Error().Err(werr).Str("path", c.path).Msg("failed to initialize collection file")
		}
		return []T{}, FaultInitialized
	}
	if err != nil {
		c.log.Error().Err(err).Str("path", c.path).Msg("failed to read collection file")
		return []T{}, FaultRead
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		c.log.Error().Err(err).Str("path", c.path).Msg("collection file is not a valid record array, treating as empty")
		return []T{}, FaultCorrupt
	}
	if records == nil {
		records = []T{}
	}
	return records, FaultNone
}

// Save replaces the stored collection. The previous file contents are
// copied to <path>.backup first, on a best-effort basis: a failed
// backup is logged but does not block the save.
func (c *Collection[T]) Save(records []T) Fault {
	if prev, err := os.ReadFile(c.path); err == nil {
		if berr := os.WriteFile(c.path+".backup", prev, 0o644); berr != nil {
			c.log.Error().Err(berr).Str("path", c.path).Msg("failed to create backup before save")
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		c.log.Error().Err(err).Str("path", c.path).Msg("failed to read existing file for backup")
	}

	if err := c.write(records); err != nil {
		c.log.Error().Err(err).Str("path", c.path).Msg("failed to save collection")
		return FaultWrite
	}
	return FaultNone
}

func (c *Collection[T]) write(records []T) error {
	if dir := filepath.Dir(c.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Patch locates a record by id, applies the mutator to it in place and
// stamps updated_at with the given time. The caller persists the
// collection separately.
func Patch[T Record](records []T, id string, now time.Time, apply func(T)) bool {
	rec, ok := FindByID(records, id)
	if !ok {
		return false
	}
	apply(rec)
	rec.StampUpdated(now)
	return true
}

// FindByID scans for the first record with the given id. Ids are unique
// by convention; the scan does not enforce it.
func FindByID[T Record](records []T, id string) (T, bool) {
	for _, rec := range records {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Delete removes the first record with the given id from the in-memory
// collection and returns the shortened slice. The caller persists
// separately.
func Delete[T Record](records []T, id string) ([]T, bool) {
	for i, rec := range records {
		if rec.RecordID() == id {
			return append(records[:i], records[i+1:]...), true
		}
	}
	return records, false
}

// NextSequentialID returns prefix + (max numeric suffix + 1), padded to
// three digits, scanning only ids that share the prefix and parse as
// integers. An empty collection yields prefix + "001". If the generated
// id somehow collides with an existing one, a random unique id is
// returned instead.
//
// Entity construction uses random ids (see NewMeta); this is a provided
// utility for callers that want human-readable sequences.
func NextSequentialID[T Record](records []T, prefix string) string {
	maxNum := 0
	for _, rec := range records {
		id := rec.RecordID()
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		num, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if num > maxNum {
			maxNum = num
		}
	}

	next := fmt.Sprintf("%s%03d", prefix, maxNum+1)
	if _, exists := FindByID(records, next); exists {
		return uuid.NewString()
	}
	return next
}
