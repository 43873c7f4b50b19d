package library

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// record constrains store element types to pointers to structs embedding
// Entity.
type record interface {
	meta() *Entity
}

// store keeps one entity collection in memory and mirrors every mutation to
// a JSON file before returning. It is not safe for concurrent use; the whole
// system assumes a single actor issuing operations sequentially.
type store[T record] struct {
	path    string
	records []T
	log     *slog.Logger
}

// newStore creates the data directory if needed and loads the collection
// from its file. A missing or unreadable file is not fatal: the store starts
// empty and the problem is logged.
func newStore[T record](dir, file string, log *slog.Logger) (*store[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &store[T]{
		path: filepath.Join(dir, file),
		log:  log.With("file", file),
	}
	s.load()
	return s, nil
}

func (s *store[T]) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("could not read data file, starting empty", "err", err)
		}
		return
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		s.log.Warn("could not decode data file, starting empty", "err", err)
		s.records = nil
	}
}

// save rewrites the whole collection. Every mutating operation calls it
// before returning, so a nil error means the change is durable.
func (s *store[T]) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(s.path), err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(s.path), err)
	}
	return nil
}

// nextID scans every physical record, active or not, so a soft delete can
// never cause an identifier to be handed out twice.
func (s *store[T]) nextID() int {
	maxID := 0
	for _, r := range s.records {
		if id := r.meta().ID; id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// GetAll returns the active records in insertion order.
func (s *store[T]) GetAll() []T {
	var out []T
	for _, r := range s.records {
		if r.meta().Active {
			out = append(out, r)
		}
	}
	return out
}

// GetByID returns the active record with the given identifier.
func (s *store[T]) GetByID(id int) (T, error) {
	for _, r := range s.records {
		if r.meta().Active && r.meta().ID == id {
			return r, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("id %d: %w", id, ErrNotFound)
}

// Add assigns the next identifier and creation timestamp, appends the record
// and persists the collection.
func (s *store[T]) Add(r T) (T, error) {
	m := r.meta()
	m.ID = s.nextID()
	m.CreatedAt = time.Now()
	m.Active = true
	s.records = append(s.records, r)
	if err := s.save(); err != nil {
		s.records = s.records[:len(s.records)-1]
		var zero T
		return zero, err
	}
	return r, nil
}

// Update replaces the active record sharing r's identifier and stamps the
// update time. The in-memory slot is restored if the write fails.
func (s *store[T]) Update(r T) error {
	for i, existing := range s.records {
		if existing.meta().Active && existing.meta().ID == r.meta().ID {
			now := time.Now()
			r.meta().UpdatedAt = &now
			s.records[i] = r
			if err := s.save(); err != nil {
				s.records[i] = existing
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("id %d: %w", r.meta().ID, ErrNotFound)
}

// Delete clears the active flag; the record stays in the data file and its
// identifier is never handed out again.
func (s *store[T]) Delete(id int) error {
	for _, r := range s.records {
		if r.meta().Active && r.meta().ID == id {
			r.meta().Active = false
			if err := s.save(); err != nil {
				r.meta().Active = true
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("id %d: %w", id, ErrNotFound)
}

// all exposes the full physical slice to the typed stores' predicates.
func (s *store[T]) all() []T { return s.records }

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
