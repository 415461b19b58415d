package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Patch transforms a cached value into its optimistic successor. A patch
// must return a new value and leave its input untouched: the input is held
// as the rollback snapshot, so mutating it in place would corrupt the
// rollback guarantee.
type Patch func(key Key, value any) any

// Mutation names the entries an optimistic write touches. Every key is
// patched before the write and invalidated after it settles, success or
// failure.
type Mutation struct {
	Keys  []Key
	Patch Patch
}

type txn struct {
	id        string
	store     *Store
	snapshots map[Key]any
}

// Mutate applies the optimistic patch, runs action, rolls the patch back if
// action fails, and always invalidates the mutation's keys on settle so the
// next read fetches authoritative state.
func (s *Store) Mutate(ctx context.Context, m Mutation, action func(ctx context.Context) (any, error)) (any, error) {
	tx := s.begin(m)

	result, err := action(ctx)
	if err != nil {
		tx.rollback()
	} else {
		tx.commit()
	}

	// Settle always invalidates: this is what resolves any race with a
	// concurrently-finishing background refetch of the same keys.
	s.Invalidate(m.Keys...)

	return result, err
}

func (s *Store) begin(m Mutation) *txn {
	tx := &txn{
		id:        uuid.NewString(),
		store:     s,
		snapshots: make(map[Key]any),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range m.Keys {
		e, ok := s.entries[key]
		if !ok {
			continue
		}
		tx.snapshots[key] = e.value
		if m.Patch != nil {
			e.value = m.Patch(key, e.value)
		}
	}

	log.Debug().Str("txn", tx.id).Int("patched", len(tx.snapshots)).Msg("optimistic mutation started")
	return tx
}

func (t *txn) rollback() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for key, snapshot := range t.snapshots {
		if e, ok := t.store.entries[key]; ok {
			e.value = snapshot
		}
	}

	log.Debug().Str("txn", t.id).Int("restored", len(t.snapshots)).Msg("optimistic mutation rolled back")
}

func (t *txn) commit() {
	// The patched values stay visible until the settle refetch lands;
	// nothing to restore.
	log.Debug().Str("txn", t.id).Msg("optimistic mutation committed")
}

// Patch rewrites cached values outside any transaction, for state already
// confirmed by the backend. Missing keys are skipped.
func (s *Store) Patch(keys []Key, patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if e, ok := s.entries[key]; ok {
			e.value = patch(key, e.value)
			e.gen++
		}
	}
}

// PatchSlice builds a Patch that rewrites matching elements of a []T entry
// element-wise, leaving unrelated entries untouched. Values that are not a
// []T pass through unchanged.
func PatchSlice[T any](match func(T) bool, apply func(T) T) Patch {
	return func(_ Key, value any) any {
		items, ok := value.([]T)
		if !ok {
			return value
		}
		next := make([]T, len(items))
		for i, item := range items {
			if match(item) {
				next[i] = apply(item)
			} else {
				next[i] = item
			}
		}
		return next
	}
}

// PatchValue builds a Patch for a detail entry holding a single T.
func PatchValue[T any](apply func(T) T) Patch {
	return func(_ Key, value any) any {
		item, ok := value.(T)
		if !ok {
			return value
		}
		return apply(item)
	}
}
