// Package reconcile keeps a locally held list of server records in step with
// the API. The server is the source of truth: the local slice only changes
// after a call has been confirmed.
package reconcile

import (
	"context"
	"errors"
	"sync"
)

// ErrMissingID is returned by Create when the server confirmed a record but
// did not number it. Such a record is never held locally.
var ErrMissingID = errors.New("server returned a record without an id")

// Record is anything with a server-assigned identifier.
type Record interface {
	RecordID() int64
}

// Source is the remote side of one resource, scoped by owner.
type Source[T Record, R any] interface {
	List(ctx context.Context, owner string) ([]T, error)
	Create(ctx context.Context, req R) (T, error)
	Delete(ctx context.Context, owner string, id int64) error
}

// Form produces a create request for owner, or a validation error.
type Form[R any] interface {
	Build(owner string) (R, error)
}

// resetter is implemented by forms whose fields are cleared after a
// confirmed create.
type resetter interface {
	Reset()
}

// List holds one owner's records of a single resource in fetch/append order.
//
// Calls may overlap. Each operation updates the slice under the lock once its
// own network call returns, so concurrent operations take effect in the order
// they complete: a Refresh that finishes after a Create replaces the slice
// with whatever the server listed at the time it answered.
type List[T Record, R any] struct {
	name   string
	owner  string
	source Source[T, R]

	mu      sync.Mutex
	records []T
}

// New returns an empty list. name labels metrics ("weights", ...).
func New[T Record, R any](name, owner string, src Source[T, R]) *List[T, R] {
	return &List[T, R]{name: name, owner: owner, source: src}
}

// Owner is the user the list is scoped to.
func (l *List[T, R]) Owner() string { return l.owner }

// Refresh replaces the records with the server's list. On failure the
// current records are kept.
func (l *List[T, R]) Refresh(ctx context.Context) error {
	got, err := l.source.List(ctx, l.owner)
	observe(l.name, "refresh", err)
	if err != nil {
		return err
	}
	next := make([]T, len(got))
	copy(next, got)

	l.mu.Lock()
	l.records = next
	l.mu.Unlock()
	return nil
}

// Create validates form, posts it and appends the record the server
// returned. An invalid form never reaches the source. A response without an
// id counts as a failed create. The form is reset only after the server
// confirmed the record.
func (l *List[T, R]) Create(ctx context.Context, form Form[R]) (T, error) {
	var zero T
	req, err := form.Build(l.owner)
	if err != nil {
		observe(l.name, "create", errInvalid)
		return zero, err
	}
	rec, err := l.source.Create(ctx, req)
	if err == nil && rec.RecordID() == 0 {
		err = ErrMissingID
	}
	observe(l.name, "create", err)
	if err != nil {
		return zero, err
	}

	l.mu.Lock()
	l.records = append(l.records, rec)
	l.mu.Unlock()

	if r, ok := form.(resetter); ok {
		r.Reset()
	}
	return rec, nil
}

// Delete removes id on the server and then locally. The call is always
// issued, even for ids not held locally.
func (l *List[T, R]) Delete(ctx context.Context, id int64) error {
	err := l.source.Delete(ctx, l.owner, id)
	observe(l.name, "delete", err)
	if err != nil {
		return err
	}

	l.mu.Lock()
	kept := l.records[:0:0]
	for _, r := range l.records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	l.records = kept
	l.mu.Unlock()
	return nil
}

// Records returns a copy of the current records.
func (l *List[T, R]) Records() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.records))
	copy(out, l.records)
	return out
}

// Len is the number of records held.
func (l *List[T, R]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
