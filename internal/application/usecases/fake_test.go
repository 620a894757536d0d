package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/jismah/serverless-registro/internal/domain/reservation"
)

// fakeStore is an in-memory remote service that counts calls per method.
type fakeStore struct {
	mu      sync.Mutex
	records []reservation.Reservation
	nextID  int

	listErr   error
	createErr error
	deleteErr error
	// listFailAfterWrite makes every List fail once a write succeeded.
	listFailAfterWrite bool
	wrote              bool

	lists, creates, deletes int
	lastDeleted             reservation.Reservation
}

func (f *fakeStore) List(ctx context.Context) ([]reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listFailAfterWrite && f.wrote {
		return nil, &reservation.TransportError{Op: "list", Status: 503}
	}
	return append([]reservation.Reservation(nil), f.records...), nil
}

func (f *fakeStore) Create(ctx context.Context, r reservation.Reservation) (reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return reservation.Reservation{}, f.createErr
	}
	f.nextID++
	r.ID = fmt.Sprintf("%05d", f.nextID)
	f.records = append(f.records, r)
	f.wrote = true
	return r, nil
}

func (f *fakeStore) Delete(ctx context.Context, r reservation.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	f.lastDeleted = r
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, x := range f.records {
		if x.ID == r.ID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			f.wrote = true
			return nil
		}
	}
	return fmt.Errorf("delete %s: %w", r.ID, reservation.ErrNotFound)
}

func (f *fakeStore) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates + f.deletes
}
