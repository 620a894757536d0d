package reservation

import "context"

// Lister fetches the full set of accepted reservations.
type Lister interface {
	List(ctx context.Context) ([]Reservation, error)
}

// Store is the remote record of truth. Create returns the accepted record,
// with ID set when the service reports it. Delete returns ErrNotFound when
// the target is already gone.
type Store interface {
	Lister
	Create(ctx context.Context, r Reservation) (Reservation, error)
	Delete(ctx context.Context, r Reservation) error
}
