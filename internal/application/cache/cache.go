// Package cache holds the last-known-good set of reservations reported by
// the remote service.
package cache

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/jismah/serverless-registro/internal/domain/reservation"
)

type snapshot struct {
	ticket    uint64
	items     []reservation.Reservation
	fetchedAt time.Time
}

// Cache is safe for concurrent use. Readers never block and always see a
// whole snapshot.
type Cache struct {
	src    reservation.Lister
	now    func() time.Time
	ticket atomic.Uint64
	snap   atomic.Pointer[snapshot]
}

func New(src reservation.Lister) *Cache {
	c := &Cache{src: src, now: time.Now}
	c.snap.Store(&snapshot{})
	return c
}

// Revalidate fetches the full set and replaces the snapshot with it. On
// error the previous snapshot stays in place. A fetch that started before
// one already applied is discarded, and the newer set is returned instead.
func (c *Cache) Revalidate(ctx context.Context) ([]reservation.Reservation, error) {
	t := c.ticket.Add(1)
	items, err := c.src.List(ctx)
	if err != nil {
		return nil, err
	}
	next := &snapshot{ticket: t, items: slices.Clone(items), fetchedAt: c.now()}
	for {
		cur := c.snap.Load()
		if cur.ticket > t {
			return slices.Clone(cur.items), nil
		}
		if c.snap.CompareAndSwap(cur, next) {
			return slices.Clone(next.items), nil
		}
	}
}

// Current returns a copy of the last fetched set, empty before the first
// successful revalidation.
func (c *Cache) Current() []reservation.Reservation {
	items := c.snap.Load().items
	if items == nil {
		return []reservation.Reservation{}
	}
	return slices.Clone(items)
}

// FetchedAt is zero until the first successful revalidation.
func (c *Cache) FetchedAt() time.Time { return c.snap.Load().fetchedAt }

// Generation is the ticket of the applied snapshot.
func (c *Cache) Generation() uint64 { return c.snap.Load().ticket }
