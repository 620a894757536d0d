package usecases

import (
	"time"

	"github.com/jismah/serverless-registro/internal/application/cache"
	"github.com/jismah/serverless-registro/internal/domain/reservation"
)

// Session is the cache, coordinator and views shared by one front desk.
type Session struct {
	Cache       *cache.Cache
	Coordinator *Coordinator
	Views       Views
}

func NewSession(store reservation.Store, loc *time.Location) *Session {
	c := cache.New(store)
	return &Session{
		Cache:       c,
		Coordinator: &Coordinator{Store: store, Cache: c, Location: loc},
		Views:       Views{Cache: c, Location: loc},
	}
}
