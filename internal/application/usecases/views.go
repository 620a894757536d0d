package usecases

import (
	"cmp"
	"slices"
	"time"

	"github.com/jismah/serverless-registro/internal/application/cache"
	"github.com/jismah/serverless-registro/internal/domain/reservation"
)

// Views derives display lists from the cache without changing it.
type Views struct {
	Cache    *cache.Cache
	Location *time.Location
}

func (v Views) today(now time.Time) reservation.Date {
	if v.Location != nil {
		now = now.In(v.Location)
	}
	return reservation.DateOf(now)
}

// Upcoming lists reservations from today on, by date then slot.
func (v Views) Upcoming(now time.Time) []reservation.Reservation {
	return Upcoming(v.Cache.Current(), v.today(now))
}

// FilterByRange lists reservations with from <= date <= to, by date then slot.
func (v Views) FilterByRange(from, to reservation.Date) []reservation.Reservation {
	return FilterByRange(v.Cache.Current(), from, to)
}

// Past lists reservations before today, newest first.
func (v Views) Past(now time.Time) []reservation.Reservation {
	return Past(v.Cache.Current(), v.today(now))
}

func Upcoming(set []reservation.Reservation, today reservation.Date) []reservation.Reservation {
	out := make([]reservation.Reservation, 0, len(set))
	for _, r := range set {
		if !r.Date.Before(today) {
			out = append(out, r)
		}
	}
	sortChronological(out)
	return out
}

func FilterByRange(set []reservation.Reservation, from, to reservation.Date) []reservation.Reservation {
	out := make([]reservation.Reservation, 0)
	if from.After(to) {
		return out
	}
	for _, r := range set {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	sortChronological(out)
	return out
}

func Past(set []reservation.Reservation, today reservation.Date) []reservation.Reservation {
	out := make([]reservation.Reservation, 0)
	for _, r := range set {
		if r.Date.Before(today) {
			out = append(out, r)
		}
	}
	sortChronological(out)
	slices.Reverse(out)
	return out
}

func sortChronological(rs []reservation.Reservation) {
	slices.SortStableFunc(rs, func(a, b reservation.Reservation) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Slot.StartHour(), b.Slot.StartHour()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
