package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/jismah/serverless-registro/internal/domain/reservation"
)

func day(d int) reservation.Date {
	return reservation.Date{Year: 2024, Month: time.March, Day: d}
}

func viewSession(t *testing.T) Views {
	t.Helper()
	store := &fakeStore{records: []reservation.Reservation{
		{ID: "a", Lab: reservation.LabRedes, Date: day(16), Slot: 9},
		{ID: "b", Lab: reservation.LabRedes, Date: day(14), Slot: 20},
		{ID: "c", Lab: reservation.LabMedicina, Date: day(13), Slot: 8},
		{ID: "d", Lab: reservation.LabMedicina, Date: day(14), Slot: 8},
		{ID: "e", Lab: reservation.LabRedes, Date: day(12), Slot: 12},
		{ID: "f", Lab: reservation.LabComputacion, Date: day(16), Slot: 9},
	}}
	s := NewSession(store, testLoc)
	if _, err := s.Cache.Revalidate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s.Views
}

func idsOf(rs []reservation.Reservation) string {
	out := ""
	for _, r := range rs {
		out += r.ID
	}
	return out
}

func TestUpcoming(t *testing.T) {
	v := viewSession(t)
	// testNow is March 14 in AST.
	got := idsOf(v.Upcoming(testNow))
	if got != "dbaf" {
		t.Fatalf("Upcoming=%q, want dbaf", got)
	}
	if again := idsOf(v.Upcoming(testNow)); again != got {
		t.Fatalf("Upcoming not restartable: %q then %q", got, again)
	}
}

func TestUpcomingUsesLocalCalendarDay(t *testing.T) {
	v := viewSession(t)
	// 02:00 UTC on March 15 is still March 14 in AST.
	now := time.Date(2024, time.March, 15, 2, 0, 0, 0, time.UTC)
	if got := idsOf(v.Upcoming(now)); got != "dbaf" {
		t.Fatalf("Upcoming=%q, want dbaf", got)
	}
}

func TestFilterByRange(t *testing.T) {
	v := viewSession(t)
	cases := []struct {
		from, to reservation.Date
		want     string
	}{
		{day(14), day(14), "db"},
		{day(12), day(14), "ecdb"},
		{day(1), day(31), "ecdbaf"},
		{day(15), day(15), ""},
		{day(16), day(12), ""},
	}
	for _, c := range cases {
		if got := idsOf(v.FilterByRange(c.from, c.to)); got != c.want {
			t.Errorf("FilterByRange(%v,%v)=%q, want %q", c.from, c.to, got, c.want)
		}
	}
}

func TestPast(t *testing.T) {
	v := viewSession(t)
	if got := idsOf(v.Past(testNow)); got != "ce" {
		t.Fatalf("Past=%q, want ce", got)
	}
}

func TestViewsDoNotMutateCache(t *testing.T) {
	v := viewSession(t)
	before := idsOf(v.Cache.Current())
	_ = v.Upcoming(testNow)
	_ = v.FilterByRange(day(1), day(31))
	_ = v.Past(testNow)
	if after := idsOf(v.Cache.Current()); after != before {
		t.Fatalf("cache order changed: %q -> %q", before, after)
	}
}
