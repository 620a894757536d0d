package reservation

import (
	"errors"
	"testing"
	"time"
)

func TestParseLab(t *testing.T) {
	cases := []struct {
		in   string
		want Lab
		err  bool
	}{
		{"redes", LabRedes, false},
		{"Redes", LabRedes, false},
		{" Computación ", LabComputacion, false},
		{"NANOCIENCIAS", LabNanociencias, false},
		{"", LabUnset, false},
		{"biologia", LabUnset, true},
	}
	for _, c := range cases {
		got, err := ParseLab(c.in)
		if (err != nil) != c.err {
			t.Fatalf("ParseLab(%q) err=%v, want err=%v", c.in, err, c.err)
		}
		if got != c.want {
			t.Errorf("ParseLab(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseSlot(t *testing.T) {
	cases := []struct {
		in   string
		want Slot
		err  bool
	}{
		{"8-9", 8, false},
		{"10-11", 10, false},
		{"21-22", 21, false},
		{"10:00 - 11:00", 10, false},
		{"", 0, false},
		{"7-8", 0, true},
		{"22-23", 0, true},
		{"10-12", 0, true},
		{"diez", 0, true},
		{"+10-11", 0, true},
		{"10-+11", 0, true},
		{"-10-11", 0, true},
		{"0x0a-11", 0, true},
	}
	for _, c := range cases {
		got, err := ParseSlot(c.in)
		if (err != nil) != c.err {
			t.Fatalf("ParseSlot(%q) err=%v, want err=%v", c.in, err, c.err)
		}
		if got != c.want {
			t.Errorf("ParseSlot(%q)=%v, want %v", c.in, got, c.want)
		}
	}
	if n := len(Slots()); n != 14 {
		t.Errorf("len(Slots())=%d, want 14", n)
	}
	if Slot(10).String() != "10-11" {
		t.Errorf("Slot(10).String()=%q", Slot(10).String())
	}
}

func TestParseDate(t *testing.T) {
	want := Date{Year: 2024, Month: time.March, Day: 15}
	for _, in := range []string{"2024-03-15", "2024-03-15T00:00:00.000Z", "2024-03-15T23:59:00-04:00"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseDate(%q)=%v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "15/3/2024", "2024-02-30", "2024-03-151"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", in)
		}
	}
	if want.ISO() != "2024-03-15T00:00:00.000Z" {
		t.Errorf("ISO()=%q", want.ISO())
	}
}

func TestDateCompare(t *testing.T) {
	a := Date{2024, time.March, 15}
	b := Date{2024, time.March, 16}
	c := Date{2025, time.January, 1}
	if !a.Before(b) || !b.After(a) || !b.Before(c) || !a.Equal(a) {
		t.Fatal("unexpected ordering")
	}
	loc := time.FixedZone("AST", -4*3600)
	late := time.Date(2024, time.March, 15, 23, 30, 0, 0, loc)
	if DateOf(late) != a {
		t.Errorf("DateOf(%v)=%v, want %v", late, DateOf(late), a)
	}
}

func TestValidate(t *testing.T) {
	today := Date{2024, time.March, 15}
	ok := Reservation{HolderID: "1014-0001", HolderName: "John Rodriguez", Lab: LabRedes, Date: today, Slot: 10}
	if err := ok.Validate(today); err != nil {
		t.Fatalf("valid reservation: %v", err)
	}

	cases := []struct {
		name  string
		mut   func(*Reservation)
		field string
	}{
		{"missing matricula", func(r *Reservation) { r.HolderID = " " }, "matricula"},
		{"missing nombre", func(r *Reservation) { r.HolderName = "" }, "nombre"},
		{"missing lab", func(r *Reservation) { r.Lab = LabUnset }, "laboratorio"},
		{"missing date", func(r *Reservation) { r.Date = Date{} }, "fecha"},
		{"missing slot", func(r *Reservation) { r.Slot = 0 }, "hora"},
		{"past date", func(r *Reservation) { r.Date = Date{2024, time.March, 14} }, "fecha"},
		{"bad contact", func(r *Reservation) { r.Contact = "not-mail" }, "correo"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := ok
			c.mut(&r)
			err := r.Validate(today)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err=%v, want ErrValidation", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != c.field {
				t.Fatalf("err=%v, want field %q", err, c.field)
			}
		})
	}
}
