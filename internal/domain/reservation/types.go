package reservation

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Lab is a bookable laboratory from the fixed catalog. The zero value means unset.
type Lab uint8

const (
	LabUnset Lab = iota
	LabRedes
	LabComputacion
	LabComunicaciones
	LabMedicina
	LabNanociencias
)

var labKeys = [...]string{
	LabRedes:          "redes",
	LabComputacion:    "computacion",
	LabComunicaciones: "comunicaciones",
	LabMedicina:       "medicina",
	LabNanociencias:   "nanociencias",
}

var labNames = [...]string{
	LabRedes:          "Redes",
	LabComputacion:    "Computacion",
	LabComunicaciones: "Comunicaciones",
	LabMedicina:       "Medicina",
	LabNanociencias:   "Nanociencias",
}

// Labs returns the catalog in display order.
func Labs() []Lab {
	return []Lab{LabRedes, LabComputacion, LabComunicaciones, LabMedicina, LabNanociencias}
}

func (l Lab) Valid() bool { return l >= LabRedes && l <= LabNanociencias }

// Key is the wire value ("redes").
func (l Lab) Key() string {
	if !l.Valid() {
		return ""
	}
	return labKeys[l]
}

func (l Lab) String() string {
	if !l.Valid() {
		return ""
	}
	return labNames[l]
}

// ParseLab accepts a key or display name, ignoring case and accents.
func ParseLab(s string) (Lab, error) {
	k := foldName(s)
	if k == "" {
		return LabUnset, nil
	}
	for _, l := range Labs() {
		if labKeys[l] == k {
			return l, nil
		}
	}
	return LabUnset, fmt.Errorf("unknown laboratorio %q", s)
}

func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Slot is a one-hour booking interval identified by its start hour.
// The zero value means unset.
type Slot uint8

const (
	FirstSlotHour = 8
	LastSlotHour  = 21
)

// Slots returns every slot in ascending order.
func Slots() []Slot {
	out := make([]Slot, 0, LastSlotHour-FirstSlotHour+1)
	for h := FirstSlotHour; h <= LastSlotHour; h++ {
		out = append(out, Slot(h))
	}
	return out
}

func (s Slot) Valid() bool { return s >= FirstSlotHour && s <= LastSlotHour }

func (s Slot) StartHour() int { return int(s) }

// String is the wire label, e.g. "10-11".
func (s Slot) String() string {
	if !s.Valid() {
		return ""
	}
	return strconv.Itoa(int(s)) + "-" + strconv.Itoa(int(s)+1)
}

// Display is the human label, e.g. "10:00 - 11:00".
func (s Slot) Display() string {
	if !s.Valid() {
		return ""
	}
	return fmt.Sprintf("%d:00 - %d:00", int(s), int(s)+1)
}

// ParseSlot accepts "10-11" or "10:00 - 11:00". An empty string is the unset slot.
func ParseSlot(s string) (Slot, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return 0, fmt.Errorf("invalid hora %q", s)
	}
	from, err1 := parseHour(start)
	to, err2 := parseHour(end)
	if err1 != nil || err2 != nil || to != from+1 {
		return 0, fmt.Errorf("invalid hora %q", s)
	}
	slot := Slot(from)
	if !slot.Valid() {
		return 0, fmt.Errorf("hora %q outside %d-%d", s, FirstSlotHour, LastSlotHour+1)
	}
	return slot, nil
}

func parseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":00")
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r < '0' || r > '9' }) {
		return 0, fmt.Errorf("invalid hour %q", s)
	}
	return strconv.Atoi(s)
}

// Date is a calendar day with no time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate reads the leading YYYY-MM-DD of an ISO-8601 date or date-time.
// Time of day and offset are ignored.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(dateLayout) {
		return Date{}, fmt.Errorf("invalid fecha %q", s)
	}
	if len(s) > len(dateLayout) && s[len(dateLayout)] != 'T' && s[len(dateLayout)] != ' ' {
		return Date{}, fmt.Errorf("invalid fecha %q", s)
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return Date{}, fmt.Errorf("invalid fecha %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool { return d == Date{} }

// Time is midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ISO is the wire form, YYYY-MM-DDT00:00:00.000Z.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.String() + "T00:00:00.000Z"
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d == o }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Reservation is one booking of a lab for one slot on one day.
type Reservation struct {
	ID         string // assigned by the remote service; empty for a candidate
	HolderID   string // matricula
	HolderName string
	Contact    string // correo, optional
	Career     string // carrera, optional
	Lab        Lab
	Date       Date
	Slot       Slot
}

// Key is the natural key of a reservation.
type Key struct {
	Lab  Lab
	Date Date
	Slot Slot
}

func (r Reservation) Key() Key { return Key{Lab: r.Lab, Date: r.Date, Slot: r.Slot} }

func (k Key) String() string {
	return fmt.Sprintf("%s %s %s", k.Lab, k.Date, k.Slot)
}

// Validate checks a candidate before submission. today is the current
// calendar day in the front desk's timezone.
func (r Reservation) Validate(today Date) error {
	switch {
	case strings.TrimSpace(r.HolderID) == "":
		return &ValidationError{Field: "matricula", Reason: "required"}
	case strings.TrimSpace(r.HolderName) == "":
		return &ValidationError{Field: "nombre", Reason: "required"}
	case r.Lab == LabUnset:
		return &ValidationError{Field: "laboratorio", Reason: "required"}
	case !r.Lab.Valid():
		return &ValidationError{Field: "laboratorio", Reason: "unknown"}
	case r.Date.IsZero():
		return &ValidationError{Field: "fecha", Reason: "required"}
	case r.Slot == 0:
		return &ValidationError{Field: "hora", Reason: "required"}
	case !r.Slot.Valid():
		return &ValidationError{Field: "hora", Reason: "unknown"}
	}
	if r.Date.Before(today) {
		return &ValidationError{Field: "fecha", Reason: fmt.Sprintf("%s is before %s", r.Date, today)}
	}
	if c := strings.TrimSpace(r.Contact); c != "" {
		if _, err := mail.ParseAddress(c); err != nil {
			return &ValidationError{Field: "correo", Reason: "not an e-mail address"}
		}
	}
	return nil
}
