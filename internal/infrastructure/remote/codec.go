package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jismah/serverless-registro/internal/domain/reservation"
)

// wireReservation is the JSON shape used by the reservations service.
type wireReservation struct {
	ID          string `json:"id,omitempty"`
	Matricula   string `json:"matricula"`
	Nombre      string `json:"nombre"`
	Correo      string `json:"correo"`
	Carrera     string `json:"carrera,omitempty"`
	Laboratorio string `json:"laboratorio"`
	Fecha       string `json:"fecha"`
	Hora        string `json:"hora"`
}

type createResponse struct {
	ID      string           `json:"id"`
	Reserva *json.RawMessage `json:"reserva"`
}

func toWire(r reservation.Reservation) wireReservation {
	return wireReservation{
		ID:          r.ID,
		Matricula:   r.HolderID,
		Nombre:      r.HolderName,
		Correo:      r.Contact,
		Carrera:     r.Career,
		Laboratorio: r.Lab.Key(),
		Fecha:       r.Date.ISO(),
		Hora:        r.Slot.String(),
	}
}

func fromWire(w wireReservation) (reservation.Reservation, error) {
	lab, err := reservation.ParseLab(w.Laboratorio)
	if err != nil {
		return reservation.Reservation{}, err
	}
	var date reservation.Date
	if w.Fecha != "" {
		if date, err = reservation.ParseDate(w.Fecha); err != nil {
			return reservation.Reservation{}, err
		}
	}
	slot, err := reservation.ParseSlot(w.Hora)
	if err != nil {
		return reservation.Reservation{}, err
	}
	return reservation.Reservation{
		ID:         w.ID,
		HolderID:   w.Matricula,
		HolderName: w.Nombre,
		Contact:    w.Correo,
		Career:     w.Carrera,
		Lab:        lab,
		Date:       date,
		Slot:       slot,
	}, nil
}

// Encode serializes a reservation in the service's wire format.
func Encode(r reservation.Reservation) ([]byte, error) {
	return json.Marshal(toWire(r))
}

// Decode parses one wire record. Unknown labs or slots are errors.
func Decode(b []byte) (reservation.Reservation, error) {
	var w wireReservation
	if err := json.Unmarshal(b, &w); err != nil {
		return reservation.Reservation{}, err
	}
	return fromWire(w)
}

// stored checks that a listed record carries its id and natural key.
func stored(r reservation.Reservation) error {
	switch {
	case r.ID == "":
		return errors.New("missing id")
	case !r.Lab.Valid():
		return errors.New("missing laboratorio")
	case r.Date.IsZero():
		return errors.New("missing fecha")
	case !r.Slot.Valid():
		return errors.New("missing hora")
	}
	return nil
}

func decodeList(b []byte) ([]reservation.Reservation, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	field, ok := env["reservas"]
	if !ok {
		return nil, fmt.Errorf("missing reservas field")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(field, &items); err != nil {
		return nil, fmt.Errorf("reservas: %w", err)
	}
	out := make([]reservation.Reservation, 0, len(items))
	for i, raw := range items {
		r, err := Decode(raw)
		if err == nil {
			err = stored(r)
		}
		if err != nil {
			return nil, fmt.Errorf("reservas[%d]: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}
