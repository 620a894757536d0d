package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jismah/serverless-registro/internal/application/usecases"
	"github.com/jismah/serverless-registro/internal/domain/reservation"
	appLog "github.com/jismah/serverless-registro/internal/log"
)

// Server exposes one front-desk session over JSON.
type Server struct {
	Session *usecases.Session
	Now     func() time.Time
}

func New(s *usecases.Session) *Server {
	return &Server{Session: s, Now: time.Now}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/reservas", s.handleCurrent)
	mux.HandleFunc("GET /api/reservas/upcoming", s.handleUpcoming)
	mux.HandleFunc("GET /api/reservas/history", s.handleHistory)
	mux.HandleFunc("POST /api/reservas", s.handleCreate)
	mux.HandleFunc("DELETE /api/reservas/{id}", s.handleCancel)
	mux.HandleFunc("POST /api/revalidate", s.handleRevalidate)
	return logging(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		appLog.Info("http", "method", r.Method, "path", r.URL.Path, "status", rec.status, "elapsed", time.Since(start))
	})
}

type reservationJSON struct {
	ID          string `json:"id"`
	Matricula   string `json:"matricula"`
	Nombre      string `json:"nombre"`
	Correo      string `json:"correo,omitempty"`
	Carrera     string `json:"carrera,omitempty"`
	Laboratorio string `json:"laboratorio"`
	Fecha       string `json:"fecha"`
	Hora        string `json:"hora"`
}

func toJSON(r reservation.Reservation) reservationJSON {
	return reservationJSON{
		ID:          r.ID,
		Matricula:   r.HolderID,
		Nombre:      r.HolderName,
		Correo:      r.Contact,
		Carrera:     r.Career,
		Laboratorio: r.Lab.Key(),
		Fecha:       r.Date.String(),
		Hora:        r.Slot.String(),
	}
}

func listJSON(rs []reservation.Reservation) []reservationJSON {
	out := make([]reservationJSON, 0, len(rs))
	for _, r := range rs {
		out = append(out, toJSON(r))
	}
	return out
}

type listResponse struct {
	Reservas  []reservationJSON `json:"reservas"`
	FetchedAt *time.Time        `json:"fetched_at,omitempty"`
}

func (s *Server) list(rs []reservation.Reservation) listResponse {
	res := listResponse{Reservas: listJSON(rs)}
	if at := s.Session.Cache.FetchedAt(); !at.IsZero() {
		res.FetchedAt = &at
	}
	return res
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	type option struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	var labs, slots []option
	for _, l := range reservation.Labs() {
		labs = append(labs, option{Value: l.Key(), Label: l.String()})
	}
	for _, sl := range reservation.Slots() {
		slots = append(slots, option{Value: sl.String(), Label: sl.Display()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"laboratorios": labs, "horas": slots})
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.list(s.Session.Cache.Current()))
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.list(s.Session.Views.Upcoming(s.Now())))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" && to == "" {
		writeJSON(w, http.StatusOK, s.list(s.Session.Views.Past(s.Now())))
		return
	}
	fd, err := reservation.ParseDate(from)
	if err != nil {
		writeError(w, &reservation.ValidationError{Field: "from", Reason: err.Error()})
		return
	}
	td, err := reservation.ParseDate(to)
	if err != nil {
		writeError(w, &reservation.ValidationError{Field: "to", Reason: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.list(s.Session.Views.FilterByRange(fd, td)))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in reservationJSON
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&in); err != nil {
		writeError(w, &reservation.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	cand, err := fromJSON(in)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.Session.Coordinator.Create(r.Context(), cand)
	if err != nil {
		writeError(w, err)
		return
	}
	out := struct {
		Reserva reservationJSON `json:"reserva"`
		Stale   bool            `json:"stale"`
	}{Reserva: toJSON(res.Reservation), Stale: res.Stale}
	writeJSON(w, http.StatusCreated, out)
}

func fromJSON(in reservationJSON) (reservation.Reservation, error) {
	lab, err := reservation.ParseLab(in.Laboratorio)
	if err != nil {
		return reservation.Reservation{}, &reservation.ValidationError{Field: "laboratorio", Reason: "unknown"}
	}
	var date reservation.Date
	if in.Fecha != "" {
		if date, err = reservation.ParseDate(in.Fecha); err != nil {
			return reservation.Reservation{}, &reservation.ValidationError{Field: "fecha", Reason: "invalid"}
		}
	}
	slot, err := reservation.ParseSlot(in.Hora)
	if err != nil {
		return reservation.Reservation{}, &reservation.ValidationError{Field: "hora", Reason: "unknown"}
	}
	return reservation.Reservation{
		HolderID:   in.Matricula,
		HolderName: in.Nombre,
		Contact:    in.Correo,
		Career:     in.Carrera,
		Lab:        lab,
		Date:       date,
		Slot:       slot,
	}, nil
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	res, err := s.Session.Coordinator.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if res.Stale {
		w.Header().Set("x-registro-stale", "1")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRevalidate(w http.ResponseWriter, r *http.Request) {
	rs, err := s.Session.Cache.Revalidate(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.list(rs))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("write response", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, err error) {
	code, kind := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, reservation.ErrValidation):
		code, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, reservation.ErrConflict):
		code, kind = http.StatusConflict, "conflict"
	case errors.Is(err, reservation.ErrNotFound):
		code, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, reservation.ErrTransport):
		code, kind = http.StatusBadGateway, "transport"
	case errors.Is(err, reservation.ErrMalformedResponse):
		code, kind = http.StatusBadGateway, "malformed_response"
	}
	if code == http.StatusInternalServerError {
		appLog.Error("unexpected error", err)
	}
	writeJSON(w, code, errorBody{Error: err.Error(), Code: kind})
}

func Start(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	appLog.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
