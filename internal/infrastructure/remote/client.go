package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jismah/serverless-registro/internal/domain/reservation"
	appLog "github.com/jismah/serverless-registro/internal/log"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
	userAgent      = "registro/1.0"
)

// Client talks to the reservations endpoint of the remote data service.
// Writes are sent exactly once; retrying is the caller's decision.
type Client struct {
	hc       *http.Client
	endpoint string
}

var _ reservation.Store = (*Client)(nil)

func New(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		hc:       &http.Client{Timeout: timeout},
		endpoint: endpoint,
	}
}

// List fetches every reservation the service holds.
func (c *Client) List(ctx context.Context) ([]reservation.Reservation, error) {
	status, body, err := c.do(ctx, "list", http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &reservation.TransportError{Op: "list", Status: status}
	}
	out, err := decodeList(body)
	if err != nil {
		return nil, &reservation.MalformedResponseError{Op: "list", Err: err}
	}
	return out, nil
}

// Create posts r. The returned record carries the server id when the
// response reports one, and is otherwise r unchanged.
func (c *Client) Create(ctx context.Context, r reservation.Reservation) (reservation.Reservation, error) {
	w := toWire(r)
	w.ID = ""
	jb, err := json.Marshal(w)
	if err != nil {
		return reservation.Reservation{}, err
	}
	status, body, err := c.do(ctx, "create", http.MethodPost, jb)
	if err != nil {
		return reservation.Reservation{}, err
	}
	if status < 200 || status >= 300 {
		return reservation.Reservation{}, &reservation.TransportError{Op: "create", Status: status}
	}
	created := r
	created.ID = ""
	if len(bytes.TrimSpace(body)) == 0 {
		return created, nil
	}
	var res createResponse
	if err := json.Unmarshal(body, &res); err != nil {
		// the write was accepted; an unreadable body only loses the id
		appLog.Warn("remote create: unreadable response body", "err", err)
		return created, nil
	}
	switch {
	case res.Reserva != nil:
		if got, err := Decode(*res.Reserva); err == nil && got.ID != "" {
			created.ID = got.ID
		}
	case res.ID != "":
		created.ID = res.ID
	}
	return created, nil
}

// Delete removes r by id. The full record travels in the body for services
// that match on it.
func (c *Client) Delete(ctx context.Context, r reservation.Reservation) error {
	if r.ID == "" {
		return &reservation.ValidationError{Field: "id", Reason: "required"}
	}
	var (
		jb  []byte
		err error
	)
	if r.Lab.Valid() {
		jb, err = json.Marshal(toWire(r))
	} else {
		jb, err = json.Marshal(struct {
			ID string `json:"id"`
		}{ID: r.ID})
	}
	if err != nil {
		return err
	}
	status, _, err := c.do(ctx, "delete", http.MethodDelete, jb)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		return fmt.Errorf("delete %s: %w", r.ID, reservation.ErrNotFound)
	case status < 200 || status >= 300:
		return &reservation.TransportError{Op: "delete", Status: status}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method string, body []byte) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint, rd)
	if err != nil {
		return 0, nil, err
	}
	reqID := uuid.NewString()
	req.Header.Set("user-agent", userAgent)
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-request-id", reqID)
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		appLog.Error("remote request failed", err, "op", op, "request_id", reqID, "elapsed", time.Since(start))
		return 0, nil, &reservation.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes+1))
	if err != nil {
		appLog.Error("remote response read failed", err, "op", op, "request_id", reqID)
		return res.StatusCode, nil, &reservation.TransportError{Op: op, Err: err}
	}
	if len(b) > maxBodyBytes {
		return res.StatusCode, nil, &reservation.MalformedResponseError{Op: op, Err: errors.New("response body too large")}
	}
	appLog.Debug("remote request", "op", op, "method", method, "status", res.StatusCode, "request_id", reqID, "elapsed", time.Since(start))
	return res.StatusCode, b, nil
}
