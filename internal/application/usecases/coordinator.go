package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jismah/serverless-registro/internal/application/cache"
	"github.com/jismah/serverless-registro/internal/domain/reservation"
	appLog "github.com/jismah/serverless-registro/internal/log"
)

type state string

const (
	stateIdle        state = "idle"
	stateValidating  state = "validating"
	stateSubmitting  state = "submitting"
	stateReconciling state = "reconciling"
	stateSucceeded   state = "succeeded"
	stateFailed      state = "failed"
)

// attempt tracks one mutation through its states for logging.
type attempt struct {
	op    string
	id    string
	state state
}

func newAttempt(op string) *attempt {
	return &attempt{op: op, id: uuid.NewString(), state: stateIdle}
}

func (a *attempt) to(s state, kv ...any) {
	appLog.Debug("mutation "+a.op, append([]any{"attempt", a.id, "from", a.state, "to", s}, kv...)...)
	a.state = s
}

func (a *attempt) fail(err error) error {
	a.to(stateFailed, "err", err)
	return err
}

// CreateResult is a successful create. Stale reports that the write was
// accepted but the cache could not be refreshed afterwards.
type CreateResult struct {
	Reservation reservation.Reservation
	Stale       bool
	StaleErr    error
}

type CancelResult struct {
	Stale    bool
	StaleErr error
}

// Coordinator runs create and cancel against the remote store and keeps
// the cache consistent with it. Each call makes at most one remote write
// and never retries it.
type Coordinator struct {
	Store    reservation.Store
	Cache    *cache.Cache
	Location *time.Location
	Now      func() time.Time
}

func (c *Coordinator) today() reservation.Date {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return reservation.DateOf(now().In(loc))
}

// Create validates and conflict-checks the candidate locally, submits it,
// then revalidates the cache.
func (c *Coordinator) Create(ctx context.Context, candidate reservation.Reservation) (CreateResult, error) {
	a := newAttempt("create")
	a.to(stateValidating, "key", candidate.Key())
	if candidate.ID != "" {
		return CreateResult{}, a.fail(&reservation.ValidationError{Field: "id", Reason: "must be empty"})
	}
	if err := candidate.Validate(c.today()); err != nil {
		return CreateResult{}, a.fail(err)
	}
	if existing, ok := reservation.FindConflict(candidate, c.Cache.Current()); ok {
		return CreateResult{}, a.fail(&reservation.ConflictError{Existing: existing})
	}

	a.to(stateSubmitting)
	created, err := c.Store.Create(ctx, candidate)
	if err != nil {
		return CreateResult{}, a.fail(fmt.Errorf("create reservation: %w", err))
	}

	a.to(stateReconciling, "id", created.ID)
	res := CreateResult{Reservation: created}
	set, err := c.Cache.Revalidate(ctx)
	if err != nil {
		appLog.Error("revalidate after create failed", err, "attempt", a.id)
		res.Stale, res.StaleErr = true, err
	} else if created.ID == "" {
		if r, ok := findAccepted(candidate, set); ok {
			res.Reservation.ID = r.ID
		}
	}
	a.to(stateSucceeded, "id", res.Reservation.ID, "stale", res.Stale)
	return res, nil
}

// findAccepted locates the server copy of a just-created candidate.
func findAccepted(candidate reservation.Reservation, set []reservation.Reservation) (reservation.Reservation, bool) {
	k := candidate.Key()
	for _, r := range set {
		if r.Key() == k && r.HolderID == candidate.HolderID && r.ID != "" {
			return r, true
		}
	}
	return reservation.Reservation{}, false
}

// Cancel deletes the reservation with the given id. ErrNotFound means it
// was already gone; the cache is left as is in that case.
func (c *Coordinator) Cancel(ctx context.Context, id string) (CancelResult, error) {
	a := newAttempt("cancel")
	a.to(stateValidating, "id", id)
	if id == "" {
		return CancelResult{}, a.fail(&reservation.ValidationError{Field: "id", Reason: "required"})
	}
	target := reservation.Reservation{ID: id}
	for _, r := range c.Cache.Current() {
		if r.ID == id {
			target = r
			break
		}
	}

	a.to(stateSubmitting)
	if err := c.Store.Delete(ctx, target); err != nil {
		return CancelResult{}, a.fail(fmt.Errorf("cancel reservation: %w", err))
	}

	a.to(stateReconciling)
	var res CancelResult
	if _, err := c.Cache.Revalidate(ctx); err != nil {
		appLog.Error("revalidate after cancel failed", err, "attempt", a.id)
		res.Stale, res.StaleErr = true, err
	}
	a.to(stateSucceeded, "stale", res.Stale)
	return res, nil
}
