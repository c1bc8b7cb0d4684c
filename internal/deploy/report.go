package deploy

import (
	"errors"
	"sync"
)

// Outcome is the result of one operation on one key.
type Outcome struct {
	Op  Op
	Key string
	Err error
}

// Report collects per-key outcomes of a deployment. It is safe for
// concurrent use.
type Report struct {
	ID        string
	Cancelled bool

	mu       sync.Mutex
	outcomes []Outcome
}

func (r *Report) record(op Op, key string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes = append(r.outcomes, Outcome{Op: op, Key: key, Err: err})
}

// Outcomes returns a copy of every recorded outcome in completion order.
func (r *Report) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Outcome(nil), r.outcomes...)
}

func (r *Report) count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0

	for _, o := range r.outcomes {
		if o.Op == op && o.Err == nil {
			n++
		}
	}

	return n
}

// Uploaded is the number of successful uploads.
func (r *Report) Uploaded() int {
	return r.count(OpUpload)
}

// Deleted is the number of pruned objects.
func (r *Report) Deleted() int {
	return r.count(OpDelete)
}

// Failed returns every failed operation.
func (r *Report) Failed() []*TransferError {
	r.mu.Lock()
	defer r.mu.Unlock()

	var failed []*TransferError

	for _, o := range r.outcomes {
		if o.Err != nil {
			failed = append(failed, &TransferError{Op: o.Op, Key: o.Key, Err: o.Err})
		}
	}

	return failed
}

// Err joins all failures, or returns nil if there were none.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	errs := make([]error, len(failed))
	for i, f := range failed {
		errs[i] = f
	}

	return errors.Join(errs...)
}
