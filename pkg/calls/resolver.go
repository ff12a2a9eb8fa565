package calls

import (
	"context"
	"errors"
	"fmt"
)

// StatusResolver advances a call's status by consulting the status oracle
type StatusResolver struct {
	store  StoreInterface
	oracle Oracle
}

// RefreshReport summarizes a RefreshPending run
type RefreshReport struct {
	Checked int              `json:"checked"` // Non-terminal calls that were resolved
	Updated int              `json:"updated"` // Calls whose stored status changed
	Failed  map[string]error `json:"-"`       // Oracle failures keyed by call id
}

// NewStatusResolver creates a resolver reading and writing through store
func NewStatusResolver(store StoreInterface, oracle Oracle) (*StatusResolver, error) {
	if store == nil {
		return nil, fmt.Errorf("a valid store must be provided")
	}
	if oracle == nil {
		return nil, fmt.Errorf("a valid oracle must be provided")
	}

	return &StatusResolver{store: store, oracle: oracle}, nil
}

// Resolve returns the current status of a call. Terminal statuses are returned as stored
// without consulting the oracle. On oracle failure the stored status is left as is.
func (r *StatusResolver) Resolve(ctx context.Context, id string) (Status, error) {
	call, err := r.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if call == nil {
		return "", &NotFoundError{ID: id}
	}

	status, _, err := r.advance(ctx, call)
	return status, err
}

// RefreshPending resolves every non-terminal call in the store. Oracle failures are
// collected in the report; store failures abort the run.
func (r *StatusResolver) RefreshPending(ctx context.Context) (*RefreshReport, error) {
	all, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &RefreshReport{Failed: make(map[string]error)}
	for _, call := range all {
		if call.Status.IsTerminal() {
			continue
		}
		report.Checked++

		_, changed, err := r.advance(ctx, call)
		if err != nil {
			var resolutionErr *StatusResolutionError
			if errors.As(err, &resolutionErr) {
				report.Failed[call.ID] = err
				continue
			}
			return report, err
		}
		if changed {
			report.Updated++
		}
	}

	return report, nil
}

// advance consults the oracle for a non-terminal call and persists any change
func (r *StatusResolver) advance(ctx context.Context, call *Call) (Status, bool, error) {
	if call.Status.IsTerminal() {
		return call.Status, false, nil
	}

	status, err := r.oracle.CheckStatus(ctx, call.ID)
	if err != nil {
		return "", false, &StatusResolutionError{ID: call.ID, Err: err}
	}
	if !ValidateStatus(status) {
		return "", false, &StatusResolutionError{ID: call.ID, Err: fmt.Errorf("oracle returned unknown status '%s'", status)}
	}

	if status == call.Status {
		return status, false, nil
	}

	if err := r.store.UpdateStatus(ctx, call.ID, status); err != nil {
		return "", false, err
	}

	return status, true, nil
}
