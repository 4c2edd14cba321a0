package endpointpool

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
)

// CallFunc is a read-only operation issued against a single endpoint.
type CallFunc[T any] func(ctx context.Context, endpoint *Endpoint) (T, error)

// permanentError marks a definitive negative answer from a healthy endpoint.
// It stops the race instead of being retried on other endpoints: asking a
// second provider will not change an answer like "no pool exists".
type permanentError struct {
	err error
}

// Permanent wraps err so Race and Sequential surface it immediately without
// counting it against endpoint health.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Error implements the error interface.
func (p *permanentError) Error() string {
	return p.err.Error()
}

// Unwrap returns the wrapped error.
func (p *permanentError) Unwrap() error {
	return p.err
}

// asPermanent extracts a permanent error if err carries one.
func asPermanent(err error) (error, bool) {
	var perm *permanentError
	if errors.As(err, &perm) {
		return perm.err, true
	}
	return nil, false
}

// raceOutcome carries one endpoint's result through the fan-in channel.
type raceOutcome[T any] struct {
	endpoint *Endpoint
	value    T
	err      error
}

// Race fans a read request out to every healthy endpoint in the set and
// returns the first successful response, cancelling the rest. This is
// first-success-wins, not first-response-wins: a fast error never preempts a
// slower success. All failures are aggregated before surfacing.
//
// Race must only be used for idempotent reads (quotes, balances, receipt
// polling), never for transaction submission.
//
// Parameters:
// - ctx: the context for managing the request.
// - set: the endpoint set to fan out across.
// - fn: the operation to run against each endpoint.
//
// Returns:
// - T: the first successful value.
// - error: ErrProviderUnavailable wrapping every endpoint failure when none succeed.
func Race[T any](ctx context.Context, set *Set, fn CallFunc[T]) (T, error) {
	var zero T

	healthy := set.Healthy()
	if len(healthy) == 0 {
		return zero, errors.Wrapf(commonerrors.ErrProviderUnavailable, "endpoint set %s has no healthy endpoints", set.Name())
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make(chan raceOutcome[T], len(healthy))
	for _, endpoint := range healthy {
		go func(endpoint *Endpoint) {
			value, err := fn(raceCtx, endpoint)
			select {
			case outcomes <- raceOutcome[T]{endpoint: endpoint, value: value, err: err}:
			case <-raceCtx.Done():
			}
		}(endpoint)
	}

	var failures *multierror.Error
	for range healthy {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case outcome := <-outcomes:
			if outcome.err == nil {
				set.ReportSuccess(outcome.endpoint)
				return outcome.value, nil
			}
			if perm, ok := asPermanent(outcome.err); ok {
				set.ReportSuccess(outcome.endpoint)
				return zero, perm
			}
			set.ReportFailure(outcome.endpoint, outcome.err)
			failures = multierror.Append(failures, errors.Wrap(outcome.err, outcome.endpoint.URL))
		}
	}

	return zero, errors.Wrapf(commonerrors.ErrProviderUnavailable, "endpoint set %s: %v", set.Name(), failures.ErrorOrNil())
}

// Sequential tries each healthy endpoint in priority order and returns the
// first success. It backs the single-endpoint concurrency mode: read errors
// are retried within the set before surfacing.
//
// Parameters:
// - ctx: the context for managing the request.
// - set: the endpoint set to iterate.
// - fn: the operation to run against each endpoint.
//
// Returns:
// - T: the first successful value.
// - error: ErrProviderUnavailable wrapping every endpoint failure when none succeed.
func Sequential[T any](ctx context.Context, set *Set, fn CallFunc[T]) (T, error) {
	var zero T

	healthy := set.Healthy()
	if len(healthy) == 0 {
		return zero, errors.Wrapf(commonerrors.ErrProviderUnavailable, "endpoint set %s has no healthy endpoints", set.Name())
	}

	var failures *multierror.Error
	for _, endpoint := range healthy {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		value, err := fn(ctx, endpoint)
		if err == nil {
			set.ReportSuccess(endpoint)
			return value, nil
		}
		if perm, ok := asPermanent(err); ok {
			set.ReportSuccess(endpoint)
			return zero, perm
		}
		set.ReportFailure(endpoint, err)
		failures = multierror.Append(failures, errors.Wrap(err, endpoint.URL))
	}

	return zero, errors.Wrapf(commonerrors.ErrProviderUnavailable, "endpoint set %s: %v", set.Name(), failures.ErrorOrNil())
}

// Dispatch runs fn across the set using the given racing flag: raced for the
// fast execution modes, sequential otherwise.
func Dispatch[T any](ctx context.Context, set *Set, race bool, fn CallFunc[T]) (T, error) {
	if race {
		return Race(ctx, set, fn)
	}
	return Sequential(ctx, set, fn)
}
