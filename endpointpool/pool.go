package endpointpool

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
)

const (
	// defaultFailureThreshold is the number of consecutive failures after which
	// an endpoint is excluded from selection.
	defaultFailureThreshold = 3
	// defaultCoolDown is how long a failed endpoint stays excluded before it is
	// retried.
	defaultCoolDown = 30 * time.Second
)

// Endpoint represents a single RPC endpoint with its health state. Health is
// tracked per endpoint: an endpoint that fails repeatedly is temporarily
// excluded and retried after a cool-down rather than being retried immediately.
type Endpoint struct {
	URL string

	healthMutex   sync.Mutex
	failures      int
	excludedUntil time.Time
}

// MarkSuccess resets the endpoint's failure count.
func (e *Endpoint) MarkSuccess() {
	e.healthMutex.Lock()
	e.failures = 0
	e.excludedUntil = time.Time{}
	e.healthMutex.Unlock()
}

// MarkFailure records a failure and excludes the endpoint for the cool-down
// period once the failure threshold is reached.
func (e *Endpoint) MarkFailure(threshold int, coolDown time.Duration) {
	e.healthMutex.Lock()
	e.failures++
	if e.failures >= threshold {
		e.excludedUntil = time.Now().Add(coolDown)
		e.failures = 0
	}
	e.healthMutex.Unlock()
}

// Available reports whether the endpoint is currently selectable.
func (e *Endpoint) Available() bool {
	e.healthMutex.Lock()
	defer e.healthMutex.Unlock()
	return time.Now().After(e.excludedUntil)
}

// Set is a named group of RPC endpoints sharing one health policy. Execution
// tiers map to sets: standard tiers get a single conservative endpoint, faster
// tiers get larger pools that are raced for reads.
type Set struct {
	name             string
	logger           *logrus.Logger
	failureThreshold int
	coolDown         time.Duration

	endpointsMutex sync.RWMutex
	endpoints      []*Endpoint
}

// NewSet creates an endpoint set from a list of URLs.
//
// Parameters:
// - name: the set name, referenced by tier configuration.
// - urls: the endpoint URLs in priority order.
// - logger: the logger for logging events.
//
// Returns:
// - *Set: the new endpoint set.
func NewSet(name string, urls []string, logger *logrus.Logger) *Set {
	endpoints := make([]*Endpoint, 0, len(urls))
	for _, url := range urls {
		endpoints = append(endpoints, &Endpoint{URL: url})
	}
	return &Set{
		name:             name,
		logger:           logger,
		failureThreshold: defaultFailureThreshold,
		coolDown:         defaultCoolDown,
		endpoints:        endpoints,
	}
}

// Name returns the set name.
func (s *Set) Name() string {
	return s.name
}

// Size returns the total number of endpoints in the set.
func (s *Set) Size() int {
	s.endpointsMutex.RLock()
	defer s.endpointsMutex.RUnlock()
	return len(s.endpoints)
}

// Healthy returns the endpoints currently selectable, in priority order.
func (s *Set) Healthy() []*Endpoint {
	s.endpointsMutex.RLock()
	defer s.endpointsMutex.RUnlock()

	healthy := make([]*Endpoint, 0, len(s.endpoints))
	for _, endpoint := range s.endpoints {
		if endpoint.Available() {
			healthy = append(healthy, endpoint)
		}
	}
	return healthy
}

// Primary returns exactly one healthy endpoint for mutating submissions.
// Mutating calls are never raced across endpoints to avoid double-submission.
//
// Returns:
// - *Endpoint: the highest-priority healthy endpoint.
// - error: ErrProviderUnavailable if every endpoint is excluded.
func (s *Set) Primary() (*Endpoint, error) {
	healthy := s.Healthy()
	if len(healthy) == 0 {
		return nil, errors.Wrapf(commonerrors.ErrProviderUnavailable, "endpoint set %s has no healthy endpoints", s.name)
	}
	return healthy[0], nil
}

// ReportSuccess marks an endpoint healthy after a successful call.
func (s *Set) ReportSuccess(endpoint *Endpoint) {
	endpoint.MarkSuccess()
}

// ReportFailure records a failed call against an endpoint.
func (s *Set) ReportFailure(endpoint *Endpoint, err error) {
	endpoint.MarkFailure(s.failureThreshold, s.coolDown)
	s.logger.WithFields(logrus.Fields{
		"set":      s.name,
		"endpoint": endpoint.URL,
		"error":    err,
	}).Warn("Endpoint call failed")
}
