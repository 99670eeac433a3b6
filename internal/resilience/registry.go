package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Observer receives the timing and outcome of each external provider call.
type Observer interface {
	Record(ctx context.Context, provider string, elapsed time.Duration, err error)
}

// MultiObserver fans a provider call out to several observers.
type MultiObserver []Observer

// Record implements Observer.
func (m MultiObserver) Record(ctx context.Context, provider string, elapsed time.Duration, err error) {
	for _, o := range m {
		o.Record(ctx, provider, elapsed, err)
	}
}

// ProviderHealth is a point-in-time view of one provider.
type ProviderHealth struct {
	// Name is the provider identifier.
	Name string

	// CircuitState is the breaker state, present only for providers that
	// run behind a resilient client.
	CircuitState *gobreaker.State

	// LastSuccessAt is when the provider last answered successfully.
	LastSuccessAt *time.Time

	// LastFailureAt is when the provider last failed.
	LastFailureAt *time.Time

	// LastError is the most recent error message, if any.
	LastError string
}

// Healthy reports whether the provider looks usable: a closed breaker, or
// without a breaker, no failure since the last success.
func (h ProviderHealth) Healthy() bool {
	if h.CircuitState != nil {
		return *h.CircuitState == gobreaker.StateClosed
	}
	if h.LastFailureAt == nil {
		return true
	}
	return h.LastSuccessAt != nil && h.LastSuccessAt.After(*h.LastFailureAt)
}

// Degraded reports whether the provider is recovering: a half-open breaker,
// or a failure recorded after the last success when it has succeeded before.
func (h ProviderHealth) Degraded() bool {
	if h.CircuitState != nil {
		return *h.CircuitState == gobreaker.StateHalfOpen
	}
	return h.LastSuccessAt != nil && h.LastFailureAt != nil && h.LastFailureAt.After(*h.LastSuccessAt)
}

// Registry tracks the providers the service depends on. It implements
// Observer so provider call sites feed it alongside the metrics.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]*trackedProvider
	order     []string
}

type trackedProvider struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]*trackedProvider)}
}

// Register adds a provider. The client may be nil for providers that do not
// run behind a resilient HTTP client; their health then follows the recorded
// call outcomes only.
func (r *Registry) Register(name string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.providers[name] = &trackedProvider{client: client}
}

// Record implements Observer. Calls for unregistered providers are ignored.
func (r *Registry) Record(_ context.Context, provider string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[provider]
	if !ok {
		return
	}

	now := time.Now()
	if err != nil {
		p.lastFailureAt = &now
		p.lastError = err.Error()
		return
	}
	p.lastSuccessAt = &now
}

// Health returns the health of a single provider, or false if unknown.
func (r *Registry) Health(name string) (ProviderHealth, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return ProviderHealth{}, false
	}
	return health(name, p), true
}

// AllHealth returns every registered provider in registration order.
func (r *Registry) AllHealth() []ProviderHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ProviderHealth, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, health(name, r.providers[name]))
	}
	return out
}

func health(name string, p *trackedProvider) ProviderHealth {
	h := ProviderHealth{
		Name:          name,
		LastSuccessAt: p.lastSuccessAt,
		LastFailureAt: p.lastFailureAt,
		LastError:     p.lastError,
	}
	if p.client != nil {
		state := p.client.State()
		h.CircuitState = &state
	}
	return h
}
