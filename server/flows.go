package server

import (
	"sync"

	"github.com/lifelinkhq/donor-portal/wizard"
)

// donorFlow is one browser context's in-progress donor registration: the
// accumulated draft plus the step machine over it.
type donorFlow struct {
	draft   *wizard.Draft
	machine *wizard.Machine
}

// hospitalFlow is the hospital counterpart (single-step machine).
type hospitalFlow struct {
	draft   *wizard.HospitalDraft
	machine *wizard.Machine
}

// flowRepo keeps in-progress registration flows per browser context. Flows
// are transient UI state: created when the wizard mounts, discarded on
// successful submission or when a fresh wizard is requested.
type flowRepo[T any] struct {
	mu    sync.RWMutex
	flows map[string]*T
}

func newFlowRepo[T any]() *flowRepo[T] {
	return &flowRepo[T]{flows: make(map[string]*T)}
}

func (r *flowRepo[T]) Get(contextID string) (*T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	flow, ok := r.flows[contextID]
	return flow, ok
}

func (r *flowRepo[T]) Put(contextID string, flow *T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flows[contextID] = flow
}

func (r *flowRepo[T]) Delete(contextID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, contextID)
}
