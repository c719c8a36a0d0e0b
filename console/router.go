package console

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/supplykz/supplier-console/permissions"
	"github.com/supplykz/supplier-console/services"
)

// Destination is a place in the console
type Destination struct {
	Page Page
	// ConsumerID selects a conversation when opening chat
	ConsumerID int64
	// EntityID selects an order, complaint or link on its page
	EntityID int64
}

// Navigator moves the console to a destination
type Navigator interface {
	Navigate(ctx context.Context, dest Destination) error
}

// Router tracks the current destination and tells listeners about moves
type Router struct {
	caps func() permissions.CapabilitySet

	mu        sync.RWMutex
	current   Destination
	listeners map[string]func(Destination)
}

// NewRouter creates a router starting at the dashboard. caps is consulted on
// every navigation so role changes apply immediately.
func NewRouter(caps func() permissions.CapabilitySet) *Router {
	return &Router{
		caps:      caps,
		current:   Destination{Page: PageDashboard},
		listeners: make(map[string]func(Destination)),
	}
}

// Navigate moves to dest when the current capabilities allow it
func (r *Router) Navigate(ctx context.Context, dest Destination) error {
	if _, ok := LookupPage(dest.Page); !ok {
		return services.NewDomainError(services.ErrorTypeNotFound, "unknown page", nil).
			WithDetail("page", string(dest.Page))
	}
	if !CanOpen(r.caps(), dest.Page) {
		return services.NewDomainError(services.ErrorTypeForbidden,
			"You do not have permission to open this page", services.ErrInsufficientPermissions).
			WithDetail("page", string(dest.Page))
	}

	r.mu.Lock()
	r.current = dest
	listeners := make([]func(Destination), 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.Unlock()

	for _, l := range listeners {
		l(dest)
	}
	return nil
}

// Current returns the current destination
func (r *Router) Current() Destination {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Reset returns to the dashboard without notifying listeners
func (r *Router) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = Destination{Page: PageDashboard}
}

// OnNavigate registers fn and returns a function that removes it
func (r *Router) OnNavigate(fn func(Destination)) func() {
	id := uuid.NewString()
	r.mu.Lock()
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}
