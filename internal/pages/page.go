// Package pages holds the view models behind each screen. A list page
// fetches on Mount, refetches after every successful mutation, and never
// patches its state locally.
package pages

import (
	"context"
	"sync"

	"lifeos/internal/models"
	"lifeos/internal/session"
)

// ListFunc fetches the full list of a user's items.
type ListFunc[T any] func(ctx context.Context, userID uint) ([]T, error)

// MutateFunc performs one write on behalf of a user.
type MutateFunc func(ctx context.Context, userID uint) error

// Page is the fetch, mutate, refetch cycle shared by every list screen.
// Mutations are not serialized against each other; whichever list arrives
// last wins.
type Page[T any] struct {
	sess *session.Session
	list ListFunc[T]

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	user   *models.User
	items  []T
	loaded bool
}

// NewPage creates a page reading the user from sess and fetching with list.
func NewPage[T any](sess *session.Session, list ListFunc[T]) *Page[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Page[T]{sess: sess, list: list, ctx: ctx, cancel: cancel}
}

// Mount loads the list for the session's user. Without a token or a cached
// profile nothing is fetched and the page stays empty.
func (p *Page[T]) Mount() error {
	user := p.sess.User()
	if !p.sess.Authenticated() || user == nil {
		p.mu.Lock()
		p.user, p.items, p.loaded = nil, nil, false
		p.mu.Unlock()
		return nil
	}

	p.mu.Lock()
	p.user = user
	p.mu.Unlock()
	return p.Refresh()
}

// Refresh re-issues the list fetch and replaces the local state with the
// response. A closed page ignores the response.
func (p *Page[T]) Refresh() error {
	user := p.User()
	if user == nil {
		return errNoUser
	}

	items, err := p.list(p.ctx, user.ID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx.Err() != nil {
		return p.ctx.Err()
	}
	p.items = items
	p.loaded = true
	return nil
}

// Mutate runs fn and, when it succeeds, refetches the list exactly once. A
// failed mutation leaves the state as it was.
func (p *Page[T]) Mutate(fn MutateFunc) error {
	user := p.User()
	if user == nil {
		return errNoUser
	}
	if err := fn(p.ctx, user.ID); err != nil {
		return err
	}
	return p.Refresh()
}

// Items returns a copy of the current list.
func (p *Page[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// Loaded reports whether at least one fetch has succeeded.
func (p *Page[T]) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// User returns the user the page was mounted for, or nil.
func (p *Page[T]) User() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user
}

// Context is cancelled when the page closes.
func (p *Page[T]) Context() context.Context {
	return p.ctx
}

// Close cancels in-flight calls; later responses are dropped.
func (p *Page[T]) Close() {
	p.cancel()
}
