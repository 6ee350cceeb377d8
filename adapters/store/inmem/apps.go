package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/domain/model"
)

// AppRegistry is a thread-safe in-memory app registry that records reload
// calls so tests can assert ordering.
type AppRegistry struct {
	mu      sync.RWMutex
	items   map[string]*model.App
	reloads []string
	// FailReload, when set, is returned by every Reload call.
	FailReload error
}

func NewAppRegistry() *AppRegistry {
	return &AppRegistry{items: make(map[string]*model.App)}
}

// Add registers an app.
func (r *AppRegistry) Add(a *model.App) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.items[a.Name] = &cp
}

func (r *AppRegistry) List(_ context.Context) ([]*model.App, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.App, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *AppRegistry) Get(_ context.Context, name string) (*model.App, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrAppNotFound, name)
	}
	cp := *v
	return &cp, nil
}

func (r *AppRegistry) Reload(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailReload != nil {
		return r.FailReload
	}
	v, ok := r.items[name]
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrAppNotFound, name)
	}
	v.ReloadedAt = time.Now()
	r.reloads = append(r.reloads, name)
	return nil
}

// Reloads returns the names passed to Reload, in call order.
func (r *AppRegistry) Reloads() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.reloads))
	copy(out, r.reloads)
	return out
}

var _ domain.AppRegistry = (*AppRegistry)(nil)
