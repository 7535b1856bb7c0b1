package pkgsync

import (
	"sync"

	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/reconcile"
)

// Hook function types for change-set events
type (
	// PackageAddedHook is called for each package a run creates
	PackageAddedHook func(pkg packages.Package)

	// PackageUpdatedHook is called for each package whose readme changed
	PackageUpdatedHook func(update reconcile.PackageUpdate)

	// URLAddedHook is called for each URL a run mints
	URLAddedHook func(url packages.URL)

	// DependencyAddedHook is called for each new dependency edge
	DependencyAddedHook func(dep packages.LegacyDependency)

	// DependencyRemovedHook is called for each dependency edge a run removes
	DependencyRemovedHook func(dep packages.LegacyDependency)
)

// Hooks registers callbacks fired after each run with the filtered
// change-set, before it is written.
type Hooks interface {
	OnPackageAdded(fn PackageAddedHook)
	OnPackageUpdated(fn PackageUpdatedHook)
	OnURLAdded(fn URLAddedHook)
	OnDependencyAdded(fn DependencyAddedHook)
	OnDependencyRemoved(fn DependencyRemovedHook)
}

// hooks manages event callbacks for change-sets
type hooks struct {
	mu                  sync.RWMutex
	onPackageAdded      []PackageAddedHook
	onPackageUpdated    []PackageUpdatedHook
	onURLAdded          []URLAddedHook
	onDependencyAdded   []DependencyAddedHook
	onDependencyRemoved []DependencyRemovedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnPackageAdded registers a callback for created packages.
func (c *client) OnPackageAdded(fn PackageAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onPackageAdded = append(c.hooks.onPackageAdded, fn)
}

// OnPackageUpdated registers a callback for updated packages.
func (c *client) OnPackageUpdated(fn PackageUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onPackageUpdated = append(c.hooks.onPackageUpdated, fn)
}

// OnURLAdded registers a callback for minted URLs.
func (c *client) OnURLAdded(fn URLAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onURLAdded = append(c.hooks.onURLAdded, fn)
}

// OnDependencyAdded registers a callback for new dependency edges.
func (c *client) OnDependencyAdded(fn DependencyAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onDependencyAdded = append(c.hooks.onDependencyAdded, fn)
}

// OnDependencyRemoved registers a callback for removed dependency edges.
func (c *client) OnDependencyRemoved(fn DependencyRemovedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onDependencyRemoved = append(c.hooks.onDependencyRemoved, fn)
}

// triggerResult fires the hooks for every change in the result.
func (h *hooks) triggerResult(result *reconcile.Result) {
	if result == nil || result.Changeset == nil {
		return
	}
	cs := result.Changeset

	h.mu.RLock()
	defer h.mu.RUnlock()

	if cs.Packages != nil {
		for _, p := range cs.Packages.Added {
			for _, hook := range h.onPackageAdded {
				hook(p)
			}
		}
		for _, u := range cs.Packages.Updated {
			for _, hook := range h.onPackageUpdated {
				hook(u)
			}
		}
	}
	if cs.URLs != nil {
		for _, u := range cs.URLs.Added {
			for _, hook := range h.onURLAdded {
				hook(u)
			}
		}
	}
	if cs.Dependencies != nil {
		for _, d := range cs.Dependencies.Added {
			for _, hook := range h.onDependencyAdded {
				hook(d)
			}
		}
		for _, d := range cs.Dependencies.Removed {
			for _, hook := range h.onDependencyRemoved {
				hook(d)
			}
		}
	}
}
