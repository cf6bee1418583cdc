// Package views maps view names to the controller loads that back them.
// It is the trigger point for every list load; rendering happens elsewhere.
package views

import (
	"context"
	"fmt"
	"sort"
)

// Loader fills a controller's cache for one view.
type Loader func(ctx context.Context) error

// Router dispatches a requested view name to its loader.
type Router struct {
	loaders map[string]Loader
}

func NewRouter() *Router {
	return &Router{loaders: make(map[string]Loader)}
}

// Register binds a view name to a loader. Registering a name twice
// replaces the previous loader.
func (r *Router) Register(name string, loader Loader) {
	r.loaders[name] = loader
}

// Open runs the loader of the named view.
func (r *Router) Open(ctx context.Context, name string) error {
	loader, ok := r.loaders[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	return loader(ctx)
}

// Views lists the registered view names, sorted.
func (r *Router) Views() []string {
	names := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
