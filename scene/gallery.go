package scene

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Gallery holds uniquely named scenes in insertion order. It is driven from
// a single goroutine; Tick fans out internally.
type Gallery struct {
	scenes []*Scene
	byName map[string]*Scene
}

// NewGallery returns an empty gallery.
func NewGallery() *Gallery {
	return &Gallery{byName: make(map[string]*Scene)}
}

// Add appends s. A name already in the gallery is a *ConstructionError
// wrapping ErrDuplicateName.
func (g *Gallery) Add(s *Scene) error {
	if s == nil {
		return &ConstructionError{Err: ErrEmptyName}
	}
	if _, ok := g.byName[s.name]; ok {
		return &ConstructionError{Scene: s.name, Err: ErrDuplicateName}
	}
	g.scenes = append(g.scenes, s)
	g.byName[s.name] = s
	return nil
}

// Remove stops and drops the named scene.
func (g *Gallery) Remove(name string) bool {
	s, ok := g.byName[name]
	if !ok {
		return false
	}
	s.Stop()
	delete(g.byName, name)
	for i, cur := range g.scenes {
		if cur == s {
			g.scenes = append(g.scenes[:i], g.scenes[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the named scene.
func (g *Gallery) Get(name string) (*Scene, bool) {
	s, ok := g.byName[name]
	return s, ok
}

// Scenes returns the scenes in insertion order.
func (g *Gallery) Scenes() []*Scene {
	return append([]*Scene(nil), g.scenes...)
}

// Len returns the number of scenes.
func (g *Gallery) Len() int { return len(g.scenes) }

// Start starts every scene.
func (g *Gallery) Start() {
	for _, s := range g.scenes {
		s.Start()
	}
}

// Stop stops every scene.
func (g *Gallery) Stop() {
	for _, s := range g.scenes {
		s.Stop()
	}
}

// Tick ticks every running scene, at most workers at a time (0 means no
// limit), and returns the first error. Scenes share no writable state.
func (g *Gallery) Tick(ctx context.Context, workers int) error {
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for _, s := range g.scenes {
		if !s.Running() {
			continue
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.Tick()
		})
	}
	return eg.Wait()
}
