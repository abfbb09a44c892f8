package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName reports a scene without a name.
	ErrEmptyName = errors.New("empty scene name")
	// ErrDuplicateName reports a second scene with a name already in use.
	ErrDuplicateName = errors.New("duplicate scene name")
	// ErrNoSurface reports a missing or zero-area drawing surface.
	ErrNoSurface = errors.New("no drawing surface")
)

// ConstructionError reports a scene that could not be built: a singular or
// degenerate step, broken cube geometry, or a bad name.
type ConstructionError struct {
	Scene string
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("scene %q: construction: %v", e.Scene, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// RenderSurfaceError reports a scene that has nowhere to draw. It is fatal
// to that scene only.
type RenderSurfaceError struct {
	Scene string
	Err   error
}

func (e *RenderSurfaceError) Error() string {
	return fmt.Sprintf("scene %q: render surface: %v", e.Scene, e.Err)
}

func (e *RenderSurfaceError) Unwrap() error { return e.Err }
