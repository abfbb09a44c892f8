// Package app wires the demonstration scenes to panels on the host
// framebuffer and routes input to them.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"cubeviz/demo"
	"cubeviz/hal"
	"cubeviz/internal/buildinfo"
	"cubeviz/internal/logx"
	"cubeviz/quarkgl"
	"cubeviz/scene"
	"cubeviz/ui"
)

type view struct {
	panel *ui.Panel
	scene *scene.Scene
	title string
}

type system struct {
	h   hal.HAL
	cfg Config
	log *slog.Logger
	ctx context.Context

	fb      hal.Framebuffer
	gallery *scene.Gallery
	views   []*view

	kbd <-chan hal.KeyEvent
	ptr <-chan hal.PointerEvent

	drag struct {
		v    *view
		x, y int
	}
	paused bool
	faces  quarkgl.RenderMode
	ortho  bool
	dirty  bool
}

// New builds the demonstration scenes and returns the per-frame step.
func New(h hal.HAL, cfg Config) (func() error, error) {
	s, err := newSystem(h, cfg)
	if err != nil {
		return nil, err
	}
	return s.guard(s.step), nil
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	if h == nil {
		return nil, errors.New("app: nil HAL")
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("app: log level: %w", err)
	}
	faces, _ := parseFaces(cfg.Faces)
	bg, _ := parseColor(cfg.Background)

	s := &system{
		h:       h,
		cfg:     cfg,
		log:     logx.New(h.Logger(), level),
		ctx:     context.Background(),
		gallery: scene.NewGallery(),
		faces:   faces,
		dirty:   true,
	}
	if d := h.Display(); d != nil {
		s.fb = d.Framebuffer()
	}
	if in := h.Input(); in != nil {
		if k := in.Keyboard(); k != nil {
			s.kbd = k.Events()
		}
		if p := in.Pointer(); p != nil {
			s.ptr = p.Events()
		}
	}

	defs, err := demo.Scenes()
	if err != nil {
		return nil, err
	}
	rows := (len(defs) + cfg.Columns - 1) / cfg.Columns
	var cells []image.Rectangle
	if s.fb != nil {
		s.fb.ClearRGB(bg.R, bg.G, bg.B)
		cells = ui.Grid(s.fb.Width(), s.fb.Height(), cfg.Columns, rows, 0)
	}

	for i, def := range defs {
		sc, err := scene.New(def.Name, def.Steps, def.Color,
			scene.WithDamping(cfg.Damping),
			scene.WithBackground(bg),
			scene.WithFaces(faces),
			scene.WithLogger(s.log),
		)
		if err != nil {
			return nil, err
		}
		if err := s.gallery.Add(sc); err != nil {
			return nil, err
		}

		var surface quarkgl.Target
		var panel *ui.Panel
		if i < len(cells) {
			panel, err = ui.NewPanel(s.fb, cells[i], def.Name)
			if err != nil {
				s.log.Warn("panel unavailable", "scene", def.Name, "err", err)
			} else {
				surface = panel.Surface()
			}
		}
		if err := sc.Attach(surface); err != nil {
			s.log.Error("scene dropped", "scene", def.Name, "err", err)
			s.gallery.Remove(def.Name)
			continue
		}
		panel.TitleBG = def.Color.MulScalar(0.35)
		panel.Background = bg
		panel.SetText(sc.Text())
		s.views = append(s.views, &view{panel: panel, scene: sc, title: def.Name})
	}

	s.gallery.Start()
	s.log.Info("ready", "build", buildinfo.String(), "scenes", s.gallery.Len(), "columns", cfg.Columns, "workers", cfg.Workers, "faces", facesName(faces))
	return s, nil
}

func (s *system) step() error {
	if err := s.drainKeys(); err != nil {
		return err
	}
	s.drainPointer()

	if err := s.gallery.Tick(s.ctx, s.cfg.Workers); err != nil {
		var rse *scene.RenderSurfaceError
		if !errors.As(err, &rse) {
			return err
		}
		s.log.Error("scene dropped", "scene", rse.Scene, "err", err)
		s.drop(rse.Scene)
	}

	if s.dirty {
		for _, v := range s.views {
			v.panel.Title = v.title
			if s.paused {
				v.panel.Title += " (paused)"
			}
			v.panel.Draw()
		}
		s.dirty = false
	}
	if s.fb == nil {
		return nil
	}
	return s.fb.Present()
}

func (s *system) drop(name string) {
	s.gallery.Remove(name)
	for i, v := range s.views {
		if v.scene.Name() == name {
			s.views = append(s.views[:i], s.views[i+1:]...)
			break
		}
	}
	if s.drag.v != nil && s.drag.v.scene.Name() == name {
		s.drag.v = nil
	}
}

func (s *system) drainKeys() error {
	if s.kbd == nil {
		return nil
	}
	for {
		select {
		case ev := <-s.kbd:
			if err := s.handleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *system) handleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	switch ev.Code {
	case hal.KeyEscape:
		s.log.Info("quit")
		return hal.ErrQuit
	case hal.KeyUnknown:
	default:
		return nil
	}

	switch ev.Rune {
	case 'r', 'R':
		for _, v := range s.views {
			v.scene.ResetCamera()
		}
		s.log.Debug("cameras reset")
	case ' ':
		s.paused = !s.paused
		if s.paused {
			s.gallery.Stop()
		} else {
			s.gallery.Start()
		}
		s.dirty = true
		s.log.Info("paused", "on", s.paused)
	case 'f', 'F':
		s.faces = nextFaces(s.faces)
		for _, v := range s.views {
			v.scene.SetFaces(s.faces)
		}
		s.log.Info("faces", "mode", facesName(s.faces))
	case 'o', 'O':
		s.ortho = !s.ortho
		for _, v := range s.views {
			v.scene.SetOrtho(s.ortho)
		}
		s.log.Info("orthographic", "on", s.ortho)
	}
	return nil
}

func (s *system) drainPointer() {
	if s.ptr == nil {
		return
	}
	for {
		select {
		case ev := <-s.ptr:
			s.handlePointer(ev)
		default:
			return
		}
	}
}

func (s *system) handlePointer(ev hal.PointerEvent) {
	switch ev.Kind {
	case hal.PointerPress:
		s.drag.v = s.viewAt(ev.X, ev.Y)
		s.drag.x, s.drag.y = ev.X, ev.Y
	case hal.PointerMove:
		if s.drag.v == nil {
			return
		}
		dx := quarkgl.Scalar(ev.X - s.drag.x)
		dy := quarkgl.Scalar(ev.Y - s.drag.y)
		s.drag.x, s.drag.y = ev.X, ev.Y
		s.drag.v.scene.Orbit().Rotate(-dx*s.cfg.RotateSpeed, dy*s.cfg.RotateSpeed)
	case hal.PointerRelease:
		s.drag.v = nil
	case hal.PointerWheel:
		if v := s.viewAt(ev.X, ev.Y); v != nil {
			v.scene.Orbit().Zoom(-quarkgl.Scalar(ev.WheelY) * s.cfg.ZoomStep)
		}
	}
}

// viewAt returns the view whose drawing surface contains x, y.
func (s *system) viewAt(x, y int) *view {
	for _, v := range s.views {
		if image.Pt(x, y).In(v.panel.SurfaceBounds()) {
			return v
		}
	}
	return nil
}
