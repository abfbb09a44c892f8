package app

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cubeviz/hal"
	"cubeviz/quarkgl"
)

type memLogger struct {
	mu    sync.Mutex
	lines []string
}

func (m *memLogger) WriteLineString(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, s)
}

func (m *memLogger) WriteLineBytes(b []byte) { m.WriteLineString(strings.TrimRight(string(b), "\n")) }

func (m *memLogger) contains(s string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

type fakeFB struct {
	w, h     int
	buf      []byte
	presents int
}

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFB) StrideBytes() int        { return f.w * 2 }
func (f *fakeFB) Buffer() []byte          { return f.buf }
func (f *fakeFB) Present() error          { f.presents++; return nil }

func (f *fakeFB) ClearRGB(r, g, b uint8) {
	t := &quarkgl.RGB565Target{Buf: f.buf, Stride: f.w * 2, W: f.w, H: f.h}
	t.Clear(quarkgl.RGB(r, g, b))
}

func (f *fakeFB) painted(r image.Rectangle, bg quarkgl.Color) int {
	t := &quarkgl.RGB565Target{Buf: f.buf, Stride: f.w * 2, W: f.w, H: f.h}
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if t.At(x, y) != bg {
				n++
			}
		}
	}
	return n
}

type fakeHAL struct {
	log  *memLogger
	fb   *fakeFB
	keys chan hal.KeyEvent
	ptr  chan hal.PointerEvent
}

func newFakeHAL(w, h int) *fakeHAL {
	f := &fakeHAL{
		log:  &memLogger{},
		keys: make(chan hal.KeyEvent, 16),
		ptr:  make(chan hal.PointerEvent, 16),
	}
	if w > 0 && h > 0 {
		f.fb = &fakeFB{w: w, h: h, buf: make([]byte, w*h*2)}
	}
	return f
}

func (f *fakeHAL) Logger() hal.Logger     { return f.log }
func (f *fakeHAL) Display() hal.Display   { return f }
func (f *fakeHAL) Input() hal.Input       { return f }
func (f *fakeHAL) Keyboard() hal.Keyboard { return f }
func (f *fakeHAL) Pointer() hal.Pointer   { return ptrSource{f.ptr} }

func (f *fakeHAL) Events() <-chan hal.KeyEvent { return f.keys }

func (f *fakeHAL) Framebuffer() hal.Framebuffer {
	if f.fb == nil {
		return nil
	}
	return f.fb
}

type ptrSource struct{ ch chan hal.PointerEvent }

func (p ptrSource) Events() <-chan hal.PointerEvent { return p.ch }

func key(r rune) hal.KeyEvent { return hal.KeyEvent{Press: true, Rune: r} }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Background = "#102030"
	cfg.Damping = 0.5
	cfg.LogLevel = "debug"
	return cfg
}

func TestNewRendersEveryPanel(t *testing.T) {
	h := newFakeHAL(hal.DefaultWidth, hal.DefaultHeight)
	s, err := newSystem(h, testConfig())
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}
	if got := len(s.views); got != 6 {
		t.Fatalf("views: got %d, want 6", got)
	}
	if err := s.guard(s.step)(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if h.fb.presents != 1 {
		t.Fatalf("presents: got %d, want 1", h.fb.presents)
	}
	bg := quarkgl.Hex(0x102030)
	for _, v := range s.views {
		sb := v.panel.SurfaceBounds()
		if n := h.fb.painted(sb, bg); n == 0 {
			t.Fatalf("%s: nothing rendered on the surface", v.title)
		}
		text := image.Rect(sb.Min.X, sb.Max.Y, sb.Max.X, v.panel.Bounds().Max.Y)
		if n := h.fb.painted(text, bg); n == 0 {
			t.Fatalf("%s: no matrix text drawn", v.title)
		}
	}
	if !h.log.contains("scenes=6") {
		t.Fatalf("missing ready log: %q", h.log.lines)
	}
}

func TestEscapeQuits(t *testing.T) {
	h := newFakeHAL(hal.DefaultWidth, hal.DefaultHeight)
	step, err := New(h, testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.keys <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	if err := step(); !errors.Is(err, hal.ErrQuit) {
		t.Fatalf("step after Escape: got %v, want ErrQuit", err)
	}
}

func TestSpacePausesAndResumes(t *testing.T) {
	h := newFakeHAL(hal.DefaultWidth, hal.DefaultHeight)
	s, err := newSystem(h, testConfig())
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}
	h.keys <- key(' ')
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	for _, sc := range s.gallery.Scenes() {
		if sc.Running() {
			t.Fatalf("%s still running after pause", sc.Name())
		}
	}
	if got := s.views[0].panel.Title; got != "Original (paused)" {
		t.Fatalf("title: got %q", got)
	}

	h.keys <- key(' ')
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	for _, sc := range s.gallery.Scenes() {
		if !sc.Running() {
			t.Fatalf("%s not running after resume", sc.Name())
		}
	}
	if got := s.views[0].panel.Title; got != "Original" {
		t.Fatalf("title: got %q", got)
	}
}

func TestFacesCycle(t *testing.T) {
	h := newFakeHAL(hal.DefaultWidth, hal.DefaultHeight)
	s, err := newSystem(h, testConfig())
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}
	for _, want := range []quarkgl.RenderMode{quarkgl.RenderSolidFlat, quarkgl.RenderWireframe, quarkgl.MeshHidden} {
		h.keys <- key('f')
		if err := s.step(); err != nil {
			t.Fatalf("step: %v", err)
		}
		for _, v := range s.views {
			if got := v.scene.Faces(); got != want {
				t.Fatalf("%s faces: got %v, want %v", v.title, got, want)
			}
		}
	}
}

func TestDragOrbitsOnePanel(t *testing.T) {
	h := newFakeHAL(hal.DefaultWidth, hal.DefaultHeight)
	s, err := newSystem(h, testConfig())
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	before := make([]quarkgl.Vec3, len(s.views))
	for i, v := range s.views {
		before[i] = v.scene.Camera().Position
	}

	c := s.views[1].panel.SurfaceBounds().Min.Add(image.Pt(50, 50))
	h.ptr <- hal.PointerEvent{Kind: hal.PointerPress, X: c.X, Y: c.Y}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: c.X + 30, Y: c.Y + 10}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerRelease, X: c.X + 30, Y: c.Y + 10}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: c.X + 90, Y: c.Y}
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	for i, v := range s.views {
		moved := v.scene.Camera().Position != before[i]
		if i == 1 && !moved {
			t.Fatal("dragged panel camera did not move")
		}
		if i != 1 && moved {
			t.Fatalf("%s camera moved", v.title)
		}
	}

	s.views[1].scene.ResetCamera()
	h.ptr <- hal.PointerEvent{Kind: hal.PointerWheel, X: c.X, Y: c.Y, WheelY: 1}
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if got := s.views[1].scene.Orbit().Radius; got >= 6 {
		t.Fatalf("wheel did not zoom in: radius %v", got)
	}

	h.keys <- key('r')
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if got := s.views[1].scene.Camera().Position; got != before[1] {
		t.Fatalf("reset: got %v, want %v", got, before[1])
	}
}

func TestMissingSurfacesDropScenes(t *testing.T) {
	for _, tc := range []struct {
		name string
		w, h int
	}{
		{"no framebuffer", 0, 0},
		{"tiny framebuffer", 30, 30},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newFakeHAL(tc.w, tc.h)
			s, err := newSystem(h, testConfig())
			if err != nil {
				t.Fatalf("newSystem: %v", err)
			}
			if s.gallery.Len() != 0 || len(s.views) != 0 {
				t.Fatalf("scenes kept without a surface: %d", s.gallery.Len())
			}
			if !h.log.contains("scene dropped") {
				t.Fatalf("drop not logged: %q", h.log.lines)
			}
			if err := s.step(); err != nil {
				t.Fatalf("step: %v", err)
			}
		})
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	h := newFakeHAL(200, 100)
	s, err := newSystem(h, testConfig())
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}
	step := s.guard(func() error { panic("boom") })
	if err := step(); !errors.Is(err, ErrPanic) {
		t.Fatalf("got %v, want ErrPanic", err)
	}
	if !h.log.contains("msg=panic value=boom") {
		t.Fatalf("panic not logged: %q", h.log.lines)
	}
	if h.fb.presents != 1 {
		t.Fatalf("panic screen not presented")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Faces = "glass"
	if _, err := New(newFakeHAL(100, 100), cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("bad faces: got %v, want ErrConfig", err)
	}
	cfg = testConfig()
	cfg.LogLevel = "loud"
	if _, err := New(newFakeHAL(100, 100), cfg); err == nil {
		t.Fatal("bad log level accepted")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	cfg, err := LoadConfig("")
	if err != nil || cfg != DefaultConfig() {
		t.Fatalf("empty path: got %+v, %v", cfg, err)
	}

	cfg, err = LoadConfig(write("ok.toml", "columns = 2\nworkers = 4\nfaces = \"wire\"\nbackground = \"#202020\"\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Columns != 2 || cfg.Workers != 4 || cfg.Faces != "wire" || cfg.Background != "#202020" {
		t.Fatalf("decoded: %+v", cfg)
	}
	if cfg.TPS != DefaultConfig().TPS {
		t.Fatalf("unset key lost its default: tps %d", cfg.TPS)
	}

	if _, err := LoadConfig(write("unknown.toml", "colour = \"red\"\n")); !errors.Is(err, ErrConfig) {
		t.Fatalf("unknown key: got %v, want ErrConfig", err)
	}
	if _, err := LoadConfig(write("bad.toml", "damping = 3.0\n")); !errors.Is(err, ErrConfig) {
		t.Fatalf("out of range: got %v, want ErrConfig", err)
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#4ac8f0")
	if err != nil || c != quarkgl.Hex(0x4ac8f0) {
		t.Fatalf("parseColor: got %v, %v", c, err)
	}
	for _, bad := range []string{"#fff", "blue", "#12345g"} {
		if _, err := parseColor(bad); !errors.Is(err, ErrConfig) {
			t.Fatalf("parseColor(%q): got %v", bad, err)
		}
	}
}
