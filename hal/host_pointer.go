//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch     chan PointerEvent
	lastX  int
	lastY  int
	primed bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) poll() {
	emit := func(ev PointerEvent) {
		select {
		case p.ch <- ev:
		default:
		}
	}

	// CursorPosition is already in Layout (framebuffer) coordinates.
	x, y := ebiten.CursorPosition()
	if !p.primed || x != p.lastX || y != p.lastY {
		p.primed = true
		p.lastX, p.lastY = x, y
		emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		emit(PointerEvent{Kind: PointerPress, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		emit(PointerEvent{Kind: PointerRelease, X: x, Y: y})
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, WheelY: wy})
	}
}
