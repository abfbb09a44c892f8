//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) poll() {
	emit := func(ev KeyEvent) {
		select {
		case k.ch <- ev:
		default:
		}
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		emit(KeyEvent{Press: true, Rune: r})
	}

	for _, key := range []struct {
		ebiten ebiten.Key
		code   KeyCode
	}{
		{ebiten.KeyEscape, KeyEscape},
		{ebiten.KeyTab, KeyTab},
	} {
		if inpututil.IsKeyJustPressed(key.ebiten) {
			emit(KeyEvent{Code: key.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(key.ebiten) {
			emit(KeyEvent{Code: key.code, Press: false})
		}
	}
}
