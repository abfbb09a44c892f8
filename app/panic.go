package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"cubeviz/quarkgl"
	"cubeviz/ui"
)

// ErrPanic reports a panic recovered from the frame step.
var ErrPanic = errors.New("panic")

// guard turns a panic in step into an error. The stack goes to the host
// logger line by line and a panic screen replaces the panels.
func (s *system) guard(step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			stack := strings.Split(strings.TrimSpace(string(debug.Stack())), "\n")
			s.log.Error("panic", "value", v)
			if l := s.h.Logger(); l != nil {
				for _, line := range stack {
					if line != "" {
						l.WriteLineString(line)
					}
				}
			}
			if s.fb != nil {
				lines := append([]string{"cubeviz panic:", fmt.Sprint(v), "stack:"}, stack...)
				ui.Notice(s.fb, lines, quarkgl.Hex(0x000000), quarkgl.Hex(0xffffff))
				_ = s.fb.Present()
			}
			err = fmt.Errorf("app: %w: %v", ErrPanic, v)
		}()
		return step()
	}
}
