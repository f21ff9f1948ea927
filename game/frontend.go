package game

import "github.com/pthm-cable/thrust/input"

// Script is a windowless Frontend that holds a fixed set of keys down for
// the whole run. It never asks to quit; bound the run with MaxFrames.
type Script struct {
	Held []string

	pressed bool
}

// PollInput presses the held keys on the first frame.
func (s *Script) PollInput(keys *input.KeyState) bool {
	if !s.pressed {
		for _, key := range s.Held {
			keys.KeyDown(key)
		}
		s.pressed = true
	}
	return false
}

// Render does nothing.
func (s *Script) Render() error {
	return nil
}
