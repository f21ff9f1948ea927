// Package input tracks which keys are held, keyed by key name.
package input

import "strings"

// KeyReader reports whether a named key is currently held.
type KeyReader interface {
	IsPressed(key string) bool
}

// KeyState maps key names to their last known pressed state.
// Entries are flipped but never removed, so the map only grows with the
// number of distinct keys seen.
type KeyState struct {
	keys map[string]bool
}

// NewKeyState creates an empty key state.
func NewKeyState() *KeyState {
	return &KeyState{keys: make(map[string]bool)}
}

// KeyDown marks key as pressed.
func (k *KeyState) KeyDown(key string) {
	k.keys[key] = true
}

// KeyUp marks key as released.
func (k *KeyState) KeyUp(key string) {
	k.keys[key] = false
}

// IsPressed returns true only if key was seen and its last event was a press.
func (k *KeyState) IsPressed(key string) bool {
	return k.keys[key]
}

// Len returns the number of distinct keys ever seen.
func (k *KeyState) Len() int {
	return len(k.keys)
}

// Held returns a fixed key state where every listed key is pressed.
// Used to drive the simulation from a script.
func Held(keys ...string) *KeyState {
	ks := NewKeyState()
	for _, key := range keys {
		ks.KeyDown(key)
	}
	return ks
}

// ParseKeyList splits a comma-separated list of key names, dropping blanks.
func ParseKeyList(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
