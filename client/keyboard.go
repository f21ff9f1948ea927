package client

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// keyBinding pairs a raylib key code with the name used in the key state.
type keyBinding struct {
	code int32
	name string
}

// keyTable lists every key the client reports, in poll order.
var keyTable = buildKeyTable()

func buildKeyTable() []keyBinding {
	table := []keyBinding{
		{rl.KeyLeft, "Left"},
		{rl.KeyRight, "Right"},
		{rl.KeyUp, "Up"},
		{rl.KeyDown, "Down"},
		{rl.KeySpace, "Space"},
		{rl.KeyEnter, "Return"},
		{rl.KeyEscape, "Escape"},
		{rl.KeyTab, "Tab"},
		{rl.KeyBackspace, "Backspace"},
		{rl.KeyLeftShift, "Left Shift"},
		{rl.KeyRightShift, "Right Shift"},
		{rl.KeyLeftControl, "Left Ctrl"},
		{rl.KeyRightControl, "Right Ctrl"},
	}
	for i := int32(0); i < 26; i++ {
		table = append(table, keyBinding{rl.KeyA + i, string(rune('A' + i))})
	}
	for i := int32(0); i < 10; i++ {
		table = append(table, keyBinding{rl.KeyZero + i, strconv.Itoa(int(i))})
	}
	for i := int32(0); i < 12; i++ {
		table = append(table, keyBinding{rl.KeyF1 + i, "F" + strconv.Itoa(int(i)+1)})
	}
	return table
}
