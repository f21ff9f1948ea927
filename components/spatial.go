package components

// Position represents an entity's screen position and heading.
type Position struct {
	X, Y float64
	Rot  float64 // degrees, kept in [0, 360)
}
