package sub

type Color int

const (
	Red Color = iota
	Green
	Blue
	Crimson = Red
)
