package flags

type Mask uint32

const (
	MaskNone Mask = 0
	MaskAll  Mask = 0xFFFFFFFF
	MaskZero Mask = 0
)
