package levels

// TestEnum1 has one duplicated value.
type TestEnum1 int

const (
	Unknown TestEnum1 = 0
	First   TestEnum1 = 1
	Second  TestEnum1 = 1
	Third   TestEnum1 = 3
)

type TestEnum2 int32

const (
	T2Unknown TestEnum2 = 0
	T2First   TestEnum2 = 1
	T2Second  TestEnum2 = 2
	T2Third   TestEnum2 = 333
	T2Fourth  TestEnum2 = 333
)

type mode uint8

const (
	modeA mode = iota
	modeB      = modeA
)

// Name is not an integer type and is never an enum.
type Name string

const Default Name = "default"
