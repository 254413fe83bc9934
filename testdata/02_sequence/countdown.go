package countdown

type Countdown int

const (
	Three Countdown = 3 - iota
	Two
	One
	Zero
)

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
)
