package kinds

type Kind int

const (
	A Kind = 0
	B Kind = 1
)
