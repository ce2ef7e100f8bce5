package component

// Input stores the actions requested this tick.
type Input struct {
	Feed  bool
	Train bool
	Pause bool
}

var InputComponent = NewComponent[Input]()
