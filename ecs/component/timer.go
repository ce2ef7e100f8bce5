package component

// Timer fires Fn once Remaining seconds have elapsed, then its entity is
// destroyed.
type Timer struct {
	Remaining float64
	Fn        func()
}

var TimerComponent = NewComponent[Timer]()
