package component

// ClipPlayer drives a frame-key clip on an entity's sprite.
//
// Repeat follows the usual sprite-animation convention: -1 loops forever,
// 0 plays once, N plays N additional times. Every wrap back to the first
// frame counts as one repeat.
type ClipPlayer struct {
	Clip      string
	Frames    []string
	FrameRate float64
	Repeat    int

	Frame    int
	Elapsed  float64
	Repeats  int
	Playing  bool
	Playback uint64
}

var ClipPlayerComponent = NewComponent[ClipPlayer]()
