// Package telemetry writes a CSV trace of the pet's status over time.
package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/milk9111/digipet/pet"
)

// Sample is one CSV row.
type Sample struct {
	Time      string  `csv:"time"`
	Species   string  `csv:"species"`
	State     string  `csv:"state"`
	Animation string  `csv:"animation"`
	Hunger    float64 `csv:"hunger"`
	Strength  float64 `csv:"strength"`
	Happiness float64 `csv:"happiness"`
	Age       float64 `csv:"age"`
	Training  int     `csv:"training"`
	Sleeping  bool    `csv:"sleeping"`
	Event     string  `csv:"event"`
}

// LogValue implements slog.LogValuer.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("species", s.Species),
		slog.String("state", s.State),
		slog.Float64("hunger", s.Hunger),
		slog.Float64("age", s.Age),
		slog.String("event", s.Event),
	)
}

// Source is what the recorder samples.
type Source interface {
	Status() pet.Status
	Species() string
	State() pet.State
	Animation() string
}

// Snapshot builds a sample of src at now.
func Snapshot(now time.Time, src Source, event string) Sample {
	st := src.Status()
	return Sample{
		Time:      now.UTC().Format(time.RFC3339),
		Species:   src.Species(),
		State:     src.State().String(),
		Animation: src.Animation(),
		Hunger:    st.Hunger,
		Strength:  st.Strength,
		Happiness: st.Happiness,
		Age:       st.Age,
		Training:  st.Training,
		Sleeping:  st.Sleeping,
		Event:     event,
	}
}

// Recorder appends samples to a CSV stream. A nil *Recorder is a valid
// no-op so callers need not check whether tracing is enabled.
type Recorder struct {
	out           io.Writer
	closer        io.Closer
	every         time.Duration
	last          time.Time
	headerWritten bool
}

func NewRecorder(out io.Writer, every time.Duration) *Recorder {
	return &Recorder{out: out, every: every}
}

// Create opens path for writing. It returns nil, nil when path is empty.
func Create(path string, every time.Duration) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("telemetry: create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create %s: %w", path, err)
	}
	r := NewRecorder(f, every)
	r.closer = f
	return r, nil
}

// Record writes one sample, with the header on the first write.
func (r *Recorder) Record(s Sample) error {
	if r == nil {
		return nil
	}
	records := []Sample{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("telemetry: write: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		return fmt.Errorf("telemetry: write: %w", err)
	}
	return nil
}

// Observe records src when the sampling interval has passed since the last
// periodic sample. A non-empty event is always recorded.
func (r *Recorder) Observe(now time.Time, src Source, event string) error {
	if r == nil {
		return nil
	}
	if event == "" {
		if !r.last.IsZero() && now.Sub(r.last) < r.every {
			return nil
		}
		r.last = now
	}
	return r.Record(Snapshot(now, src, event))
}

func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
