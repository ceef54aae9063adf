// Package progress renders cosmetic console feedback for batch
// iteration. Meters are plain state objects advanced by the caller;
// they never touch the data flow.
package progress

import (
	"fmt"
	"time"
)

// Meter is the feedback surface an iterator drives while producing
// batches. Start is emitted once before the first batch; Advance takes
// the cumulative progress count and returns the text to append.
type Meter interface {
	Start() string
	Advance(progress float64) string
}

const fillText = "====1====2====3====4====5====6====7====8====9====0"
const prefix = "["

// Bar reveals a fixed-width fill proportionally to progress/max. The
// advance that completes the bar appends an elapsed-time suffix; later
// advances return the empty string.
type Bar struct {
	max   float64
	pos   int
	done  bool
	start time.Time
}

// NewBar returns a Bar expecting progress counts up to max. A
// non-positive max completes on the first advance.
func NewBar(max float64) *Bar {
	return &Bar{max: max, start: time.Now()}
}

func (b *Bar) Start() string {
	return prefix
}

func (b *Bar) Advance(progress float64) string {
	if b.done {
		return ""
	}
	j := len(fillText)
	if b.max > 0 {
		j = int(progress / b.max * float64(len(fillText)))
	}
	if j > len(fillText) {
		j = len(fillText)
	}
	if j < b.pos {
		j = b.pos
	}
	out := fillText[b.pos:j]
	b.pos = j
	if b.pos == len(fillText) {
		b.done = true
		elapsed := time.Since(b.start).Truncate(10 * time.Millisecond)
		out += fmt.Sprintf("] Took: %s\n", elapsed)
	}
	return out
}

// Silent is the no-op Meter used when verbosity is off.
type Silent struct{}

func (Silent) Start() string          { return "" }
func (Silent) Advance(float64) string { return "" }
