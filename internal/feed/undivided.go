package feed

import "batchfeed/internal/tensor"

// Undivided feeds the whole dataset as a single batch.
type Undivided struct {
	data  NamedData
	names []string
}

// NewUndivided validates data and wraps it as a one-batch iterator.
func NewUndivided(data NamedData) (*Undivided, error) {
	if _, err := Validate(data); err != nil {
		return nil, err
	}
	return &Undivided{data: data, names: data.Names()}, nil
}

func (u *Undivided) DataNames() []string {
	return append([]string(nil), u.names...)
}

func (u *Undivided) Run(_ tensor.Handler, _ bool) *Stream {
	done := false
	return newStream(func() (NamedData, bool) {
		if done {
			return nil, false
		}
		done = true
		return u.data, true
	})
}
