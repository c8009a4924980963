package audit

import "context"

// Fanout appends each event to every sink. The first sink error is returned
// after all sinks have been attempted, so one failing sink does not starve
// the others.
type Fanout struct {
	sinks []Store
}

func NewFanout(sinks ...Store) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Append(ctx context.Context, event Event) error {
	var firstErr error
	for _, sink := range f.sinks {
		if err := sink.Append(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
