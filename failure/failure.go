// Package failure records errors that must not stop the running game.
package failure

import (
	"fmt"
	"log"
	"sync"
)

// Sink receives non-critical failures. Handle must not panic and must not
// terminate the process.
type Sink interface {
	Handle(err error)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(err error)

func (f SinkFunc) Handle(err error) {
	f(err)
}

// LogSink writes every failure through the standard logger.
type LogSink struct {
	Prefix string
}

func (s LogSink) Handle(err error) {
	if err == nil {
		return
	}
	log.Printf("%snon-critical: %v", s.Prefix, err)
}

// Discard drops every failure.
var Discard Sink = SinkFunc(func(error) {})

// Recorder keeps every reported failure in order.
type Recorder struct {
	mtx  sync.Mutex
	errs []error
}

func (r *Recorder) Handle(err error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.errs = append(r.errs, err)
}

// Errors returns a copy of the failures reported so far.
func (r *Recorder) Errors() []error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return append([]error(nil), r.errs...)
}

func (r *Recorder) Len() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.errs)
}

func (r *Recorder) Reset() {
	r.mtx.Lock()
	r.errs = nil
	r.mtx.Unlock()
}

// Guard runs fn and reports its panic, if any, to sink as an error.
func Guard(sink Sink, fn func()) {
	defer func() {
		if v := recover(); v != nil {
			err, ok := v.(error)
			if !ok {
				err = fmt.Errorf("%v", v)
			}
			sink.Handle(fmt.Errorf("recovered: %w", err))
		}
	}()
	fn()
}
