package failure

import (
	"errors"
	"strings"
	"testing"
)

func TestRecorderKeepsOrder(t *testing.T) {
	t.Parallel()

	r := &Recorder{}
	first := errors.New("first")
	second := errors.New("second")
	r.Handle(first)
	r.Handle(second)

	errs := r.Errors()
	if len(errs) != 2 || errs[0] != first || errs[1] != second {
		t.Fatalf("Errors() = %v, want [first second]", errs)
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", r.Len())
	}
}

func TestGuardReportsPanic(t *testing.T) {
	t.Parallel()

	r := &Recorder{}
	cause := errors.New("boom")
	Guard(r, func() { panic(cause) })
	Guard(r, func() { panic("text") })
	Guard(r, func() {})

	errs := r.Errors()
	if len(errs) != 2 {
		t.Fatalf("Len() = %d, want 2", len(errs))
	}
	if !errors.Is(errs[0], cause) {
		t.Errorf("errors.Is(%v, cause) = false", errs[0])
	}
	if !strings.Contains(errs[1].Error(), "text") {
		t.Errorf("second failure = %q, want it to mention the panic value", errs[1])
	}
}

func TestSinkFunc(t *testing.T) {
	t.Parallel()

	var got error
	var sink Sink = SinkFunc(func(err error) { got = err })
	want := errors.New("x")
	sink.Handle(want)
	if got != want {
		t.Errorf("SinkFunc forwarded %v, want %v", got, want)
	}
}
