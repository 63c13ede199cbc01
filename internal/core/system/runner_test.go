package system

import (
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase            { return r.phase }
func (r recorder) Update(_ time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerOrdersByPhaseThenRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"render", PhaseRender, &log})
	r.Register(recorder{"native", PhaseScript, &log})
	r.Register(recorder{"physics", PhasePhysics, &log})
	r.Register(recorder{"lua", PhaseScript, &log})
	r.Register(recorder{"anim", PhaseAnimation, &log})

	r.Tick(time.Millisecond)

	want := []string{"native", "lua", "anim", "physics", "render"}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
}

func TestTickPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"a", PhaseScript, &log})
	r.Register(recorder{"b", PhaseCleanup, &log})

	r.TickPhase(PhaseCleanup, 0)
	if len(log) != 1 || log[0] != "b" {
		t.Fatalf("got %v", log)
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
}

func TestRegisterUnknownPhasePanics(t *testing.T) {
	r := NewRunner()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an out-of-range phase")
		}
	}()
	r.Register(recorder{"bad", phaseCount, new([]string)})
}
