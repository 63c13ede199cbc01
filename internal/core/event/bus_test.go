package event

import "testing"

type ping struct{ N int }
type pong struct{ S string }

func TestEmitVisibleOnlyAfterSwap(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(p ping) { got = append(got, p.N) })

	Emit(b, ping{N: 1})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("dispatched before swap: %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v, want [1]", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Fatalf("event redelivered: %v", got)
	}
}

func TestDispatchOrderFollowsFirstSeenType(t *testing.T) {
	b := NewBus()
	var trace []string
	Subscribe(b, func(p pong) { trace = append(trace, "pong:"+p.S) })
	Subscribe(b, func(p ping) { trace = append(trace, "ping") })

	Emit(b, ping{})
	Emit(b, pong{S: "a"})
	Emit(b, pong{S: "b"})
	if Pending[pong](b) != 2 {
		t.Fatalf("pending pong = %d", Pending[pong](b))
	}
	b.SwapBuffers()
	b.DispatchAll()

	want := []string{"pong:a", "pong:b", "ping"}
	if len(trace) != len(want) {
		t.Fatalf("trace %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace %v, want %v", trace, want)
		}
	}
}
