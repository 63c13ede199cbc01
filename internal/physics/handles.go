package physics

// slotTable maps 1-based handles to engine objects. Released slots are
// reused by the next put, so long runs that spawn and destroy bodies keep a
// bounded table.
type slotTable[T any] struct {
	items []*T
	free  []int
	live  int
}

func (t *slotTable[T]) put(v *T) int {
	t.live++
	if n := len(t.free); n > 0 {
		i := t.free[n-1]
		t.free = t.free[:n-1]
		t.items[i] = v
		return i + 1
	}
	t.items = append(t.items, v)
	return len(t.items)
}

// get returns nil for empty or released handles.
func (t *slotTable[T]) get(h int) *T {
	if h <= 0 || h > len(t.items) {
		return nil
	}
	return t.items[h-1]
}

func (t *slotTable[T]) release(h int) {
	if t.get(h) == nil {
		return
	}
	t.items[h-1] = nil
	t.free = append(t.free, h-1)
	t.live--
}

func (t *slotTable[T]) reset() { *t = slotTable[T]{} }
