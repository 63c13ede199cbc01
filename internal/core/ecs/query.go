package ecs

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i, id := range sa.entities {
			if b, ok := sb.Get(id); ok {
				fn(id, sa.data[i], b)
			}
		}
	} else {
		for i, id := range sb.entities {
			if a, ok := sa.Get(id); ok {
				fn(id, a, sb.data[i])
			}
		}
	}
}
