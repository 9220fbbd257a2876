package binser

// Stacks, queues and priority queues only expose their elements by removal,
// so their encoders drain the container into a scratch slice, write it, and
// refill the container before returning. The caller's container is unchanged
// afterwards, including when an element fails to encode.
//
// A nil container encodes as empty. Decoders allocate *out when nil and
// otherwise add to it.

// StackOf writes the count, then elements bottom to top. Pushing them back
// in that order on decode gives the same pop order as the source.
func StackOf[T any](elem Coder[T]) Coder[*Stack[T]] {
	return CoderFunc(
		func(s *Serializer, st *Stack[T]) error {
			if st == nil {
				return WriteLen(s, 0)
			}
			drained := make([]T, 0, st.Len()) // top first
			for v, ok := st.Pop(); ok; v, ok = st.Pop() {
				drained = append(drained, v)
			}
			defer func() {
				for i := len(drained) - 1; i >= 0; i-- {
					st.Push(drained[i])
				}
			}()

			if err := WriteLen(s, len(drained)); err != nil {
				return err
			}
			for i := len(drained) - 1; i >= 0; i-- {
				if err := elem.Encode(s, drained[i]); err != nil {
					return err
				}
			}
			return nil
		},
		func(s *Serializer, out **Stack[T]) error {
			if *out == nil {
				*out = NewStack[T]()
			}
			return decodeEach(s, elem, (*out).Push)
		},
	)
}

// QueueOf writes the count, then elements front to back.
func QueueOf[T any](elem Coder[T]) Coder[*Queue[T]] {
	return CoderFunc(
		func(s *Serializer, q *Queue[T]) error {
			if q == nil {
				return WriteLen(s, 0)
			}
			drained := make([]T, 0, q.Len())
			for v, ok := q.Pop(); ok; v, ok = q.Pop() {
				drained = append(drained, v)
			}
			defer func() {
				for _, v := range drained {
					q.Push(v)
				}
			}()
			return encodeAll(s, elem, drained)
		},
		func(s *Serializer, out **Queue[T]) error {
			if *out == nil {
				*out = NewQueue[T]()
			}
			return decodeEach(s, elem, (*out).Push)
		},
	)
}

// PriorityQueueOf writes the count, then elements in removal order (highest
// priority first). Decode inserts each element; the destination's own
// ordering decides its layout, so the top element and the multiset of
// elements survive the round trip. less orders a destination created for a
// nil *out.
func PriorityQueueOf[T any](elem Coder[T], less func(a, b T) bool) Coder[*PriorityQueue[T]] {
	if less == nil {
		panic("binser: less can't be nil")
	}
	return CoderFunc(
		func(s *Serializer, pq *PriorityQueue[T]) error {
			if pq == nil {
				return WriteLen(s, 0)
			}
			drained := make([]T, 0, pq.Len())
			for v, ok := pq.Pop(); ok; v, ok = pq.Pop() {
				drained = append(drained, v)
			}
			defer func() {
				for _, v := range drained {
					pq.Push(v)
				}
			}()
			return encodeAll(s, elem, drained)
		},
		func(s *Serializer, out **PriorityQueue[T]) error {
			if *out == nil {
				*out = NewPriorityQueue(less)
			}
			return decodeEach(s, elem, (*out).Push)
		},
	)
}

// DequeOf writes the count, then elements front to back. Decode pushes each
// element to the back, so order is preserved.
func DequeOf[T any](elem Coder[T]) Coder[*Deque[T]] {
	return CoderFunc(
		func(s *Serializer, d *Deque[T]) error {
			if d == nil {
				return WriteLen(s, 0)
			}
			if err := WriteLen(s, d.Len()); err != nil {
				return err
			}
			for v := range d.All() {
				if err := elem.Encode(s, v); err != nil {
					return err
				}
			}
			return nil
		},
		func(s *Serializer, out **Deque[T]) error {
			if *out == nil {
				*out = NewDeque[T]()
			}
			return decodeEach(s, elem, (*out).PushBack)
		},
	)
}

func encodeAll[T any](s *Serializer, elem Coder[T], items []T) error {
	if err := WriteLen(s, len(items)); err != nil {
		return err
	}
	for _, v := range items {
		if err := elem.Encode(s, v); err != nil {
			return err
		}
	}
	return nil
}

// decodeEach reads a count, then hands each decoded element to push.
func decodeEach[T any](s *Serializer, elem Coder[T], push func(T)) error {
	n, err := ReadLen(s)
	if err != nil {
		return err
	}
	for range n {
		var v T
		if err := elem.Decode(s, &v); err != nil {
			return err
		}
		push(v)
	}
	return nil
}
