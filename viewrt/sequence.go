package viewrt

import "iter"

// Sequence views a resizable array whose elements are viewed as V.
type Sequence[V View[V]] struct{ prop Property }

func (Sequence[V]) Bind(p Property) Sequence[V] { return Sequence[V]{prop: p} }
func (s Sequence[V]) Handle() Property          { return s.prop }

// Len returns the current element count.
func (s Sequence[V]) Len() int { return s.prop.ArraySize() }

// SetLen resizes the sequence.
func (s Sequence[V]) SetLen(n int) { s.prop.SetArraySize(n) }

// At returns a view of element i. The view is created on each call.
func (s Sequence[V]) At(i int) V {
	var zero V
	return zero.Bind(s.prop.ArrayElementAt(i))
}

// InsertAt inserts an element before index i and returns a view of it.
func (s Sequence[V]) InsertAt(i int) V {
	s.prop.InsertArrayElementAt(i)
	return s.At(i)
}

// DeleteAt removes element i.
func (s Sequence[V]) DeleteAt(i int) { s.prop.DeleteArrayElementAt(i) }

// Clear removes every element.
func (s Sequence[V]) Clear() { s.prop.ClearArray() }

// Move moves element src to index dst. It reports whether the move happened.
func (s Sequence[V]) Move(src, dst int) bool { return s.prop.MoveArrayElement(src, dst) }

// All yields index and element view pairs. Each call starts from the first
// element; mutating the sequence while ranging is undefined.
func (s Sequence[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i := range s.Len() {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

// Iterator returns a cursor positioned before the first element.
func (s Sequence[V]) Iterator() *Iterator[V] {
	return &Iterator[V]{seq: s, index: -1}
}

// Iterator is a restartable cursor over a Sequence.
//
//	it := seq.Iterator()
//	for it.Next() {
//	    use(it.Value())
//	}
type Iterator[V View[V]] struct {
	seq   Sequence[V]
	index int
}

// Next advances the cursor and reports whether an element is available.
func (it *Iterator[V]) Next() bool {
	if it.index+1 >= it.seq.Len() {
		return false
	}

	it.index++

	return true
}

// Value returns a view of the current element.
func (it *Iterator[V]) Value() V { return it.seq.At(it.index) }

// Index returns the current position, -1 before the first Next.
func (it *Iterator[V]) Index() int { return it.index }

// Reset rewinds the cursor to before the first element.
func (it *Iterator[V]) Reset() { it.index = -1 }

// FixedBuffer views an inline buffer whose length is fixed by its declaration.
type FixedBuffer[V View[V]] struct{ prop Property }

func (FixedBuffer[V]) Bind(p Property) FixedBuffer[V] { return FixedBuffer[V]{prop: p} }
func (b FixedBuffer[V]) Handle() Property             { return b.prop }

// Len returns the declared buffer length.
func (b FixedBuffer[V]) Len() int { return b.prop.FixedBufferSize() }

// At returns a view of element i.
func (b FixedBuffer[V]) At(i int) V {
	var zero V
	return zero.Bind(b.prop.FixedBufferElementAt(i))
}

// All yields index and element view pairs.
func (b FixedBuffer[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i := range b.Len() {
			if !yield(i, b.At(i)) {
				return
			}
		}
	}
}
