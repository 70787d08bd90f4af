package viewrt

// ObjectReference views a handle to a host object of type T.
type ObjectReference[T any] struct{ prop Property }

func (ObjectReference[T]) Bind(p Property) ObjectReference[T] { return ObjectReference[T]{prop: p} }
func (v ObjectReference[T]) Handle() Property                 { return v.prop }

// Value returns the referenced object, or the zero T when the slot is empty
// or holds an object of another type.
func (v ObjectReference[T]) Value() T {
	x, _ := v.prop.ObjectReference().(T)
	return x
}

func (v ObjectReference[T]) SetValue(x T) { v.prop.SetObjectReference(x) }

// ManagedReference views a polymorphic slot declared as T. The stored value
// is returned as T and never narrowed to its concrete type.
type ManagedReference[T any] struct{ prop Property }

func (ManagedReference[T]) Bind(p Property) ManagedReference[T] {
	return ManagedReference[T]{prop: p}
}

func (v ManagedReference[T]) Handle() Property { return v.prop }

func (v ManagedReference[T]) Value() T {
	x, _ := v.prop.ManagedReference().(T)
	return x
}

func (v ManagedReference[T]) SetValue(x T) { v.prop.SetManagedReference(x) }

// Unsupported is bound to fields no view kind can represent. It exposes
// only the raw property.
type Unsupported struct{ prop Property }

func (Unsupported) Bind(p Property) Unsupported { return Unsupported{prop: p} }
func (v Unsupported) Handle() Property          { return v.prop }
