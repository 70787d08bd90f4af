package viewrt

// Property is a handle to one addressable value in a persisted-value store.
//
// Scalar accessors read or write the value in the representation named by
// the method. Array methods apply to resizable sequences, FixedBuffer
// methods to inline buffers. Behaviour on a kind mismatch is defined by the
// store.
type Property interface {
	// Path is the store-specific address of the value, for messages.
	Path() string
	// FindRelative returns the child property called name.
	FindRelative(name string) Property

	IntValue() int64
	SetIntValue(v int64)
	UintValue() uint64
	SetUintValue(v uint64)
	FloatValue() float64
	SetFloatValue(v float64)
	BoolValue() bool
	SetBoolValue(v bool)
	StringValue() string
	SetStringValue(v string)

	// Value holds structured builtin values such as Vector3 or time.Time.
	Value() any
	SetValue(v any)

	// ObjectReference holds a handle to a host object.
	ObjectReference() any
	SetObjectReference(v any)

	// ManagedReference holds an opaque polymorphic value.
	ManagedReference() any
	SetManagedReference(v any)

	ArraySize() int
	SetArraySize(n int)
	ArrayElementAt(i int) Property
	InsertArrayElementAt(i int)
	DeleteArrayElementAt(i int)
	ClearArray()
	// MoveArrayElement moves element src to index dst, shifting the
	// elements between. It reports false when either index is out of range.
	MoveArrayElement(src, dst int) bool

	FixedBufferSize() int
	FixedBufferElementAt(i int) Property
}

// Document is a host object's top-level property container.
type Document interface {
	FindProperty(name string) Property
}

// View is the constraint satisfied by every view type. V is the view type
// itself, so generic views can construct element views from a zero value:
//
//	var zero V
//	elem := zero.Bind(p)
type View[V any] interface {
	// Bind returns a view over p. The receiver is not modified.
	Bind(p Property) V
	// Handle returns the bound property, nil for an unbound view.
	Handle() Property
}

// Object marks host-object types. Embed it in a struct to make the struct a
// host object: fields of that type are stored as object references, and a
// root view of it binds a Document.
type Object struct{}
