package viewrt

// Signed is the set of types stored in the integer slot.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInteger is the set of types stored in the unsigned slot.
type UnsignedInteger interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Floating is the set of types stored in the float slot.
type Floating interface {
	~float32 | ~float64
}

// Integer views a signed integer value.
type Integer[T Signed] struct{ prop Property }

func (Integer[T]) Bind(p Property) Integer[T] { return Integer[T]{prop: p} }
func (v Integer[T]) Handle() Property         { return v.prop }
func (v Integer[T]) Value() T                 { return T(v.prop.IntValue()) }
func (v Integer[T]) SetValue(x T)             { v.prop.SetIntValue(int64(x)) }

// Unsigned views an unsigned integer value.
type Unsigned[T UnsignedInteger] struct{ prop Property }

func (Unsigned[T]) Bind(p Property) Unsigned[T] { return Unsigned[T]{prop: p} }
func (v Unsigned[T]) Handle() Property          { return v.prop }
func (v Unsigned[T]) Value() T                  { return T(v.prop.UintValue()) }
func (v Unsigned[T]) SetValue(x T)              { v.prop.SetUintValue(uint64(x)) }

// Float views a floating point value.
type Float[T Floating] struct{ prop Property }

func (Float[T]) Bind(p Property) Float[T] { return Float[T]{prop: p} }
func (v Float[T]) Handle() Property       { return v.prop }
func (v Float[T]) Value() T               { return T(v.prop.FloatValue()) }
func (v Float[T]) SetValue(x T)           { v.prop.SetFloatValue(float64(x)) }

// Bool views a boolean value.
type Bool[T ~bool] struct{ prop Property }

func (Bool[T]) Bind(p Property) Bool[T] { return Bool[T]{prop: p} }
func (v Bool[T]) Handle() Property      { return v.prop }
func (v Bool[T]) Value() T              { return T(v.prop.BoolValue()) }
func (v Bool[T]) SetValue(x T)          { v.prop.SetBoolValue(bool(x)) }

// Text views a string value.
type Text[T ~string] struct{ prop Property }

func (Text[T]) Bind(p Property) Text[T] { return Text[T]{prop: p} }
func (v Text[T]) Handle() Property      { return v.prop }
func (v Text[T]) Value() T              { return T(v.prop.StringValue()) }
func (v Text[T]) SetValue(x T)          { v.prop.SetStringValue(string(x)) }

// Value views a structured builtin value held whole by the store.
// Reading a property that holds another type yields the zero T.
type Value[T any] struct{ prop Property }

func (Value[T]) Bind(p Property) Value[T] { return Value[T]{prop: p} }
func (v Value[T]) Handle() Property       { return v.prop }

func (v Value[T]) Value() T {
	x, _ := v.prop.Value().(T)
	return x
}

func (v Value[T]) SetValue(x T) { v.prop.SetValue(x) }
