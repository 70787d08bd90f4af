// Package memstore is an in-memory persisted-value store implementing the
// viewrt interfaces. Properties are created on first lookup, so any path
// can be read; unset values read as zero.
//
// Inserted array elements start as zero values. Fixed buffers have length
// zero until InitFixedBuffer is called on the property.
package memstore

import (
	"fmt"
	"slices"
	"strconv"

	"view-generator/viewrt"
)

// Store is the root of a property tree. It implements viewrt.Document.
type Store struct {
	root *Prop
}

var _ viewrt.Document = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{root: &Prop{}}
}

// FindProperty returns the top-level property called name.
func (s *Store) FindProperty(name string) viewrt.Property {
	return s.root.child(name)
}

// Prop is a node of the property tree. The zero value is usable as a
// detached root.
type Prop struct {
	parent *Prop
	name   string

	i   int64
	u   uint64
	f   float64
	b   bool
	s   string
	v   any
	obj any
	ref any

	children map[string]*Prop
	elems    []*Prop
	fixed    []*Prop
}

var _ viewrt.Property = (*Prop)(nil)

// Path returns a dotted path; array elements are written name[i].
func (p *Prop) Path() string {
	if p.parent == nil {
		return p.name
	}

	if idx := slices.Index(p.parent.elems, p); idx >= 0 {
		return p.parent.Path() + "[" + strconv.Itoa(idx) + "]"
	}

	if idx := slices.Index(p.parent.fixed, p); idx >= 0 {
		return p.parent.Path() + "[" + strconv.Itoa(idx) + "]"
	}

	if p.parent.Path() == "" {
		return p.name
	}

	return p.parent.Path() + "." + p.name
}

func (p *Prop) FindRelative(name string) viewrt.Property {
	return p.child(name)
}

func (p *Prop) child(name string) *Prop {
	if c, ok := p.children[name]; ok {
		return c
	}

	if p.children == nil {
		p.children = make(map[string]*Prop)
	}

	c := &Prop{parent: p, name: name}
	p.children[name] = c

	return c
}

func (p *Prop) IntValue() int64          { return p.i }
func (p *Prop) SetIntValue(v int64)      { p.i = v }
func (p *Prop) UintValue() uint64        { return p.u }
func (p *Prop) SetUintValue(v uint64)    { p.u = v }
func (p *Prop) FloatValue() float64      { return p.f }
func (p *Prop) SetFloatValue(v float64)  { p.f = v }
func (p *Prop) BoolValue() bool          { return p.b }
func (p *Prop) SetBoolValue(v bool)      { p.b = v }
func (p *Prop) StringValue() string      { return p.s }
func (p *Prop) SetStringValue(v string)  { p.s = v }
func (p *Prop) Value() any               { return p.v }
func (p *Prop) SetValue(v any)           { p.v = v }
func (p *Prop) ObjectReference() any     { return p.obj }
func (p *Prop) SetObjectReference(v any) { p.obj = v }
func (p *Prop) ManagedReference() any    { return p.ref }

func (p *Prop) SetManagedReference(v any) { p.ref = v }

func (p *Prop) ArraySize() int { return len(p.elems) }

// SetArraySize grows with zero elements or truncates.
func (p *Prop) SetArraySize(n int) {
	if n < 0 {
		panic(fmt.Sprintf("memstore: negative array size %d at %s", n, p.Path()))
	}

	for len(p.elems) < n {
		p.elems = append(p.elems, &Prop{parent: p})
	}

	p.elems = p.elems[:n]
}

func (p *Prop) ArrayElementAt(i int) viewrt.Property {
	p.checkIndex(i, len(p.elems))
	return p.elems[i]
}

// InsertArrayElementAt inserts a zero element before i; i may equal the size.
func (p *Prop) InsertArrayElementAt(i int) {
	p.checkIndex(i, len(p.elems)+1)
	p.elems = slices.Insert(p.elems, i, &Prop{parent: p})
}

func (p *Prop) DeleteArrayElementAt(i int) {
	p.checkIndex(i, len(p.elems))
	p.elems = slices.Delete(p.elems, i, i+1)
}

func (p *Prop) ClearArray() { p.elems = nil }

func (p *Prop) MoveArrayElement(src, dst int) bool {
	n := len(p.elems)
	if src < 0 || src >= n || dst < 0 || dst >= n {
		return false
	}

	e := p.elems[src]
	p.elems = slices.Delete(p.elems, src, src+1)
	p.elems = slices.Insert(p.elems, dst, e)

	return true
}

func (p *Prop) FixedBufferSize() int { return len(p.fixed) }

func (p *Prop) FixedBufferElementAt(i int) viewrt.Property {
	p.checkIndex(i, len(p.fixed))
	return p.fixed[i]
}

// InitFixedBuffer gives the property an inline buffer of n zero elements.
// Existing elements within the new length are kept.
func (p *Prop) InitFixedBuffer(n int) {
	for len(p.fixed) < n {
		p.fixed = append(p.fixed, &Prop{parent: p})
	}

	p.fixed = p.fixed[:n]
}

func (p *Prop) checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("memstore: index %d out of range [0:%d) at %s", i, n, p.Path()))
	}
}
