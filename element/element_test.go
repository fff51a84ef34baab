/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package element

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/elx/apis"
)

type box struct {
	V    int
	Next *box
}

var boxType = reflect.TypeOf(box{})

// field is an accessor over one int or *box field of *box targets.
type field struct {
	name     string
	readOnly bool
	fail     error
}

func (f field) Accepts(target any) bool {
	_, ok := target.(*box)
	return ok
}

func (f field) CanRead(any) bool { return true }

func (f field) CanWrite(target any) bool {
	if f.readOnly {
		return false
	}
	b, ok := target.(*box)
	return target == nil || (ok && b != nil)
}

func (f field) Read(target any) (any, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return reflect.ValueOf(target).Elem().FieldByName(f.name).Interface(), nil
}

func (f field) Write(target any, value any) error {
	if f.fail != nil {
		return f.fail
	}
	reflect.ValueOf(target).Elem().FieldByName(f.name).Set(reflect.ValueOf(value))
	return nil
}

func newField(name string) *Generic {
	sf, _ := boxType.FieldByName(name)
	return New(Spec{Name: name, DeclaringType: boxType, Type: sf.Type, Accessor: field{name: name}})
}

func TestGeneric_DescribesStructureOnly(t *testing.T) {
	g := newField("V")

	assert.Equal(t, "V", g.Name())
	assert.Equal(t, boxType, g.DeclaringType())
	assert.Equal(t, reflect.TypeOf(0), g.Type())
	assert.False(t, g.Specific())
	assert.Nil(t, g.Target())
	assert.True(t, g.Readable())
	assert.True(t, g.Writable())

	_, err := g.Get()
	assert.ErrorIs(t, err, ErrNonSpecific)
	assert.False(t, errors.Is(err, ErrHandling))

	err = g.Set(1)
	assert.ErrorIs(t, err, ErrNonSpecific)
}

func TestBound_GetSet(t *testing.T) {
	b := &box{V: 1}
	el := newField("V").Bind(b)

	require.True(t, el.Specific())
	assert.Same(t, b, el.Target())

	v, err := el.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, el.Set(7))
	assert.Equal(t, 7, b.V)
}

func TestBound_BindLeavesReceiverUntouched(t *testing.T) {
	a, b := &box{V: 1}, &box{V: 2}
	ea := newField("V").Bind(a)
	eb := ea.Bind(b)

	assert.Same(t, a, ea.Target())
	assert.Same(t, b, eb.Target())
}

func get(b *Bound) error {
	_, err := b.Get()
	return err
}

func set(b *Bound) error { return b.Set(1) }

func TestBound_Errors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		el   *Bound
		op   func(*Bound) error
		kind error
	}{
		{
			name: "illegal target",
			el:   Bind(Spec{Name: "V", Accessor: field{name: "V"}}, "not a box"),
			op:   get,
			kind: ErrIllegalTarget,
		},
		{
			name: "unwritable",
			el:   Bind(Spec{Name: "V", Accessor: field{name: "V", readOnly: true}}, &box{}),
			op:   set,
			kind: ErrUnwritable,
		},
		{
			name: "read failure",
			el:   Bind(Spec{Name: "V", Accessor: field{name: "V", fail: cause}}, &box{}),
			op:   get,
			kind: cause,
		},
		{
			name: "write failure",
			el:   Bind(Spec{Name: "V", Accessor: field{name: "V", fail: cause}}, &box{}),
			op:   set,
			kind: cause,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op(tt.el)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, ErrHandling)

			var ae *AccessError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, "V", ae.Element)
		})
	}
}

func TestHandling_KeepsAccessErrors(t *testing.T) {
	assert.NoError(t, Handling("x", OpGet, nil))

	orig := Unreadable("x")
	assert.Same(t, orig, Handling("y", OpSet, orig))
}

func TestAccessError_Message(t *testing.T) {
	err := &AccessError{Element: "age", Op: OpSet, Kind: ErrTypeMismatch, Err: errors.New("string into int")}
	assert.Equal(t,
		`set "age": elx(element): value does not match element type: string into int`,
		err.Error())
}

func TestNested_GetSetWalksLiveGraph(t *testing.T) {
	root := &box{Next: &box{V: 3}}
	n := NewNested("Next.V", root, []apis.Element{newField("Next").Bind(root), newField("V")})

	assert.Equal(t, "Next.V", n.Name())
	assert.Equal(t, reflect.TypeOf(0), n.Type())
	assert.Equal(t, boxType, n.DeclaringType())
	assert.True(t, n.Specific())
	assert.Same(t, root, n.Target())
	assert.Len(t, n.Hops(), 2)

	v, err := n.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	require.NoError(t, n.Set(9))
	assert.Equal(t, 9, root.Next.V)

	// The path follows the current graph, not the one seen at resolution.
	root.Next = &box{V: 5}
	v, err = n.Get()
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestNested_NilIntermediate(t *testing.T) {
	root := &box{}
	n := NewNested("Next.V", root, []apis.Element{newField("Next"), newField("V")})

	_, err := n.Get()
	assert.ErrorIs(t, err, ErrNilPath)
	assert.ErrorIs(t, err, ErrHandling)

	err = n.Set(1)
	assert.ErrorIs(t, err, ErrNilPath)
}

func TestNested_GenericAndRebind(t *testing.T) {
	n := NewNested("Next.V", boxType, []apis.Element{newField("Next"), newField("V")})
	assert.False(t, n.Specific())
	assert.Nil(t, n.Target())

	_, err := n.Get()
	assert.ErrorIs(t, err, ErrNonSpecific)

	root := &box{Next: &box{V: 4}}
	v, err := n.Bind(root).Get()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestNested_PanicsWithoutHops(t *testing.T) {
	assert.Panics(t, func() { NewNested("x", nil, nil) })
}

func TestNested_Writable(t *testing.T) {
	ro := New(Spec{Name: "V", DeclaringType: boxType, Type: reflect.TypeOf(0), Accessor: field{name: "V", readOnly: true}})
	root := &box{Next: &box{}}

	assert.True(t, NewNested("Next.V", root, []apis.Element{newField("Next").Bind(root), newField("V")}).Writable())
	assert.False(t, NewNested("Next.V", root, []apis.Element{newField("Next").Bind(root), ro}).Writable())
}

func TestEqual(t *testing.T) {
	a, b := &box{}, &box{}
	v := newField("V")

	assert.True(t, Equal(v, newField("V")))
	assert.False(t, Equal(v, newField("Next")))
	assert.False(t, Equal(v, v.Bind(a)))
	assert.True(t, Equal(v.Bind(a), newField("V").Bind(a)))
	assert.False(t, Equal(v.Bind(a), v.Bind(b)))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(v, nil))
}

func TestSameTarget(t *testing.T) {
	s := []int{1, 2, 3}
	m := map[string]int{}

	assert.True(t, SameTarget(s, s))
	assert.False(t, SameTarget(s, s[:2]))
	assert.False(t, SameTarget(s, []int{1, 2, 3}))
	assert.True(t, SameTarget(m, m))
	assert.True(t, SameTarget(box{V: 1}, box{V: 1}))
	assert.False(t, SameTarget(box{V: 1}, box{V: 2}))
	assert.False(t, SameTarget(1, int64(1)))
	assert.True(t, SameTarget(struct{ S []int }{s}, struct{ S []int }{[]int{1, 2, 3}}))
}
