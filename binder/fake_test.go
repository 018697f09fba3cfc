package binder

import (
	"fmt"
	"reflect"

	"github.com/hostlink/dispatch/errors"
	"github.com/hostlink/dispatch/foreign"
	"github.com/hostlink/dispatch/types"
)

// Foreign type aliases registered by newTestEnv.
const (
	aliasInt   = "py:int"
	aliasFloat = "py:float"
	aliasStr   = "py:str"
	aliasBool  = "py:bool"
)

// fobj is a fake foreign value: a dynamic type alias plus a Go payload.
type fobj struct {
	alias string
	v     any
}

// fseq is a fake foreign argument tuple.
type fseq struct {
	items []*fobj
}

func fv(alias string, v any) *fobj { return &fobj{alias: alias, v: v} }

func fargs(items ...*fobj) *fseq { return &fseq{items: items} }

type raised struct {
	kind errors.Kind
	msg  string
}

// fakeRuntime implements foreign.Runtime over plain Go values and records
// every lifecycle interaction for assertions.
type fakeRuntime struct {
	reg       *types.Registry
	instances map[*fobj]any
	released  []foreign.Handle
	raised    []raised
	lockLog   []string
	tuples    [][]foreign.Handle
	lastSlice *fseq
	cleared   int
}

func newTestEnv() (*types.Registry, *fakeRuntime) {
	reg := types.NewRegistry()
	for alias, t := range map[string]*types.Type{
		aliasInt:   types.Int64,
		aliasFloat: types.Float64,
		aliasStr:   types.String,
		aliasBool:  types.Bool,
	} {
		if err := reg.RegisterAlias(alias, t); err != nil {
			panic(err)
		}
	}
	return reg, &fakeRuntime{reg: reg, instances: make(map[*fobj]any)}
}

func classCompatible(k reflect.Kind, target types.Kind) bool {
	switch {
	case k >= reflect.Int && k <= reflect.Float64:
		return target.IsNumeric()
	case k == reflect.String:
		return target == types.KindString
	case k == reflect.Bool:
		return target == types.KindBool
	default:
		return false
	}
}

func (rt *fakeRuntime) ToNative(h foreign.Handle, target *types.Type, allowImplicit bool) (any, error) {
	switch target.Kind {
	case types.KindObject:
		if o, ok := h.(*fobj); ok {
			return o.v, nil
		}
		return h, nil
	case types.KindHandle:
		return h, nil
	case types.KindArray:
		seq, ok := h.(*fseq)
		if !ok {
			return nil, fmt.Errorf("not a sequence: %T", h)
		}
		out := reflect.MakeSlice(target.GoType, len(seq.items), len(seq.items))
		for i, it := range seq.items {
			ev, err := rt.ToNative(it, target.Elem, allowImplicit)
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(reflect.ValueOf(ev))
		}
		return out.Interface(), nil
	}

	o, ok := h.(*fobj)
	if !ok {
		return nil, fmt.Errorf("not a value: %T", h)
	}
	rv := reflect.ValueOf(o.v)
	if target.GoType == nil || !classCompatible(rv.Kind(), target.Kind) {
		return nil, fmt.Errorf("cannot convert %s to %s", o.alias, target.Name)
	}
	return rv.Convert(target.GoType).Interface(), nil
}

func (rt *fakeRuntime) ToForeign(v any, declared *types.Type) (foreign.Handle, error) {
	return fv("native:"+declared.Name, v), nil
}

func (rt *fakeRuntime) TypeOf(h foreign.Handle) foreign.Handle {
	if o, ok := h.(*fobj); ok {
		return o.alias
	}
	return "py:tuple"
}

func (rt *fakeRuntime) Len(seq foreign.Handle) int {
	return len(seq.(*fseq).items)
}

func (rt *fakeRuntime) Item(seq foreign.Handle, i int) foreign.Handle {
	return seq.(*fseq).items[i]
}

func (rt *fakeRuntime) Slice(seq foreign.Handle, i int) foreign.Handle {
	s := &fseq{items: seq.(*fseq).items[i:]}
	rt.lastSlice = s
	return s
}

func (rt *fakeRuntime) NewTuple(items ...foreign.Handle) (foreign.Handle, error) {
	rt.tuples = append(rt.tuples, items)
	return fv("native:tuple", items), nil
}

func (rt *fakeRuntime) ResolveInstance(h foreign.Handle) (any, bool) {
	o, ok := h.(*fobj)
	if !ok {
		return nil, false
	}
	v, ok := rt.instances[o]
	return v, ok
}

func (rt *fakeRuntime) Raise(kind errors.Kind, msg string) {
	rt.raised = append(rt.raised, raised{kind: kind, msg: msg})
}

func (rt *fakeRuntime) ClearPending() {
	rt.cleared++
}

func (rt *fakeRuntime) Release(h foreign.Handle) {
	rt.released = append(rt.released, h)
}

func (rt *fakeRuntime) BeginUnlocked() foreign.UnlockToken {
	rt.lockLog = append(rt.lockLog, "begin")
	return "tok"
}

func (rt *fakeRuntime) EndUnlocked(tok foreign.UnlockToken) {
	rt.lockLog = append(rt.lockLog, "end")
}
