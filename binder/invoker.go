package binder

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hostlink/dispatch/errors"
	"github.com/hostlink/dispatch/foreign"
	"github.com/hostlink/dispatch/overload"
	"github.com/hostlink/dispatch/types"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Invoker executes resolved bindings against native code and packages
// return and output values back into foreign representation.
type Invoker struct {
	binder *Binder
}

// NewInvoker creates an invoker over a binder.
func NewInvoker(b *Binder) *Invoker {
	return &Invoker{binder: b}
}

// Invoke binds the call site, executes the native call and converts its
// outputs. The foreign execution lock is released for the duration of the
// native call when the binder is configured to do so, and reacquired on
// every exit path before any further foreign-runtime interaction.
func (iv *Invoker) Invoke(instance, args, kw foreign.Handle, explicit *overload.Candidate, genericPool []*overload.Candidate) (foreign.Handle, error) {
	rt := iv.binder.rt

	bnd, err := iv.binder.Bind(instance, args, kw, explicit, genericPool)
	if err != nil {
		rt.Raise(kindOf(err), err.Error())
		return nil, err
	}

	if iv.binder.opts.TraceCalls {
		Logger().Debug("invoke",
			zap.String("session", uuid.NewString()),
			zap.String("method", iv.binder.set.Name()),
			zap.Int("args", len(bnd.Args())),
			zap.Int("outs", bnd.Outs()))
	}

	in, backfill, err := iv.prepare(bnd)
	if err != nil {
		rt.Raise(kindOf(err), err.Error())
		return nil, err
	}

	results, callErr := iv.callNative(bnd.candidate.Fn, in)
	if callErr != nil {
		// Unwrap one level of wrapping before surfacing.
		if inner := stderrors.Unwrap(callErr); inner != nil {
			callErr = inner
		}
		ferr := errors.NativeFailure(iv.binder.set.Name(), callErr)
		rt.Raise(errors.KindNativeFailure, ferr.Error())
		return nil, ferr
	}

	out, err := iv.packageOutputs(bnd, results, backfill)
	if err != nil {
		rt.Raise(kindOf(err), err.Error())
		return nil, err
	}
	return out, nil
}

// prepare materializes the converted native arguments as reflect values
// matching the candidate's function signature. Output/by-reference
// parameters become pointers whose final pointees are read back after the
// call; backfill maps parameter index to that pointer.
func (iv *Invoker) prepare(bnd *Binding) (in []reflect.Value, backfill map[int]reflect.Value, err error) {
	c := bnd.candidate
	fnType := c.Fn.Type()

	offset := 0
	if !c.IsStatic {
		in = append(in, reflect.ValueOf(bnd.instance))
		offset = 1
	}

	backfill = make(map[int]reflect.Value)
	for i := range c.Params {
		p := &c.Params[i]
		pos := offset + i
		if pos >= fnType.NumIn() {
			return nil, nil, errors.InvalidInput(errors.PhaseInvoke,
				fmt.Sprintf("candidate function takes %d parameters, signature declares %d", fnType.NumIn(), len(c.Params)))
		}
		inType := fnType.In(pos)

		if p.IsOut || p.IsByRef {
			if inType.Kind() != reflect.Ptr {
				return nil, nil, errors.InvalidInput(errors.PhaseInvoke,
					fmt.Sprintf("parameter %d is out/byref but function takes %s", i, inType))
			}
			ptr := reflect.New(inType.Elem())
			if p.IsByRef && bnd.args[i] != nil {
				v, cerr := coerce(reflect.ValueOf(bnd.args[i]), inType.Elem())
				if cerr != nil {
					return nil, nil, cerr
				}
				ptr.Elem().Set(v)
			}
			in = append(in, ptr)
			backfill[i] = ptr
			continue
		}

		if bnd.args[i] == nil {
			in = append(in, reflect.Zero(inType))
			continue
		}
		v, cerr := coerce(reflect.ValueOf(bnd.args[i]), inType)
		if cerr != nil {
			return nil, nil, cerr
		}
		in = append(in, v)
	}
	return in, backfill, nil
}

// coerce adapts a converted native value to the exact function parameter
// type. The conversion subsystem already produced a compatible value;
// this only bridges assignable/convertible representations.
func coerce(v reflect.Value, want reflect.Type) (reflect.Value, error) {
	t := v.Type()
	switch {
	case t == want, t.AssignableTo(want):
		return v, nil
	case t.ConvertibleTo(want):
		return v.Convert(want), nil
	default:
		return reflect.Value{}, errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
			NativeType(want.String()).
			Detail("converted value has type %s", t).
			Build()
	}
}

// callNative runs the native call outside the foreign execution lock when
// configured. The lock is reacquired before this function returns on every
// path, including a native panic.
func (iv *Invoker) callNative(fn reflect.Value, in []reflect.Value) (out []reflect.Value, err error) {
	rt := iv.binder.rt
	if iv.binder.opts.ReleaseLockEnabled() {
		tok := rt.BeginUnlocked()
		defer rt.EndUnlocked(tok)
	}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	out = fn.Call(in)

	// A trailing error result is the native failure channel.
	if n := len(out); n > 0 && fn.Type().Out(n-1) == errorType {
		if e, _ := out[n-1].Interface().(error); e != nil {
			return nil, e
		}
		out = out[:n-1]
	}
	return out, nil
}

// packageOutputs shapes the native results into a single foreign value:
//
//	no outs              -> the converted return value
//	one out, void return -> that output value directly
//	otherwise            -> tuple of return value then outputs in
//	                        declaration order
func (iv *Invoker) packageOutputs(bnd *Binding, results []reflect.Value, backfill map[int]reflect.Value) (foreign.Handle, error) {
	rt := iv.binder.rt
	c := bnd.candidate

	retType := c.Return
	if retType == nil {
		retType = types.Void
	}
	var retNative any
	if retType.Kind != types.KindVoid && len(results) > 0 {
		retNative = results[0].Interface()
	}

	if bnd.outs == 0 {
		return rt.ToForeign(retNative, retType)
	}

	var outParams []int
	for i := range c.Params {
		if c.Params[i].IsOut || c.Params[i].IsByRef {
			outParams = append(outParams, i)
		}
	}

	if bnd.outs == 1 && retType.Kind == types.KindVoid {
		i := outParams[0]
		return rt.ToForeign(backfill[i].Elem().Interface(), c.Params[i].Type)
	}

	items := make([]foreign.Handle, 0, 1+len(outParams))
	first, err := rt.ToForeign(retNative, retType)
	if err != nil {
		return nil, err
	}
	items = append(items, first)
	for _, i := range outParams {
		h, err := rt.ToForeign(backfill[i].Elem().Interface(), c.Params[i].Type)
		if err != nil {
			for _, it := range items {
				rt.Release(it)
			}
			return nil, err
		}
		items = append(items, h)
	}
	return rt.NewTuple(items...)
}

func kindOf(err error) errors.Kind {
	var de *errors.Error
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return errors.KindNativeFailure
}
