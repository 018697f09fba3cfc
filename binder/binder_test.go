package binder

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/hostlink/dispatch/config"
	"github.com/hostlink/dispatch/errors"
	"github.com/hostlink/dispatch/overload"
	"github.com/hostlink/dispatch/types"
)

func staticCand(params ...*types.Type) *overload.Candidate {
	c := &overload.Candidate{IsStatic: true, Return: types.Void}
	for _, p := range params {
		c.Params = append(c.Params, overload.Param{Type: p})
	}
	return c
}

func newTestBinder(set *overload.Set, reg *types.Registry, rt *fakeRuntime) *Binder {
	return New(set, reg, rt, config.Default())
}

func TestBind_SingleCandidateExact(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("f", "T")
	c := staticCand(types.Int64, types.String)
	set.Add(c)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 3), fv(aliasStr, "a")), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Candidate() != c {
		t.Error("wrong candidate selected")
	}
	if got := bnd.Args(); got[0] != int64(3) || got[1] != "a" {
		t.Errorf("args = %v", got)
	}
	if bnd.Instance() != nil {
		t.Error("static call must have nil instance")
	}
	if bnd.Outs() != 0 {
		t.Errorf("outs = %d", bnd.Outs())
	}
}

func TestBind_SpecificBeatsCatchAll(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("f", "T")
	objectOverload := staticCand(types.Object)
	intOverload := staticCand(types.Int64)
	set.Add(objectOverload) // registered first, still loses
	set.Add(intOverload)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 5)), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Candidate() != intOverload {
		t.Error("specifically-typed overload must win over catch-all")
	}
	if bnd.Args()[0] != int64(5) {
		t.Errorf("args = %v", bnd.Args())
	}
}

func TestBind_DefaultsFill(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("g", "T")
	c := &overload.Candidate{
		IsStatic: true,
		Return:   types.Void,
		Params: []overload.Param{
			{Type: types.Int64},
			{Type: types.Int64, HasDefault: true, Default: int64(7)},
		},
	}
	set.Add(c)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 3)), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if got := bnd.Args(); got[0] != int64(3) || got[1] != int64(7) {
		t.Errorf("args = %v, want [3 7]", got)
	}
}

func TestBind_VariadicTailPacks(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("h", "T")
	c := &overload.Candidate{
		IsStatic: true,
		Return:   types.Void,
		Params: []overload.Param{
			{Type: types.ArrayOf(types.Int64), IsVariadic: true},
		},
	}
	set.Add(c)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 1), fv(aliasInt, 2), fv(aliasInt, 3)), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	got, ok := bnd.Args()[0].([]int64)
	if !ok {
		t.Fatalf("tail = %T, want []int64", bnd.Args()[0])
	}
	if !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Errorf("tail = %v, call-site order not preserved", got)
	}

	// The slice handle is a fresh reference and must be released.
	if len(rt.released) != 1 || rt.released[0] != rt.lastSlice {
		t.Error("tail slice handle was not released")
	}
}

type money struct {
	cents int64
}

func TestBind_ImplicitConversionDeferred(t *testing.T) {
	reg, rt := newTestEnv()
	moneyType := types.StructOf("Money", reflect.TypeOf(money{}))
	reg.RegisterImplicit(types.Int64, moneyType, func(v any) (any, error) {
		return money{cents: v.(int64)}, nil
	})

	set := overload.NewSet("m", "T")
	moneyOverload := staticCand(moneyType) // sorts before the catch-all
	objectOverload := staticCand(types.Object)
	set.Add(moneyOverload)
	set.Add(objectOverload)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 5)), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Candidate() != objectOverload {
		t.Error("non-converting overload must win over the implicit-conversion one")
	}
}

func TestBind_ImplicitConversionUsedWhenOnlyMatch(t *testing.T) {
	reg, rt := newTestEnv()
	moneyType := types.StructOf("Money", reflect.TypeOf(money{}))
	reg.RegisterImplicit(types.Int64, moneyType, func(v any) (any, error) {
		return money{cents: v.(int64)}, nil
	})

	set := overload.NewSet("m", "T")
	moneyOverload := staticCand(moneyType)
	stringOverload := staticCand(types.String)
	set.Add(moneyOverload)
	set.Add(stringOverload)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 5)), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Candidate() != moneyOverload {
		t.Error("implicit-conversion binding must be returned when nothing else matches")
	}
	if got := bnd.Args()[0].(money); got.cents != 5 {
		t.Errorf("converted arg = %v", got)
	}
}

func TestBind_DecimalAcceptsNumeric(t *testing.T) {
	reg, rt := newTestEnv()
	decimal := types.DecimalOf("decimal", reflect.TypeOf(float64(0)))

	set := overload.NewSet("d", "T")
	stringOverload := staticCand(types.String)
	decimalOverload := staticCand(decimal)
	set.Add(stringOverload)
	set.Add(decimalOverload)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 5)), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Candidate() != decimalOverload {
		t.Error("decimal formal must accept a numeric value")
	}
	if bnd.Args()[0] != float64(5) {
		t.Errorf("args = %v", bnd.Args())
	}
}

func TestBind_NullableKindMatches(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("n", "T")
	nullable := staticCand(types.NullableOf(types.Int64))
	other := staticCand(types.String)
	set.Add(nullable)
	set.Add(other)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 9)), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Candidate() != nullable {
		t.Error("nullable wrapping must not defeat primitive kind matching")
	}
}

func TestBind_InvalidTargetIsFatal(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("inc", "T")
	first := &overload.Candidate{Return: types.Void, Params: []overload.Param{{Type: types.Int64}}}
	second := &overload.Candidate{Return: types.Void, Params: []overload.Param{{Type: types.Object}}}
	set.Add(first)
	set.Add(second)

	b := newTestBinder(set, reg, rt)
	unknown := fv("py:obj", nil) // never registered as an instance
	_, err := b.Bind(unknown, fargs(fv(aliasInt, 1)), nil, nil, nil)
	if err == nil {
		t.Fatal("expected invalid-target error")
	}

	var de *errors.Error
	if !stderrors.As(err, &de) || de.Kind != errors.KindInvalidTarget {
		t.Fatalf("err = %v, want invalid_target", err)
	}
	if stderrors.Is(err, errors.NoMatch("inc", 1)) {
		t.Error("invalid_target must be distinct from no_match")
	}
}

func TestBind_InstanceResolves(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("inc", "T")
	c := &overload.Candidate{Return: types.Void, Params: []overload.Param{{Type: types.Int64}}}
	set.Add(c)

	inst := fv("py:obj", nil)
	native := &money{cents: 1}
	rt.instances[inst] = native

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(inst, fargs(fv(aliasInt, 1)), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Instance() != native {
		t.Error("resolved instance not carried in binding")
	}
}

func TestBind_NoMatchNamesMethodAndClearsState(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("f", "T")
	set.Add(staticCand(types.Int64))
	set.Add(staticCand(types.Float64))

	b := newTestBinder(set, reg, rt)
	_, err := b.Bind(nil, fargs(fv(aliasBool, true)), nil, nil, nil)
	if err == nil {
		t.Fatal("expected no-match")
	}

	var de *errors.Error
	if !stderrors.As(err, &de) || de.Kind != errors.KindNoMatch {
		t.Fatalf("err = %v, want no_match", err)
	}
	if de.Method != "f" {
		t.Errorf("Method = %q, want the attempted call target", de.Method)
	}
	if rt.cleared != 2 {
		t.Errorf("ClearPending calls = %d, want one per failed candidate", rt.cleared)
	}
}

func TestBind_ExplicitSignatureRestrictsScan(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("f", "T")
	intOverload := staticCand(types.Int64)
	objectOverload := staticCand(types.Object)
	set.Add(intOverload)
	set.Add(objectOverload)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 5)), nil, objectOverload, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Candidate() != objectOverload {
		t.Error("explicit signature must bypass precedence order")
	}
}

func TestBind_GenericFallback(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("make", "T")
	raw := &overload.Candidate{
		IsStatic:  true,
		IsGeneric: true,
		Return:    types.Void,
		Params:    []overload.Param{{Type: types.StructOf("T", nil)}},
	}
	set.Add(raw)

	closed := staticCand(types.Int64)
	pool := []*overload.Candidate{raw, closed}

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 5)), nil, nil, pool)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Candidate() != closed {
		t.Error("generic fallback must bind the inferred closed instantiation")
	}
	if bnd.Args()[0] != int64(5) {
		t.Errorf("args = %v", bnd.Args())
	}
}

func TestBind_KeywordsIgnored(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("f", "T")
	set.Add(staticCand(types.Int64))

	b := newTestBinder(set, reg, rt)
	kw := fv("py:dict", map[string]any{"x": 1})
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 5)), kw, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Args()[0] != int64(5) {
		t.Error("keyword mapping must not affect positional matching")
	}
}

func TestBind_OutParamsCounted(t *testing.T) {
	reg, rt := newTestEnv()
	set := overload.NewSet("f", "T")
	c := &overload.Candidate{
		IsStatic: true,
		Return:   types.Void,
		Params: []overload.Param{
			{Type: types.Int64},
			{Type: types.String, IsOut: true},
			{Type: types.Int64, IsByRef: true},
		},
	}
	set.Add(c)

	b := newTestBinder(set, reg, rt)
	bnd, err := b.Bind(nil, fargs(fv(aliasInt, 1), fv(aliasStr, ""), fv(aliasInt, 2)), nil, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if bnd.Outs() != 2 {
		t.Errorf("outs = %d, want 2", bnd.Outs())
	}
}
