package autodiff_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/graph"
	"github.com/born-ml/gradgraph/internal/trace"
)

// input records value or fails the test.
func input(t *testing.T, g *autodiff.Graph, value float64) autodiff.Handle {
	t.Helper()
	h, err := g.Input(value)
	require.NoError(t, err)
	return h
}

// must unwraps a construction result or fails the test.
func must(t *testing.T) func(autodiff.Handle, error) autodiff.Handle {
	return func(h autodiff.Handle, err error) autodiff.Handle {
		t.Helper()
		require.NoError(t, err)
		return h
	}
}

func value(t *testing.T, g *autodiff.Graph, h autodiff.Handle) float64 {
	t.Helper()
	v, err := g.Value(h)
	require.NoError(t, err)
	return v
}

func TestInput(t *testing.T) {
	g := autodiff.New()
	x := input(t, g, 2.5)

	assert.Equal(t, 2.5, value(t, g, x))
	op, err := g.Op(x)
	require.NoError(t, err)
	assert.Equal(t, graph.InputOp, op)

	parents, err := g.Parents(x)
	require.NoError(t, err)
	assert.Empty(t, parents)
	partials, err := g.Partials(x)
	require.NoError(t, err)
	assert.Empty(t, partials)
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, []autodiff.Handle{x}, g.Inputs())
}

func TestInput_RejectsNonFinite(t *testing.T) {
	g := autodiff.New()
	_, err := g.Input(nan())
	assert.True(t, errors.Is(err, ops.ErrDomain))
	_, err = g.Constant(inf())
	assert.True(t, errors.Is(err, ops.ErrDomain))
	assert.Equal(t, 0, g.Len())
}

func TestMul_ValueAndPartials(t *testing.T) {
	for _, pair := range [][2]float64{{3, 4}, {-2, 0.5}, {0, 9}} {
		g := autodiff.New()
		a := input(t, g, pair[0])
		b := input(t, g, pair[1])
		y := must(t)(g.Mul(a, b))

		assert.Equal(t, pair[0]*pair[1], value(t, g, y))
		partials, err := g.Partials(y)
		require.NoError(t, err)
		assert.Equal(t, []float64{pair[1], pair[0]}, partials)
	}
}

func TestApply_RegistersChildren(t *testing.T) {
	g := autodiff.New()
	x := input(t, g, 3)
	s := must(t)(g.Add(x, x))
	y := must(t)(g.Mul(s, x))

	children, err := g.Children(x)
	require.NoError(t, err)
	assert.Equal(t, []autodiff.Handle{s, s, y}, children)

	parents, err := g.Parents(y)
	require.NoError(t, err)
	assert.Equal(t, []autodiff.Handle{s, x}, parents)
}

func TestTypedPrimitives(t *testing.T) {
	g := autodiff.New()
	a := input(t, g, 6)
	b := input(t, g, 2)

	tests := []struct {
		name string
		h    autodiff.Handle
		want float64
	}{
		{"add", must(t)(g.Add(a, b)), 8},
		{"sub", must(t)(g.Sub(a, b)), 4},
		{"mul", must(t)(g.Mul(a, b)), 12},
		{"div", must(t)(g.Div(a, b)), 3},
		{"log", must(t)(g.Log(b)), 0.6931471805599453},
		{"sin", must(t)(g.Sin(b)), 0.9092974268256817},
		{"cos", must(t)(g.Cos(b)), -0.4161468365471424},
		{"exp", must(t)(g.Exp(b)), 7.38905609893065},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := g.Op(tt.h)
			require.NoError(t, err)
			assert.Equal(t, tt.name, op)
			assert.InDelta(t, tt.want, value(t, g, tt.h), 1e-12)
		})
	}
}

func TestLog_DomainErrorLeavesGraphUnchanged(t *testing.T) {
	for _, v := range []float64{0, -1, -1e-300} {
		g := autodiff.New()
		x := input(t, g, v)

		_, err := g.Log(x)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ops.ErrDomain))

		var domainErr *ops.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "log", domainErr.Op)

		assert.Equal(t, 1, g.Len(), "no node attached")
		children, err := g.Children(x)
		require.NoError(t, err)
		assert.Empty(t, children)
	}
}

func TestDiv_ZeroDenominator(t *testing.T) {
	g := autodiff.New()
	a := input(t, g, 1)
	zero := input(t, g, 0)

	_, err := g.Div(a, zero)
	assert.True(t, errors.Is(err, ops.ErrDomain))
	assert.Equal(t, 2, g.Len())
}

func TestApply_ConsistencyErrors(t *testing.T) {
	g := autodiff.New()
	other := autodiff.New()
	x := input(t, g, 1)
	foreign := input(t, other, 1)

	tests := []struct {
		name     string
		op       ops.Operation
		operands []autodiff.Handle
	}{
		{"foreign handle", ops.AddOp{}, []autodiff.Handle{x, foreign}},
		{"zero handle", ops.SinOp{}, []autodiff.Handle{{}}},
		{"too few operands", ops.MulOp{}, []autodiff.Handle{x}},
		{"too many operands", ops.LogOp{}, []autodiff.Handle{x, x}},
		{"nil operation", nil, []autodiff.Handle{x}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Apply(tt.op, tt.operands...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, graph.ErrConsistency))
			assert.Equal(t, 1, g.Len())
		})
	}
}

type badPartialsOp struct{}

func (badPartialsOp) Name() string { return "bad" }
func (badPartialsOp) Arity() int   { return 2 }
func (badPartialsOp) Eval(operands []float64) (float64, []float64, error) {
	return operands[0], []float64{1}, nil
}

func TestApply_MisalignedPartials(t *testing.T) {
	g := autodiff.New()
	x := input(t, g, 1)

	_, err := g.Apply(badPartialsOp{}, x, x)
	assert.True(t, errors.Is(err, graph.ErrConsistency))
	assert.Equal(t, 1, g.Len())
}

// sqrtOp does not guard its own domain.
type sqrtOp struct{}

func (sqrtOp) Name() string { return "sqrt" }
func (sqrtOp) Arity() int   { return 1 }
func (sqrtOp) Eval(operands []float64) (float64, []float64, error) {
	r := math.Sqrt(operands[0])
	return r, []float64{0.5 / r}, nil
}

func TestApply_RejectsNonFiniteEvaluation(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		reason string
	}{
		{"infinite partial", 0, "derivative is not finite"},
		{"nan value", -1, "result is not finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := autodiff.New()
			x := input(t, g, tt.x)

			_, err := g.Apply(sqrtOp{}, x)
			require.ErrorIs(t, err, ops.ErrDomain)
			var de *ops.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "sqrt", de.Op)
			assert.Equal(t, tt.reason, de.Reason)
			assert.Equal(t, 1, g.Len())
		})
	}

	g := autodiff.New()
	x := input(t, g, 4)
	y := must(t)(g.Apply(sqrtOp{}, x))
	assert.Equal(t, 2.0, value(t, g, y))
}

func TestQueries_RejectForeignHandles(t *testing.T) {
	g := autodiff.New()
	foreign := input(t, autodiff.New(), 1)

	_, err := g.Value(foreign)
	assert.True(t, errors.Is(err, graph.ErrConsistency))
	_, err = g.Label(foreign)
	assert.True(t, errors.Is(err, graph.ErrConsistency))
	_, err = g.Order(foreign)
	assert.True(t, errors.Is(err, graph.ErrConsistency))
	_, err = g.ForwardPartial(foreign)
	assert.True(t, errors.Is(err, graph.ErrConsistency))
	_, err = g.ReverseGradient(foreign)
	assert.True(t, errors.Is(err, graph.ErrConsistency))
	assert.True(t, errors.Is(g.Forward(foreign), graph.ErrConsistency))
	assert.True(t, errors.Is(g.Reverse(foreign), graph.ErrConsistency))
}

func TestOrder_IsValidLinearization(t *testing.T) {
	g := autodiff.New()
	x1 := input(t, g, 0.5)
	x2 := input(t, g, 4)
	a := must(t)(g.Mul(x1, x2))
	b := must(t)(g.Sin(x1))
	c := must(t)(g.Sub(a, b))
	y := must(t)(g.Add(c, a))

	order, err := g.Order(y)
	require.NoError(t, err)
	assert.Equal(t, y, order[len(order)-1])

	index := make(map[autodiff.Handle]int, len(order))
	for i, h := range order {
		_, seen := index[h]
		require.False(t, seen, "node listed twice")
		index[h] = i
	}
	for i, h := range order {
		parents, err := g.Parents(h)
		require.NoError(t, err)
		for _, p := range parents {
			pi, ok := index[p]
			require.True(t, ok)
			assert.Less(t, pi, i)
		}
	}
}

func TestLabels(t *testing.T) {
	g := autodiff.New()
	x := input(t, g, 1)
	y := must(t)(g.Sin(x))

	lx, err := g.Label(x)
	require.NoError(t, err)
	ly, err := g.Label(y)
	require.NoError(t, err)
	assert.Equal(t, "x1", lx)
	assert.Equal(t, "v1", ly)
}

func TestTrace_ConstructionSteps(t *testing.T) {
	rec := trace.NewRecorder()
	g := autodiff.New(autodiff.WithSink(rec), autodiff.WithCapacity(4))
	x := input(t, g, 3)
	must(t)(g.Add(x, x))

	steps := rec.OfKind(trace.KindConstruct)
	require.Len(t, steps, 2)
	assert.Equal(t, "x1 = input = 3", steps[0].String())
	assert.Equal(t, "v1 = add(x1, x1) = 6", steps[1].String())
}

func TestTrace_DoesNotAffectResults(t *testing.T) {
	build := func(g *autodiff.Graph) (autodiff.Handle, autodiff.Handle) {
		x := input(t, g, 1.3)
		y := must(t)(g.Mul(must(t)(g.Sin(x)), must(t)(g.Exp(x))))
		return x, y
	}

	plain := autodiff.New()
	traced := autodiff.New(autodiff.WithSink(trace.NewRecorder()))
	px, py := build(plain)
	tx, ty := build(traced)

	require.NoError(t, plain.Reverse(py))
	require.NoError(t, traced.Reverse(ty))
	pg, err := plain.ReverseGradient(px)
	require.NoError(t, err)
	tg, err := traced.ReverseGradient(tx)
	require.NoError(t, err)
	assert.Equal(t, pg, tg)
}

func TestNewWithConfig_NilSink(t *testing.T) {
	g := autodiff.NewWithConfig(autodiff.Config{})
	x := input(t, g, 1)
	require.NoError(t, g.Forward(x))
}
