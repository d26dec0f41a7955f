package normalize_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/normbench/matrix"
	"github.com/katalvlaran/normbench/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func mustRows(t *testing.T, vals [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(vals, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	return m
}

func mustRandom(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	m, err := matrix.RandomDense(r, c, matrix.NewRand(seed), matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	return m
}

func rowOf(t *testing.T, m *matrix.Dense, i int) []float64 {
	t.Helper()
	row, err := m.Row(i)
	require.NoError(t, err)
	return row
}

// TestPass_EndToEndScenario is the [[1,2,3],[4,4,4]] walk-through: row 0
// standardizes to ±sqrt(3/2), row 1 is constant and turns into NaN.
func TestPass_EndToEndScenario(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2, 3}, {4, 4, 4}})

	st, err := normalize.New().Pass(m)
	require.NoError(t, err)
	assert.Equal(t, normalize.PassStats{Rows: 2, Degenerate: 1, FirstDegenerate: 1}, st)

	k := math.Sqrt(1.5) // (x-2)/sqrt(2/3)
	row0 := rowOf(t, m, 0)
	assert.InDelta(t, -k, row0[0], 1e-12)
	assert.InDelta(t, 0, row0[1], 1e-12)
	assert.InDelta(t, k, row0[2], 1e-12)
	assert.InDelta(t, -1.2247, row0[0], 1e-4)

	for _, v := range rowOf(t, m, 1) {
		assert.True(t, math.IsNaN(v), "constant row must become NaN, got %g", v)
	}

	has, err := matrix.HasNonFinite(m)
	require.NoError(t, err)
	assert.True(t, has)
	bad, err := matrix.NonFiniteRows(m)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, bad)
}

// TestPass_MeanZeroStdOne checks the standardization contract on random data.
func TestPass_MeanZeroStdOne(t *testing.T) {
	for _, k := range []normalize.Kernel{normalize.KernelLoop, normalize.KernelFloats} {
		t.Run(k.String(), func(t *testing.T) {
			m := mustRandom(t, 16, 500, 7)
			st, err := normalize.New(normalize.WithKernel(k)).Pass(m)
			require.NoError(t, err)
			assert.Equal(t, 16, st.Rows)
			assert.Zero(t, st.Degenerate)
			assert.Equal(t, -1, st.FirstDegenerate)

			for i := 0; i < m.Rows(); i++ {
				mean, std := normalize.RowStats(rowOf(t, m, i))
				assert.InDelta(t, 0, mean, tol, "row %d mean", i)
				assert.InDelta(t, 1, std, tol, "row %d std", i)
			}
			ok, err := matrix.RowsStandardized(m)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

// TestPass_SecondPassNearIdempotent: a second pass over standardized rows only
// moves values by rounding noise.
func TestPass_SecondPassNearIdempotent(t *testing.T) {
	m := mustRandom(t, 8, 1000, 3)
	n := normalize.New()
	_, err := n.Pass(m)
	require.NoError(t, err)

	before := m.CloneDense()
	_, err = n.Pass(m)
	require.NoError(t, err)

	ok, err := matrix.AllClose(m, before, 0, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestPass_CompoundsInPlace verifies passes are not reset: N passes equal N
// successive single passes on the same storage.
func TestPass_CompoundsInPlace(t *testing.T) {
	a := mustRandom(t, 4, 64, 11)
	b := a.CloneDense()
	n := normalize.New()

	for p := 0; p < 3; p++ {
		_, err := n.Pass(a)
		require.NoError(t, err)
	}
	for p := 0; p < 3; p++ {
		for i := 0; i < b.Rows(); i++ {
			normalize.Row(rowOf(t, b, i))
		}
	}
	ok, err := matrix.AllClose(a, b, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok, "Pass must equal the literal per-row kernel bit for bit")
}

// TestPass_MatchesCenterThenScale cross-checks against the copy-based transforms.
func TestPass_MatchesCenterThenScale(t *testing.T) {
	src := mustRandom(t, 5, 200, 5)
	Xc, _, err := matrix.CenterRows(src)
	require.NoError(t, err)
	stds, err := matrix.RowPopStds(src)
	require.NoError(t, err)
	inv := make([]float64, len(stds))
	for i, s := range stds {
		inv[i] = 1 / s
	}
	want, err := matrix.ScaleRows(Xc, inv)
	require.NoError(t, err)

	got := src.CloneDense()
	_, err = normalize.New().Pass(got)
	require.NoError(t, err)

	ok, err := matrix.AllClose(got, want, 1e-12, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPass_KernelsAgree(t *testing.T) {
	a := mustRandom(t, 12, 777, 21)
	b := a.CloneDense()

	_, err := normalize.New(normalize.WithKernel(normalize.KernelLoop)).Pass(a)
	require.NoError(t, err)
	_, err = normalize.New(normalize.WithKernel(normalize.KernelFloats)).Pass(b)
	require.NoError(t, err)

	ok, err := matrix.AllClose(a, b, 0, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPass_FloatsKernelConstantRowIsNaN(t *testing.T) {
	m := mustRows(t, [][]float64{{4, 4, 4}})
	st, err := normalize.New(normalize.WithKernel(normalize.KernelFloats)).Pass(m)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Degenerate)
	for _, v := range rowOf(t, m, 0) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestPass_PolicyReject(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2, 3}, {4, 4, 4}, {0, 1, 2}})

	st, err := normalize.New(normalize.WithPolicy(normalize.PolicyReject)).Pass(m)
	require.Error(t, err)
	assert.ErrorIs(t, err, normalize.ErrZeroVariance)

	var rerr *normalize.RowError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 1, rerr.Row)
	assert.Equal(t, 4.0, rerr.Mean)
	assert.Equal(t, 0.0, rerr.Std)

	// Row 0 done, row 1 untouched, row 2 never reached.
	assert.Equal(t, 2, st.Rows)
	assert.InDelta(t, -math.Sqrt(1.5), rowOf(t, m, 0)[0], 1e-12)
	assert.Equal(t, []float64{4, 4, 4}, rowOf(t, m, 1))
	assert.Equal(t, []float64{0, 1, 2}, rowOf(t, m, 2))
}

func TestPass_PolicyRejectNonFinite(t *testing.T) {
	m := mustRows(t, [][]float64{{1, math.NaN(), 3}})
	_, err := normalize.New(normalize.WithPolicy(normalize.PolicyReject)).Pass(m)
	assert.ErrorIs(t, err, normalize.ErrNonFiniteStats)
}

func TestPass_PolicySkip(t *testing.T) {
	m := mustRows(t, [][]float64{{4, 4, 4}, {1, 2, 3}})

	st, err := normalize.New(normalize.WithPolicy(normalize.PolicySkip)).Pass(m)
	require.NoError(t, err)
	assert.Equal(t, normalize.PassStats{Rows: 2, Degenerate: 1, FirstDegenerate: 0}, st)
	assert.Equal(t, []float64{4, 4, 4}, rowOf(t, m, 0))
	assert.InDelta(t, math.Sqrt(1.5), rowOf(t, m, 1)[2], 1e-12)

	has, err := matrix.HasNonFinite(m)
	require.NoError(t, err)
	assert.False(t, has)
}

// TestPass_PropagatedNaNStaysDegenerate: after the first pass a constant row is NaN,
// and every later pass keeps counting it.
func TestPass_PropagatedNaNStaysDegenerate(t *testing.T) {
	m := mustRows(t, [][]float64{{4, 4, 4}, {1, 2, 3}})
	n := normalize.New()
	for p := 0; p < 3; p++ {
		st, err := n.Pass(m)
		require.NoError(t, err)
		assert.Equal(t, 1, st.Degenerate, "pass %d", p)
		assert.Equal(t, 0, st.FirstDegenerate)
	}
}

func TestPass_WorkersBitIdentical(t *testing.T) {
	for _, workers := range []int{2, 3, 8, 64} {
		a := mustRandom(t, 37, 129, 99)
		b := a.CloneDense()

		_, err := normalize.New().Pass(a)
		require.NoError(t, err)
		st, err := normalize.New(normalize.WithWorkers(workers)).Pass(b)
		require.NoError(t, err)
		assert.Equal(t, 37, st.Rows, "workers=%d", workers)

		ok, err := matrix.AllClose(a, b, 0, 0)
		require.NoError(t, err)
		assert.True(t, ok, "workers=%d", workers)
	}
}

func TestPass_WorkersMergeDegenerate(t *testing.T) {
	vals := make([][]float64, 10)
	for i := range vals {
		vals[i] = []float64{float64(i), float64(i + 1), float64(i + 3)}
	}
	vals[7] = []float64{2, 2, 2}
	vals[3] = []float64{5, 5, 5}
	m := mustRows(t, vals)

	st, err := normalize.New(normalize.WithWorkers(4)).Pass(m)
	require.NoError(t, err)
	assert.Equal(t, normalize.PassStats{Rows: 10, Degenerate: 2, FirstDegenerate: 3}, st)

	m2 := mustRows(t, vals)
	_, err = normalize.New(normalize.WithWorkers(4), normalize.WithPolicy(normalize.PolicyReject)).Pass(m2)
	assert.ErrorIs(t, err, normalize.ErrZeroVariance)
}

func TestPassTo_CopyOutLeavesSource(t *testing.T) {
	src := mustRandom(t, 3, 50, 8)
	orig := src.CloneDense()
	dst, err := matrix.ZerosLike(src)
	require.NoError(t, err)

	n := normalize.New()
	for p := 0; p < 3; p++ {
		_, err = n.PassTo(dst, src)
		require.NoError(t, err)
	}

	ok, err := matrix.AllClose(src, orig, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok, "source must be untouched")

	once := orig.CloneDense()
	_, err = n.Pass(once)
	require.NoError(t, err)
	ok, err = matrix.AllClose(dst, once, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok, "copy-out never compounds")

	short, err := matrix.NewDense(2, 50)
	require.NoError(t, err)
	_, err = n.PassTo(short, src)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = n.PassTo(nil, src)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestPass_InvalidInput(t *testing.T) {
	n := normalize.New()

	_, err := n.Pass(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	st, err := normalize.NormalizeRows(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	assert.Equal(t, -1, st.FirstDegenerate)
}

func TestOptions(t *testing.T) {
	n := normalize.New()
	assert.Equal(t, normalize.PolicyPropagate, n.Policy())
	assert.Equal(t, normalize.KernelLoop, n.Kernel())
	assert.Equal(t, 1, n.Workers())

	assert.Panics(t, func() { normalize.WithWorkers(0) })
	assert.Panics(t, func() { normalize.WithPolicy(normalize.Policy(9)) })
	assert.Panics(t, func() { normalize.WithKernel(normalize.Kernel(-1)) })
}

func TestParsePolicyAndKernel(t *testing.T) {
	for _, p := range []normalize.Policy{normalize.PolicyPropagate, normalize.PolicyReject, normalize.PolicySkip} {
		got, err := normalize.ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := normalize.ParsePolicy("ignore")
	assert.ErrorIs(t, err, normalize.ErrUnknownPolicy)

	for _, k := range []normalize.Kernel{normalize.KernelLoop, normalize.KernelFloats} {
		got, err := normalize.ParseKernel(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err = normalize.ParseKernel("simd")
	assert.ErrorIs(t, err, normalize.ErrUnknownKernel)

	assert.Equal(t, "Policy(7)", normalize.Policy(7).String())
	assert.Equal(t, "Kernel(7)", normalize.Kernel(7).String())
}
