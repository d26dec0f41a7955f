package normalize_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/normbench/matrix"
	"github.com/katalvlaran/normbench/normalize"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyParams() *gopter.TestParameters {
	p := gopter.DefaultTestParametersWithSeed(1024)
	p.MinSuccessfulTests = 200
	return p
}

// rowGen draws rows wide enough that a constant draw is practically impossible.
func rowGen() gopter.Gen {
	return gen.SliceOfN(24, gen.Float64Range(-1e6, 1e6))
}

func TestProperties_Row(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("normalized row has mean 0 and std 1", prop.ForAll(
		func(xs []float64) bool {
			row := append([]float64(nil), xs...)
			_, std := normalize.Row(row)
			if std == 0 {
				return true
			}
			mean, s := normalize.RowStats(row)
			return math.Abs(mean) <= 1e-9 && math.Abs(s-1) <= 1e-9
		},
		rowGen(),
	))

	properties.Property("Row reports the statistics of its input", prop.ForAll(
		func(xs []float64) bool {
			wantMean, wantStd := normalize.RowStats(xs)
			row := append([]float64(nil), xs...)
			mean, std := normalize.Row(row)
			return mean == wantMean && std == wantStd
		},
		rowGen(),
	))

	properties.Property("shifting and scaling the input does not change the output", prop.ForAll(
		func(xs []float64, shift, scale float64) bool {
			a := append([]float64(nil), xs...)
			b := make([]float64, len(xs))
			for i, v := range xs {
				b[i] = v*scale + shift
			}
			if _, std := normalize.Row(a); std == 0 {
				return true
			}
			normalize.Row(b)
			for i := range a {
				if math.Abs(a[i]-b[i]) > 1e-6 {
					return false
				}
			}
			return true
		},
		rowGen(),
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(0.5, 4),
	))

	properties.TestingRun(t)
}

func TestProperties_Pass(t *testing.T) {
	properties := gopter.NewProperties(propertyParams())

	properties.Property("worker count never changes the result", prop.ForAll(
		func(seed int64, rows, workers int) bool {
			a, err := matrix.RandomDense(rows, 16, matrix.NewRand(seed))
			if err != nil {
				return false
			}
			b := a.CloneDense()
			if _, err = normalize.New().Pass(a); err != nil {
				return false
			}
			if _, err = normalize.New(normalize.WithWorkers(workers)).Pass(b); err != nil {
				return false
			}
			ok, err := matrix.AllClose(a, b, 0, 0)
			return err == nil && ok
		},
		gen.Int64Range(1, math.MaxInt32),
		gen.IntRange(1, 40),
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}
