package primes_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/normbench/primes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrime(t *testing.T) {
	cases := []struct {
		n    int
		want bool
	}{
		{-7, false}, {0, false}, {1, false},
		{2, true}, {3, true}, {4, false}, {9, false},
		{25, false}, {97, true}, {7919, true}, {7917, false},
		{999_983, true}, {1_000_000, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, primes.IsPrime(tc.n), "n=%d", tc.n)
	}
}

func TestIsPrime_LargeBounds(t *testing.T) {
	// p*p sits exactly on the divisor bound.
	assert.False(t, primes.IsPrime(999_983*999_983))
	assert.Equal(t, 1, primes.Divisors(999_983*999_983))
	// MaxInt = 7^2 * 73 * 127 * 337 * 92737 * 649657.
	assert.False(t, primes.IsPrime(math.MaxInt))
	assert.False(t, primes.IsPrime(math.MinInt))
}

func TestDivisorsAgreesWithIsPrime(t *testing.T) {
	for n := 2; n < 5000; n++ {
		require.Equal(t, primes.IsPrime(n), primes.Divisors(n) == 0, "n=%d", n)
	}
	assert.Equal(t, 4, primes.Divisors(36)) // 2, 3, 4, 6
}

func TestPrimesBelow(t *testing.T) {
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19}, primes.PrimesBelow(20))
	assert.Equal(t, []int{2}, primes.PrimesBelow(3))
	assert.Empty(t, primes.PrimesBelow(2))
	assert.NotNil(t, primes.PrimesBelow(-1))
}

func TestCount(t *testing.T) {
	// π(10^k) for small k.
	assert.Equal(t, 4, primes.Count(10))
	assert.Equal(t, 25, primes.Count(100))
	assert.Equal(t, 168, primes.Count(1000))
	assert.Equal(t, 1229, primes.Count(10_000))
	assert.Equal(t, primes.Count(10_000), primes.CountExhaustive(10_000))
	assert.Zero(t, primes.Count(2))
}

func TestCount_DefaultLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("full sweep skipped in -short mode")
	}
	assert.Equal(t, 78498, primes.Count(primes.DefaultLimit))
}

var sinkInt int

func BenchmarkCount(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sinkInt = primes.Count(100_000)
	}
}

func BenchmarkCountExhaustive(b *testing.B) {
	for i := 0; i < b.N; i++ {
		sinkInt = primes.CountExhaustive(100_000)
	}
}
