// SPDX-License-Identifier: MIT
// Package: primes
//
// Purpose:
//   - Naive trial-division primality, used as a CPU-bound integer workload next
//     to the floating-point row normalization benchmark.
//
// Determinism & Performance:
//   - Pure functions; no allocation except the PrimesBelow result.
//   - Candidate divisors are bounded with x <= n/x: no floating-point sqrt and no
//     overflow of x*x for n near math.MaxInt.

package primes

// DefaultLimit is the exclusive upper bound of the reference sweep.
const DefaultLimit = 1_000_000

// IsPrime reports whether n is prime by trying every divisor x with 2 <= x <= ⌊√n⌋.
// It stops at the first divisor found. n < 2 is never prime.
// Complexity: O(√n).
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for x := 2; x <= n/x; x++ {
		if n%x == 0 {
			return false
		}
	}

	return true
}

// Divisors counts the divisors of n in [2, ⌊√n⌋] without stopping early.
// It is the exhaustive form of IsPrime: for n >= 2, IsPrime(n) == (Divisors(n) == 0).
// Complexity: Θ(√n).
func Divisors(n int) int {
	var count int
	for x := 2; x <= n/x; x++ {
		if n%x == 0 {
			count++
		}
	}

	return count
}

// PrimesBelow returns all primes p with 2 <= p < m in ascending order.
// m <= 2 yields an empty, non-nil slice.
func PrimesBelow(m int) []int {
	out := make([]int, 0)
	for n := 2; n < m; n++ {
		if IsPrime(n) {
			out = append(out, n)
		}
	}

	return out
}

// Count returns the number of primes below m.
func Count(m int) int {
	var c int
	for n := 2; n < m; n++ {
		if IsPrime(n) {
			c++
		}
	}

	return c
}

// CountExhaustive is Count driven by Divisors, i.e. with no early exit per candidate.
func CountExhaustive(m int) int {
	var c int
	for n := 2; n < m; n++ {
		if Divisors(n) == 0 {
			c++
		}
	}

	return c
}
