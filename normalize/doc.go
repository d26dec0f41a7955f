// Package normalize standardizes the rows of a matrix.
//
// Each pass computes, for every row, the arithmetic mean and the population
// standard deviation (divisor = number of columns), subtracts the mean from
// every element and divides every element by the standard deviation. The
// matrix is mutated in place and passes compound.
//
// Rows must have non-zero variance. By default (PolicyPropagate) the
// precondition is not enforced: a constant row divides 0 by 0 and becomes NaN,
// exactly like the reference benchmark; PassStats counts such rows. Use
// PolicyReject to turn the precondition into an error, or PolicySkip to leave
// those rows untouched.
//
//	m, _ := matrix.RandomDense(1024, 60000, matrix.NewRand(1))
//	n := normalize.New()
//	st, err := n.Pass(m)
package normalize
