// Package matrix provides the dense numeric storage behind the normalization
// benchmark.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set and
//     no-copy row views (Row, EachRow) for tight row kernels.
//   - Deterministic random fills (NewRand, RandomDense) driven by an explicit
//     *rand.Rand, never a process-wide generator.
//   - Row statistics (PopMeanStd, RowMeans, RowPopStds) and copy-based
//     transforms (CenterRows, ScaleRows).
//   - Diagnostics for NaN/Inf propagation (HasNonFinite, NonFiniteRows,
//     RowsStandardized).
//
// All errors are package sentinels; match them with errors.Is.
package matrix
