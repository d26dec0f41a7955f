// Package normbench measures row normalization throughput.
//
// The benchmark fills an R×C float64 matrix with uniform random values and
// standardizes every row in place (subtract the row mean, divide by the row
// population standard deviation) N times, reporting the average wall-clock
// seconds per pass. Passes compound: nothing resets the matrix between them.
//
// Layout:
//
//	matrix/     row-major Dense storage, row views, seeded fill, row statistics
//	normalize/  the row kernel, zero-variance policies, copy-out and parallel passes
//	primes/     trial-division primality, a second CPU-bound workload
//	bench/      workloads, the timing runner and result summaries
//	report/     plain, table and YAML rendering; host description
//	cmd/normbench/  the command line tool
//
// Quick start:
//
//	go run ./cmd/normbench                      # 1024x60000, 20 passes
//	go run ./cmd/normbench --rows 64 --cols 4096 --format table
//	go run ./cmd/normbench primes --limit 1000000
//
// A constant row has zero variance and turns into NaN under the default
// policy; normbench exits with status 2 when that happens.
package normbench
