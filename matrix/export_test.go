// SPDX-License-Identifier: MIT

package matrix

// Test bridge (white-box) for private constructors and options.
//
// Lives in a _test.go file of package matrix, so matrix_test can reach these
// symbols while production builds never see them.

var (
	// ExportedNewDenseZeroOK exposes newDenseZeroOK so tests can build 0×N / N×0 inputs.
	ExportedNewDenseZeroOK = newDenseZeroOK
	// ExportedDeriveSeed exposes the SplitMix64 mixer behind DeriveRand.
	ExportedDeriveSeed = deriveSeed
)

// OptionsSnapshot is a read-only copy of the resolved Options.
type OptionsSnapshot struct {
	Eps            float64
	ValidateNaNInf bool
}

// GatherOptionsSnapshot resolves opts the same way constructors do.
func GatherOptionsSnapshot(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{Eps: o.eps, ValidateNaNInf: o.validateNaNInf}
}

// Row broadcast kernels behind CenterRows / ScaleRows.
var (
	EwBroadcastSubRows_TestOnly = ewBroadcastSubRows
	EwScaleRows_TestOnly        = ewScaleRows
)
