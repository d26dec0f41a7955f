// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/normbench/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Defaults(t *testing.T) {
	snap := matrix.GatherOptionsSnapshot()
	assert.Equal(t, matrix.DefaultEpsilon, snap.Eps)
	assert.Equal(t, matrix.DefaultValidateNaNInf, snap.ValidateNaNInf)
}

func TestOptions_LastWins(t *testing.T) {
	snap := matrix.GatherOptionsSnapshot(
		matrix.WithNoValidateNaNInf(),
		matrix.WithEpsilon(1e-3),
		nil, // ignored
		matrix.WithValidateNaNInf(),
	)
	assert.Equal(t, 1e-3, snap.Eps)
	assert.True(t, snap.ValidateNaNInf)
}

func TestWithEpsilon_PanicsOnNonsense(t *testing.T) {
	require.Panics(t, func() { matrix.WithEpsilon(-1) })
	require.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	require.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	require.NotPanics(t, func() { matrix.WithEpsilon(0) })
}
