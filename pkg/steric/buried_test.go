package steric

import (
	"testing"

	"github.com/kpotier/sterics/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sphereField(t *testing.T, r, query, spacing float64) *grid.Field {
	t.Helper()
	xyz := [][3]float64{{0, 0, 0}}
	radii := []float64{r}
	b := grid.MolBounds(xyz, radii).EnsureRadius(query, spacing)
	g, err := grid.New(b, spacing)
	require.NoError(t, err)
	return g.OccupiedVDW(xyz, radii)
}

func TestBuriedVolumeZeroRadius(t *testing.T) {
	t.Parallel()

	f := sphereField(t, 1, 1, 0.2)
	vol, shell := BuriedVolume(f, 0, 0.1)
	assert.Zero(t, vol, "an empty region reports 0, not a division by zero")
	assert.Zero(t, shell)
}

func TestBuriedVolumeSingleAtom(t *testing.T) {
	t.Parallel()

	f := sphereField(t, 1, 3.5, 0.1)
	vol, shell := BuriedVolume(f, 3.5, 0.1)

	// Ratio of the two sphere volumes, (1/3.5)^3.
	assert.InDelta(t, 2.33, vol, 0.4)
	assert.Zero(t, shell, "a shell fully outside the envelope is empty")
}

func TestBuriedVolumeFullyOccupied(t *testing.T) {
	t.Parallel()

	f := sphereField(t, 5, 2, 0.2)
	vol, shell := BuriedVolume(f, 2, 0.2)
	assert.InDelta(t, 100, vol, 1e-9)
	assert.InDelta(t, 100, shell, 1e-9)
}

func TestBuriedVolumeMonotonicScale(t *testing.T) {
	t.Parallel()

	small, _ := BuriedVolume(sphereField(t, 1.0, 2, 0.1), 2, 0.1)
	large, _ := BuriedVolume(sphereField(t, 1.3, 2, 0.1), 2, 0.1)
	assert.Greater(t, large, small)
}

func TestShellHalf(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.25, shellHalf(0.5, 0.05), 1e-12)
	assert.InDelta(t, 0.05, shellHalf(0, 0.05), 1e-12)
}
