package voronoi

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
	"github.com/0x0FACED/go-hyperfortune/pkg/logger"
)

func TestCreateDiagram(t *testing.T) {
	pts := points(
		[2]float64{3, 2.43},
		[2]float64{2, 2.19},
		[2]float64{6, 0.87},
		[2]float64{9.2, 1.23},
	)

	d, err := CreateDiagram(pts, kernel.Double, nil)
	require.NoError(t, err)
	assert.Equal(t, []EdgeKey{{0, 1}, {2, 1}, {3, 1}}, d.Triangulation())

	for _, bits := range []int{64, 128, 256} {
		d, err := CreateDiagram(pts, bits, nil)
		require.NoError(t, err, "precision %d", bits)
		assert.Equal(t, []EdgeKey{{0, 1}, {2, 1}, {3, 1}}, d.Triangulation(), "precision %d", bits)
	}
}

func TestCreateDiagramPrecisionFallback(t *testing.T) {
	var buf bytes.Buffer
	pts := points([2]float64{1, 0.5}, [2]float64{2, 2}, [2]float64{1.5, 4})

	d, err := CreateDiagram(pts, 100, logger.New(&buf, false))
	require.NoError(t, err)
	assert.Len(t, d.Edges, 3)
	assert.Contains(t, buf.String(), "double")
}

func TestCreateDiagramInvalidInput(t *testing.T) {
	pts := points(
		[2]float64{1, 0},
		[2]float64{-1, 0},
		[2]float64{math.NaN(), math.Inf(1)},
	)
	d, err := CreateDiagram(pts, kernel.Double, nil)
	require.Error(t, err)
	assert.Nil(t, d)
	assert.True(t, errors.Is(err, ErrSite))
	assert.Len(t, multierr.Errors(err), 3)

	_, err = CreateDiagramWithOptions(points([2]float64{1, 0}), Options{Center: 5})
	assert.ErrorIs(t, err, ErrSite)
}

func TestRecenteringKeepsEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := randomPoints(rng, 12, 4)

	base, err := CreateDiagram(pts, kernel.Double, nil)
	require.NoError(t, err)

	for center := range pts {
		moved, err := CreateDiagramWithOptions(pts, Options{Precision: kernel.Double, Center: center})
		require.NoError(t, err)
		assert.Equal(t, base.EdgeSet(), moved.EdgeSet(), "center %d", center)
	}
}

func TestPrecisionConvergence(t *testing.T) {
	pts := randomPoints(rand.New(rand.NewSource(21)), 15, 3)

	reference, err := CreateDiagram(pts, 256, nil)
	require.NoError(t, err)

	var deviations []float64
	for _, bits := range []int{kernel.Double, 64, 128} {
		d, err := CreateDiagram(pts, bits, nil)
		require.NoError(t, err)

		c := Compare(reference, d)
		require.True(t, c.Equal(), "precision %d: missing %v extra %v", bits, c.Missing, c.Extra)
		require.Equal(t, len(reference.Vertices), c.MatchedVertices)
		deviations = append(deviations, c.MaxVertexDeviation)
	}

	assert.Less(t, deviations[0], 1e-6)
	// дальше упираемся в float64 самой диаграммы
	assert.LessOrEqual(t, deviations[2], deviations[0]+1e-12)
	assert.Less(t, deviations[2], 1e-12)
}

func TestRecoverInvariant(t *testing.T) {
	err := func() (err error) {
		defer recoverInvariant(logger.Nop(), &err)
		NewBeachLine[float64](native, nil).FindArcAt(0)
		return nil
	}()
	assert.ErrorIs(t, err, ErrInvariant)

	err = func() (err error) {
		defer recoverInvariant(logger.Nop(), &err)
		hyperbolic.NewBisector[float64](native, nativeSites([2]float64{1, 0})[0], nativeSites([2]float64{1, 1})[0]).At(0)
		return nil
	}()
	assert.ErrorIs(t, err, hyperbolic.ErrContract)

	assert.Panics(t, func() {
		var err error
		defer recoverInvariant(logger.Nop(), &err)
		panic("boom")
	})
}
