package voronoi

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/ericlagergren/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
	"github.com/0x0FACED/go-hyperfortune/pkg/logger"
)

func points(coords ...[2]float64) []hyperbolic.Point[float64] {
	out := make([]hyperbolic.Point[float64], len(coords))
	for i, c := range coords {
		out[i] = hyperbolic.Point[float64]{R: c[0], Theta: c[1]}
	}
	return out
}

func randomPoints(rng *rand.Rand, n int, maxR float64) []hyperbolic.Point[float64] {
	out := make([]hyperbolic.Point[float64], n)
	for i := range out {
		out[i] = hyperbolic.Point[float64]{R: 0.1 + rng.Float64()*(maxR-0.1), Theta: rng.Float64() * 2 * math.Pi}
	}
	return out
}

func sweep(t *testing.T, pts []hyperbolic.Point[float64]) (*Diagram, *Fortune[float64]) {
	t.Helper()
	converted := make([]hyperbolic.Point[float64], len(pts))
	for i, p := range pts {
		converted[i] = hyperbolic.NewPoint[float64](native, p.R, p.Theta)
	}
	d := NewDiagram()
	f := NewFortune[float64](native, d, hyperbolic.NewSites(converted), nil)
	f.Calculate()
	return d, f
}

// separationTo - устойчивое расстояние от вершины до точки.
func separationTo(v Vertex, p hyperbolic.Point[float64]) float64 {
	return separation(native, hyperbolic.Point[float64]{R: v.R, Theta: v.Theta}, p)
}

// requireEmptyCircles: каждая вершина равноудалена от своих трех сайтов,
// и ни один другой сайт не ближе.
func requireEmptyCircles(t *testing.T, d *Diagram, pts []hyperbolic.Point[float64]) {
	t.Helper()
	for _, v := range d.Vertices {
		radius := separationTo(v, pts[v.Sites[0]])
		for _, s := range v.Sites[1:] {
			require.InDelta(t, radius, separationTo(v, pts[s]), 1e-7, "vertex %+v", v)
		}
		for i, p := range pts {
			require.GreaterOrEqual(t, separationTo(v, p), radius-1e-7, "site %d inside circle of %+v", i, v)
		}
	}
}

func TestFortuneFourSites(t *testing.T) {
	pts := points(
		[2]float64{3, 2.43},
		[2]float64{2, 2.19},
		[2]float64{6, 0.87},
		[2]float64{9.2, 1.23},
	)
	d, f := sweep(t, pts)

	assert.Equal(t, []Edge{
		{SiteA: 0, SiteB: 1, Start: NoVertex, End: NoVertex},
		{SiteA: 2, SiteB: 1, Start: NoVertex, End: NoVertex},
		{SiteA: 3, SiteB: 1, Start: NoVertex, End: NoVertex},
	}, d.Edges)
	assert.Empty(t, d.Vertices)
	assert.Equal(t, 6, f.Beach().Size())
	require.NoError(t, f.Beach().Validate())
}

func TestFortuneThreeSites(t *testing.T) {
	pts := points(
		[2]float64{1, 0.5},
		[2]float64{2, 2.0},
		[2]float64{1.5, 4.0},
	)
	d, f := sweep(t, pts)

	require.Len(t, d.Edges, 3)
	assert.Equal(t, []EdgeKey{{2, 0}, {1, 0}, {1, 2}}, d.Triangulation())
	require.Len(t, d.Vertices, 1)

	v := d.Vertices[0]
	assert.InDelta(t, 0.7590715743065013, v.R, 1e-9)
	assert.InDelta(t, 2.7007808654988215, v.Theta, 1e-9)
	assert.Equal(t, [3]int{1, 0, 2}, v.Sites)
	for _, e := range d.Edges {
		assert.Equal(t, 0, e.Start)
		assert.Equal(t, NoVertex, e.End)
	}

	assert.Equal(t, 3, f.Beach().Size())
	assert.Equal(t, 1, f.Stats().CircleEvents)
	requireEmptyCircles(t, d, pts)
}

func TestFortuneTraceMergedBreakpoint(t *testing.T) {
	pts := points(
		[2]float64{1, 0.5},
		[2]float64{2, 2.0},
		[2]float64{1.5, 4.0},
	)
	converted := make([]hyperbolic.Point[float64], len(pts))
	for i, p := range pts {
		converted[i] = hyperbolic.NewPoint[float64](native, p.R, p.Theta)
	}

	var buf bytes.Buffer
	f := NewFortune[float64](native, NewDiagram(), hyperbolic.NewSites(converted), logger.New(&buf, true))
	f.Calculate()

	// излом слияния при радиусе исчезновения проходит через вершину
	out := buf.String()
	assert.Contains(t, out, "Новый излом")
	assert.Contains(t, out, "Дуга исчезла")

	var quiet bytes.Buffer
	NewFortune[float64](native, NewDiagram(), hyperbolic.NewSites(converted), logger.New(&quiet, false)).Calculate()
	assert.NotContains(t, quiet.String(), "Новый излом")
}

func TestFortuneBoundaries(t *testing.T) {
	t.Run("one site", func(t *testing.T) {
		d, f := sweep(t, points([2]float64{1, 1}))
		assert.Empty(t, d.Edges)
		assert.Equal(t, 1, f.Beach().Size())
	})
	t.Run("two sites", func(t *testing.T) {
		d, f := sweep(t, points([2]float64{1, 1}, [2]float64{2, 2}))
		assert.Empty(t, d.Edges)
		assert.Equal(t, 2, f.Beach().Size())
		require.NoError(t, f.Beach().Validate())
	})
	t.Run("no sites", func(t *testing.T) {
		d, f := sweep(t, nil)
		assert.Empty(t, d.Edges)
		assert.Equal(t, 0, f.Beach().Size())
	})
}

func TestFortuneDuplicates(t *testing.T) {
	pts := points(
		[2]float64{1, 0.5},
		[2]float64{2, 2.0},
		[2]float64{2, 2.0},
		[2]float64{1.5, 4.0},
	)
	d, f := sweep(t, pts)

	assert.Equal(t, 1, f.Stats().Duplicates)
	assert.Equal(t, 3, f.Stats().Sites)
	assert.Len(t, d.Edges, 3)
	assert.Len(t, d.Vertices, 1)
}

func TestFortuneRing(t *testing.T) {
	var coords [][2]float64
	for i := range 7 {
		coords = append(coords, [2]float64{2, float64(i) * 2 * math.Pi / 7})
	}
	d, f := sweep(t, points(coords...))

	require.Len(t, d.Vertices, 1)
	assert.InDelta(t, 0, d.Vertices[0].R, 1e-12)
	require.Len(t, d.Edges, 7)
	for i, e := range d.Edges {
		assert.Equal(t, NewEdgeKey(i, (i+1)%7), e.Key())
		assert.Equal(t, 0, e.Start)
	}
	assert.Equal(t, 7, f.Beach().Size())
	require.NoError(t, f.Beach().Validate())
}

func TestFortuneEqualRadii(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	radii := []float64{1, 2, 3}
	for trial := range 50 {
		pts := make([]hyperbolic.Point[float64], 12)
		for i := range pts {
			pts[i] = hyperbolic.Point[float64]{R: radii[rng.Intn(len(radii))], Theta: rng.Float64() * 2 * math.Pi}
		}
		d, f := sweep(t, pts)
		require.NoError(t, f.Beach().Validate(), "trial %d", trial)
		requireEmptyCircles(t, d, pts)
	}
}

func TestFortuneRandomEmptyCircles(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := range 100 {
		n := 3 + rng.Intn(28)
		pts := randomPoints(rng, n, 5)
		if trial%10 == 0 {
			pts[0] = hyperbolic.Point[float64]{}
		}

		d, f := sweep(t, pts)
		require.NoError(t, f.Beach().Validate(), "trial %d", trial)
		requireEmptyCircles(t, d, pts)

		// каждая вершина лежит на ребрах всех трех пар своих сайтов
		edges := d.EdgeSet()
		for _, v := range d.Vertices {
			s := v.Sites
			for _, key := range []EdgeKey{NewEdgeKey(s[0], s[1]), NewEdgeKey(s[1], s[2]), NewEdgeKey(s[0], s[2])} {
				assert.Contains(t, edges, key)
			}
		}
	}
}

func TestFortuneCancelledEventsDiscardedOnPop(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	var cancelled int
	for trial := range 60 {
		pts := randomPoints(rng, 5+rng.Intn(60), 8)
		_, f := sweep(t, pts)

		stats := f.Stats()
		// отмененные события доходят до извлечения и отбрасываются там
		assert.Equal(t, stats.Cancelled, stats.Stale, "trial %d", trial)
		cancelled += stats.Cancelled
	}
	assert.Positive(t, cancelled)
}

func TestFortuneDeterministic(t *testing.T) {
	pts := randomPoints(rand.New(rand.NewSource(3)), 40, 6)
	first, _ := sweep(t, pts)
	for range 3 {
		again, _ := sweep(t, pts)
		assert.Equal(t, first, again)
	}
}

func TestFortuneDecimal(t *testing.T) {
	pts := randomPoints(rand.New(rand.NewSource(8)), 12, 4)
	want, _ := sweep(t, pts)

	k := kernel.MustDecimal(128)
	converted := make([]hyperbolic.Point[*decimal.Big], len(pts))
	for i, p := range pts {
		converted[i] = hyperbolic.NewPoint[*decimal.Big](k, p.R, p.Theta)
	}
	got := NewDiagram()
	f := NewFortune[*decimal.Big](k, got, hyperbolic.NewSites(converted), nil)
	f.Calculate()

	require.NoError(t, f.Beach().Validate())
	c := Compare(want, got)
	assert.True(t, c.Equal(), "missing %v extra %v", c.Missing, c.Extra)
	assert.Less(t, c.MaxVertexDeviation, 1e-6)
}

func TestFortuneStaleEvents(t *testing.T) {
	sites := nativeSites(
		[2]float64{0.5, 0},
		[2]float64{1, 2},
		[2]float64{1.5, 4},
	)
	d := NewDiagram()
	f := NewFortune[float64](native, d, sites, nil)

	first := f.beach.InsertFirst(0)
	l01, r10 := f.beach.Insert(first, Arc{0, 1}, Arc{1, 0})
	l02, _ := f.beach.Insert(r10, Arc{0, 2}, Arc{2, 0})

	e := &event[float64]{kind: circleEvent, left: r10, right: l02, sites: [3]int{1, 0, 2}, state: Pending}

	// не владеет излом
	assert.False(t, f.actionable(e))

	f.beach.setEvent(r10, e)
	assert.True(t, f.actionable(e))

	e.state = Cancelled
	assert.False(t, f.actionable(e))
	e.state = Pending

	// пара не соседняя
	other := &event[float64]{kind: circleEvent, left: l01, right: l02, state: Pending}
	f.beach.setEvent(l01, other)
	assert.False(t, f.actionable(other))

	// оба излома ушли при слиянии
	f.beach.Remove(r10)
	assert.False(t, f.beach.Alive(r10))
	assert.False(t, f.beach.Alive(l02))
	assert.False(t, f.actionable(e))

	f.handleCircle(e)
	assert.Equal(t, 1, f.Stats().Stale)
	assert.Empty(t, d.Vertices)
	assert.Empty(t, d.Edges)
}
