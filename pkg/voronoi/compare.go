package voronoi

import (
	"math"
	"slices"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
)

// Comparison - расхождение двух диаграмм одного набора сайтов.
type Comparison struct {
	Matching int
	// Missing - ребра a, которых нет в b; Extra - наоборот.
	Missing []EdgeKey
	Extra   []EdgeKey
	// MaxVertexDeviation - наибольшее расстояние между вершинами с одной
	// и той же тройкой сайтов.
	MaxVertexDeviation float64
	MatchedVertices    int
}

func (c Comparison) Equal() bool {
	return len(c.Missing) == 0 && len(c.Extra) == 0
}

func Compare(a, b *Diagram) Comparison {
	var c Comparison

	ea, eb := a.EdgeSet(), b.EdgeSet()
	for key := range ea {
		if _, ok := eb[key]; ok {
			c.Matching++
		} else {
			c.Missing = append(c.Missing, key)
		}
	}
	for key := range eb {
		if _, ok := ea[key]; !ok {
			c.Extra = append(c.Extra, key)
		}
	}
	slices.SortFunc(c.Missing, compareKeys)
	slices.SortFunc(c.Extra, compareKeys)

	k := kernel.NewNative()
	vertices := make(map[[3]int]hyperbolic.Point[float64], len(a.Vertices))
	for _, v := range a.Vertices {
		vertices[triple(v.Sites)] = hyperbolic.Point[float64]{R: v.R, Theta: v.Theta}
	}
	for _, v := range b.Vertices {
		p, ok := vertices[triple(v.Sites)]
		if !ok {
			continue
		}
		c.MatchedVertices++
		d := separation(k, p, hyperbolic.Point[float64]{R: v.R, Theta: v.Theta})
		c.MaxVertexDeviation = math.Max(c.MaxVertexDeviation, d)
	}
	return c
}

// separation - расстояние через хорду на гиперболоиде: 2·asinh(|u-v|/2).
// В отличие от acosh не теряет точность на близких точках.
func separation(k kernel.Native, a, b hyperbolic.Point[float64]) float64 {
	diff := hyperbolic.FromPoint[float64](k, a).Sub(k, hyperbolic.FromPoint[float64](k, b))
	chord := math.Sqrt(math.Max(0, diff.Dot(k, diff)))
	return 2 * math.Asinh(chord/2)
}

func triple(s [3]int) [3]int {
	slices.Sort(s[:])
	return s
}

func compareKeys(x, y EdgeKey) int {
	if x[0] != y[0] {
		return x[0] - y[0]
	}
	return x[1] - y[1]
}
