package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	a := &Diagram{
		Edges: []Edge{
			{SiteA: 0, SiteB: 1, Start: 0, End: NoVertex},
			{SiteA: 2, SiteB: 1, Start: 0, End: NoVertex},
			{SiteA: 0, SiteB: 2, Start: 0, End: NoVertex},
		},
		Vertices: []Vertex{{R: 1, Theta: 2, Sites: [3]int{0, 1, 2}}},
	}
	b := &Diagram{
		Edges: []Edge{
			{SiteA: 1, SiteB: 0, Start: 0, End: NoVertex},
			{SiteA: 1, SiteB: 2, Start: 0, End: NoVertex},
			{SiteA: 3, SiteB: 1, Start: NoVertex, End: NoVertex},
		},
		Vertices: []Vertex{{R: 1.001, Theta: 2, Sites: [3]int{2, 0, 1}}},
	}

	c := Compare(a, b)
	assert.Equal(t, 2, c.Matching)
	assert.Equal(t, []EdgeKey{{0, 2}}, c.Missing)
	assert.Equal(t, []EdgeKey{{1, 3}}, c.Extra)
	assert.False(t, c.Equal())
	assert.Equal(t, 1, c.MatchedVertices)
	assert.InDelta(t, 0.001, c.MaxVertexDeviation, 1e-9)

	same := Compare(a, a)
	assert.True(t, same.Equal())
	assert.Equal(t, 0.0, same.MaxVertexDeviation)
}

func TestDiagramAttach(t *testing.T) {
	d := NewDiagram()
	e := d.addEdge(4, 2)
	v0 := d.addVertex(Vertex{})
	v1 := d.addVertex(Vertex{R: 1})

	d.attach(e, v0)
	d.attach(e, v0)
	assert.Equal(t, Edge{SiteA: 4, SiteB: 2, Start: v0, End: NoVertex}, d.Edges[e])
	assert.False(t, d.Edges[e].Bounded())

	d.attach(e, v1)
	assert.True(t, d.Edges[e].Bounded())
	assert.Equal(t, EdgeKey{2, 4}, d.Edges[e].Key())
}
