package siteio

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/voronoi"
)

func TestReadSites(t *testing.T) {
	in := "2.43 3\n\n  2.19   2  \n0.87 6\r\n1.23 9.2\n"
	points, err := ReadSites(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []hyperbolic.Point[float64]{
		{R: 3, Theta: 2.43},
		{R: 2, Theta: 2.19},
		{R: 6, Theta: 0.87},
		{R: 9.2, Theta: 1.23},
	}, points)
}

func TestReadSitesErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line string
	}{
		{"one field", "1 2\n3\n", "line 2"},
		{"three fields", "1 2 3\n", "line 1"},
		{"bad angle", "\nx 2\n", "line 2"},
		{"bad radius", "1 2\n1 2\n1 r\n", "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSites(strings.NewReader(tt.in))
			require.ErrorIs(t, err, ErrFormat)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestReadSitesEmpty(t *testing.T) {
	points, err := ReadSites(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestWriteSitesRoundTrip(t *testing.T) {
	points := []hyperbolic.Point[float64]{{R: 1.5, Theta: 0.25}, {R: 3.125, Theta: 6}}

	var buf bytes.Buffer
	require.NoError(t, WriteSites(&buf, points))
	assert.Equal(t, "0.250000 1.500000\n6.000000 3.125000\n", buf.String())

	back, err := ReadSites(&buf)
	require.NoError(t, err)
	assert.Equal(t, points, back)
}

func TestWriteDiagram(t *testing.T) {
	d := voronoi.NewDiagram()
	d.Vertices = append(d.Vertices, voronoi.Vertex{R: 0.5, Theta: 2, Sites: [3]int{0, 1, 2}})
	d.Edges = append(d.Edges,
		voronoi.Edge{SiteA: 2, SiteB: 0, Start: 0, End: voronoi.NoVertex},
		voronoi.Edge{SiteA: 1, SiteB: 2, Start: 0, End: voronoi.NoVertex},
	)

	var v, tr bytes.Buffer
	require.NoError(t, WriteVertices(&v, d))
	require.NoError(t, WriteTriangulation(&tr, d))
	assert.Equal(t, "0.500000000 2.000000000\n", v.String())
	assert.Equal(t, "2 0\n1 2\n", tr.String())
}

func TestFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.txt")
	points := []hyperbolic.Point[float64]{{R: 2, Theta: 1}}

	require.NoError(t, WriteFile(path, func(w io.Writer) error { return WriteSites(w, points) }))
	back, err := ReadSitesFile(path)
	require.NoError(t, err)
	assert.Equal(t, points, back)

	_, err = ReadSitesFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
