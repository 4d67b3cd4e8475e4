package voronoi

// NoVertex - у ребра нет вершины с этой стороны (луч уходит на бесконечность).
const NoVertex = -1

// Edge - ребро диаграммы между ячейками SiteA и SiteB.
// Start и End - индексы в Diagram.Vertices либо NoVertex.
type Edge struct {
	SiteA int
	SiteB int
	Start int
	End   int
}

// Vertex - вершина диаграммы, равноудаленная от трех сайтов.
type Vertex struct {
	R     float64
	Theta float64
	Sites [3]int
}

// Diagram - результат построения. Ребра и вершины только добавляются.
type Diagram struct {
	Edges    []Edge
	Vertices []Vertex
}

func NewDiagram() *Diagram {
	return &Diagram{}
}

// EdgeKey - неупорядоченная пара сайтов.
type EdgeKey [2]int

func NewEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{a, b}
}

func (e Edge) Key() EdgeKey {
	return NewEdgeKey(e.SiteA, e.SiteB)
}

// Bounded - у ребра есть обе вершины.
func (e Edge) Bounded() bool {
	return e.Start != NoVertex && e.End != NoVertex
}

func (d *Diagram) addEdge(a, b int) int {
	d.Edges = append(d.Edges, Edge{SiteA: a, SiteB: b, Start: NoVertex, End: NoVertex})
	return len(d.Edges) - 1
}

func (d *Diagram) addVertex(v Vertex) int {
	d.Vertices = append(d.Vertices, v)
	return len(d.Vertices) - 1
}

// attach привязывает вершину к ребру: сначала Start, затем End.
func (d *Diagram) attach(edge, vertex int) {
	e := &d.Edges[edge]
	switch {
	case e.Start == NoVertex:
		e.Start = vertex
	case e.End == NoVertex && e.Start != vertex:
		e.End = vertex
	}
}

// EdgeSet - множество неупорядоченных пар сайтов, соединенных ребрами.
func (d *Diagram) EdgeSet() map[EdgeKey]struct{} {
	set := make(map[EdgeKey]struct{}, len(d.Edges))
	for _, e := range d.Edges {
		set[e.Key()] = struct{}{}
	}
	return set
}

// Triangulation - двойственная триангуляция Делоне как список пар сайтов
// в порядке обнаружения ребер.
func (d *Diagram) Triangulation() []EdgeKey {
	out := make([]EdgeKey, len(d.Edges))
	for i, e := range d.Edges {
		out[i] = EdgeKey{e.SiteA, e.SiteB}
	}
	return out
}
