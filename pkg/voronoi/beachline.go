package voronoi

import (
	"errors"
	"fmt"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
)

// ErrInvariant - нарушен инвариант пляжной линии или очереди событий.
// Такие ошибки всегда баг, а не плохие входные данные.
var ErrInvariant = errors.New("voronoi: invariant violation")

func invariant(format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...))
}

// ArcID - handle элемента пляжной линии. После удаления элемента handle
// остается нерабочим, даже если слот арены занят заново.
type ArcID struct {
	idx int32
	gen uint32
}

var NoArc = ArcID{idx: nilNode}

func (id ArcID) IsZero() bool { return id.idx == nilNode }

// Arc - упорядоченный излом: слева дуга сайта Left, справа - Right.
// Элемент (s, s) - единственная дуга самого первого сайта.
type Arc struct {
	Left  int
	Right int
}

func (a Arc) bootstrap() bool { return a.Left == a.Right }

type beachArc[T any] struct {
	arc      Arc
	bisector *hyperbolic.Bisector[T]
	// событие круга, которым владеет излом (для тройки arc, next)
	event *event[T]
}

// BeachLine - циклическая последовательность изломов, упорядоченная по углу
// при текущем радиусе заметания. Первый узел дерева - начало отсчета углов.
type BeachLine[T any] struct {
	k     kernel.Kernel[T]
	sites []hyperbolic.Site[T]
	tree  rbt[beachArc[T]]

	radius       T
	coshR, sinhR T
}

// NewBeachLine ожидает, что sites[i].ID == i.
func NewBeachLine[T any](k kernel.Kernel[T], sites []hyperbolic.Site[T]) *BeachLine[T] {
	for i, s := range sites {
		if s.ID != i {
			invariant("site %d stored at index %d", s.ID, i)
		}
	}
	zero := k.FromFloat(0)
	return &BeachLine[T]{
		k:      k,
		sites:  sites,
		tree:   newRBT[beachArc[T]](),
		radius: zero,
		coshR:  k.Cosh(zero),
		sinhR:  zero,
	}
}

func (b *BeachLine[T]) Size() int { return b.tree.size }

func (b *BeachLine[T]) Radius() T { return b.radius }

// SetRadius сдвигает радиус, при котором считаются углы изломов.
func (b *BeachLine[T]) SetRadius(r T) {
	if b.k.Cmp(r, b.radius) < 0 {
		invariant("sweep radius decreased from %v to %v", b.k.Float(b.radius), b.k.Float(r))
	}
	b.radius = r
	b.coshR = b.k.Cosh(r)
	b.sinhR = b.k.Sinh(r)
}

func (b *BeachLine[T]) handle(i int32) ArcID {
	if i == nilNode {
		return NoArc
	}
	return ArcID{idx: i, gen: b.tree.n(i).gen}
}

func (b *BeachLine[T]) resolve(id ArcID) int32 {
	if !b.tree.live(id.idx, id.gen) {
		invariant("stale arc handle %v", id)
	}
	return id.idx
}

func (b *BeachLine[T]) Alive(id ArcID) bool {
	return b.tree.live(id.idx, id.gen)
}

func (b *BeachLine[T]) First() ArcID {
	return b.handle(b.tree.first())
}

// Next - следующий излом по кругу.
func (b *BeachLine[T]) Next(id ArcID) ArcID {
	next := b.tree.n(b.resolve(id)).next
	if next == nilNode {
		next = b.tree.first()
	}
	return b.handle(next)
}

// Prev - предыдущий излом по кругу.
func (b *BeachLine[T]) Prev(id ArcID) ArcID {
	prev := b.tree.n(b.resolve(id)).previous
	if prev == nilNode {
		prev = b.tree.last()
	}
	return b.handle(prev)
}

func (b *BeachLine[T]) Arc(id ArcID) Arc {
	return b.tree.n(b.resolve(id)).value.arc
}

// Arcs - все изломы в порядке обхода, начиная с First.
func (b *BeachLine[T]) Arcs() []ArcID {
	out := make([]ArcID, 0, b.tree.size)
	for i := b.tree.first(); i != nilNode; i = b.tree.n(i).next {
		out = append(out, b.handle(i))
	}
	return out
}

func (b *BeachLine[T]) angle(i int32) T {
	v := b.tree.n(i).value
	if v.arc.bootstrap() {
		return b.sites[v.arc.Left].Theta
	}
	first, _ := v.bisector.Breakpoints(b.coshR, b.sinhR)
	return first
}

// Angle - направление излома при текущем радиусе.
func (b *BeachLine[T]) Angle(id ArcID) T {
	return b.angle(b.resolve(id))
}

// Position - точка излома при текущем радиусе.
func (b *BeachLine[T]) Position(id ArcID) hyperbolic.Point[T] {
	i := b.resolve(id)
	v := b.tree.n(i).value
	theta := b.angle(i)
	if !v.arc.bootstrap() && !v.bisector.Straight && v.bisector.InDefinition(theta) {
		return v.bisector.At(theta)
	}
	left := b.sites[v.arc.Left].Point
	return hyperbolic.Point[T]{R: hyperbolic.ArcRadius(b.k, left, b.coshR, b.sinhR, theta), Theta: theta}
}

func (b *BeachLine[T]) bisector(id ArcID) *hyperbolic.Bisector[T] {
	return b.tree.n(b.resolve(id)).value.bisector
}

func (b *BeachLine[T]) event(id ArcID) *event[T] {
	return b.tree.n(b.resolve(id)).value.event
}

func (b *BeachLine[T]) setEvent(id ArcID, e *event[T]) {
	b.tree.n(b.resolve(id)).value.event = e
}

// FindArcAt находит излом, после которого лежит направление theta:
// дуга, которую пересекает луч theta, - Right найденного излома.
//
// Ключ узла - угол излома относительно первого узла, clip(angle - angle(first)),
// у первого узла ключ 0. Выбирается последний узел с ключом <= clip(theta - angle(first)).
func (b *BeachLine[T]) FindArcAt(theta T) ArcID {
	first := b.tree.first()
	if first == nilNode {
		invariant("FindArcAt on empty beachline")
	}
	if b.tree.size == 1 {
		return b.handle(first)
	}

	k := b.k
	zero := k.FromFloat(0)
	origin := b.angle(first)
	rel := hyperbolic.Clip(k, k.Sub(theta, origin))

	best := first
	for node := b.tree.root; node != nilNode; {
		key := zero
		if node != first {
			key = hyperbolic.Clip(k, k.Sub(b.angle(node), origin))
		}
		if k.Cmp(key, rel) <= 0 {
			best = node
			node = b.tree.n(node).right
		} else {
			node = b.tree.n(node).left
		}
	}
	return b.handle(best)
}

func (b *BeachLine[T]) newArc(a Arc) beachArc[T] {
	for _, id := range []int{a.Left, a.Right} {
		if id < 0 || id >= len(b.sites) {
			invariant("unknown site %d", id)
		}
	}
	v := beachArc[T]{arc: a}
	if !a.bootstrap() {
		v.bisector = hyperbolic.NewBisector(b.k, b.sites[a.Left], b.sites[a.Right])
	}
	return v
}

// InsertFirst создает элемент (s, s) первого сайта.
func (b *BeachLine[T]) InsertFirst(site int) ArcID {
	if b.tree.size != 0 {
		invariant("InsertFirst on beachline of size %d", b.tree.size)
	}
	return b.handle(b.tree.insertSuccessor(nilNode, b.newArc(Arc{Left: site, Right: site})))
}

// InsertRing строит начальную пляжную линию из сайтов одной окружности
// вокруг начала координат, перечисленных по возрастанию угла: изломы
// (s1, s2), (s2, s3), ..., (sk, s1).
func (b *BeachLine[T]) InsertRing(sites []int) []ArcID {
	if b.tree.size != 0 || len(sites) < 3 {
		invariant("ring of %d sites on beachline of size %d", len(sites), b.tree.size)
	}
	ids := make([]ArcID, len(sites))
	prev := nilNode
	for i, s := range sites {
		prev = b.tree.insertSuccessor(prev, b.newArc(Arc{Left: s, Right: sites[(i+1)%len(sites)]}))
		ids[i] = b.handle(prev)
	}
	return ids
}

// Insert расщепляет дугу справа от at: после at встают left и right.
// Элемент (s, s) при этом заменяется парой left, right.
func (b *BeachLine[T]) Insert(at ArcID, left, right Arc) (ArcID, ArcID) {
	i := b.resolve(at)
	cur := b.tree.n(i).value.arc
	if left.Left != cur.Right || left.Right != right.Left || right.Right != cur.Right {
		invariant("insert %v, %v after %v breaks the chain", left, right, cur)
	}

	if cur.bootstrap() {
		if b.tree.size != 1 {
			invariant("bootstrap element in beachline of size %d", b.tree.size)
		}
		b.tree.removeNode(i)
		l := b.tree.insertSuccessor(nilNode, b.newArc(left))
		r := b.tree.insertSuccessor(l, b.newArc(right))
		return b.handle(l), b.handle(r)
	}

	b.checkLink(i)
	l := b.tree.insertSuccessor(i, b.newArc(left))
	r := b.tree.insertSuccessor(l, b.newArc(right))
	b.checkLink(i)
	b.checkLink(l)
	b.checkLink(r)
	return b.handle(l), b.handle(r)
}

// Remove убирает излом left и следующий за ним (дуга между ними исчезла) и
// вставляет на их место излом, соединяющий соседей. Возвращает его handle.
func (b *BeachLine[T]) Remove(left ArcID) ArcID {
	if b.tree.size < 3 {
		invariant("remove from beachline of size %d", b.tree.size)
	}
	l := b.resolve(left)
	r := b.resolve(b.Next(left))
	la, ra := b.tree.n(l).value.arc, b.tree.n(r).value.arc
	if la.Right != ra.Left {
		invariant("remove of non-adjacent %v, %v", la, ra)
	}

	// при переходе через конец (l последний, r первый) anchor - новый последний
	anchor := b.tree.n(l).previous
	b.tree.removeNode(l)
	b.tree.removeNode(r)
	merged := b.tree.insertSuccessor(anchor, b.newArc(Arc{Left: la.Left, Right: ra.Right}))

	b.checkLink(merged)
	b.checkLink(b.resolve(b.Prev(b.handle(merged))))
	return b.handle(merged)
}

// checkLink проверяет звено цепочки между i и следующим изломом.
func (b *BeachLine[T]) checkLink(i int32) {
	next := b.tree.n(i).next
	if next == nilNode {
		next = b.tree.first()
	}
	a, n := b.tree.n(i).value.arc, b.tree.n(next).value.arc
	if a.Right != n.Left {
		invariant("broken chain %v -> %v", a, n)
	}
}

// Validate проверяет всю структуру: цепочку, связный список и красно-черные
// свойства дерева.
func (b *BeachLine[T]) Validate() error {
	if b.tree.size == 0 {
		return nil
	}
	if b.tree.n(b.tree.root).red || b.tree.blackHeight(b.tree.root) < 0 {
		return fmt.Errorf("%w: red-black properties broken", ErrInvariant)
	}

	count := 0
	prev := nilNode
	for i := b.tree.first(); i != nilNode; i = b.tree.n(i).next {
		if b.tree.n(i).previous != prev {
			return fmt.Errorf("%w: list link broken at node %d", ErrInvariant, i)
		}
		prev = i
		count++
		if count > b.tree.size {
			return fmt.Errorf("%w: list longer than tree", ErrInvariant)
		}
	}
	if count != b.tree.size {
		return fmt.Errorf("%w: list has %d nodes, tree %d", ErrInvariant, count, b.tree.size)
	}

	ids := b.Arcs()
	for j, id := range ids {
		a, n := b.Arc(id), b.Arc(ids[(j+1)%len(ids)])
		if a.Right != n.Left {
			return fmt.Errorf("%w: broken chain %v -> %v", ErrInvariant, a, n)
		}
		if a.bootstrap() && len(ids) != 1 {
			return fmt.Errorf("%w: bootstrap element %v among %d", ErrInvariant, a, len(ids))
		}
	}
	return nil
}
