package voronoi

import (
	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
)

type eventKind int8

const (
	siteEvent eventKind = iota
	circleEvent
)

func (k eventKind) String() string {
	if k == siteEvent {
		return "site"
	}
	return "circle"
}

// EventState - состояние события круга.
type EventState int8

const (
	Pending EventState = iota
	Valid
	Cancelled
)

func (s EventState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Valid:
		return "valid"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

type event[T any] struct {
	kind   eventKind
	radius T

	// site event
	site int
	rank int

	// circle event: снимок пары изломов (L,M), (M,R) на момент планирования
	seq    int
	left   ArcID
	right  ArcID
	vertex hyperbolic.Point[T]
	sites  [3]int
	// отмененное событие остается в очереди и отбрасывается при извлечении
	state  EventState
}

// eventQueue - очередь событий по возрастанию радиуса. Как и события круга
// в евклидовом варианте, хранится в красно-черном дереве: вставка спуском
// по ключу, следующее событие - крайний левый узел. Отмена меняет только
// состояние события, узел из дерева не удаляется.
type eventQueue[T any] struct {
	k    kernel.Kernel[T]
	tree rbt[*event[T]]
}

func newEventQueue[T any](k kernel.Kernel[T]) *eventQueue[T] {
	return &eventQueue[T]{k: k, tree: newRBT[*event[T]]()}
}

func (q *eventQueue[T]) len() int {
	return q.tree.size
}

// less: радиус (точно), затем site раньше circle, сайты по рангу, круги по
// порядку планирования.
func (q *eventQueue[T]) less(a, b *event[T]) bool {
	if c := q.k.Cmp(a.radius, b.radius); c != 0 {
		return c < 0
	}
	if a.kind != b.kind {
		return a.kind == siteEvent
	}
	if a.kind == siteEvent {
		return a.rank < b.rank
	}
	return a.seq < b.seq
}

func (q *eventQueue[T]) push(e *event[T]) {
	predecessor := nilNode
	node := q.tree.root
	for node != nilNode {
		nd := q.tree.n(node)
		if q.less(e, nd.value) {
			if nd.left != nilNode {
				node = nd.left
			} else {
				predecessor = nd.previous
				break
			}
		} else {
			if nd.right != nilNode {
				node = nd.right
			} else {
				predecessor = node
				break
			}
		}
	}
	q.tree.insertSuccessor(predecessor, e)
}

func (q *eventQueue[T]) peek() *event[T] {
	first := q.tree.first()
	if first == nilNode {
		return nil
	}
	return q.tree.n(first).value
}

func (q *eventQueue[T]) pop() *event[T] {
	first := q.tree.first()
	if first == nilNode {
		return nil
	}
	e := q.tree.n(first).value
	q.tree.removeNode(first)
	return e
}

