package voronoi

// nilNode - отсутствующая ссылка в арене.
const nilNode int32 = -1

// rbt - красно-черное дерево на арене: узлы лежат в одном слайсе, ссылки -
// индексы. Порядок задается позицией вставки (insertSuccessor), а не ключом;
// узлы дополнительно связаны в список previous/next.
//
// Освобожденный узел уходит в free list, его поколение увеличивается, так что
// старый handle на него перестает быть живым.
type rbt[V any] struct {
	nodes []rbtNode[V]
	free  []int32
	root  int32
	size  int
}

type rbtNode[V any] struct {
	value    V
	left     int32
	right    int32
	parent   int32
	previous int32
	next     int32
	red      bool
	alive    bool
	gen      uint32
}

func newRBT[V any]() rbt[V] {
	return rbt[V]{root: nilNode}
}

func (t *rbt[V]) n(i int32) *rbtNode[V] {
	return &t.nodes[i]
}

func (t *rbt[V]) isRed(i int32) bool {
	return i != nilNode && t.nodes[i].red
}

// live сообщает, что i - живой узел поколения gen.
func (t *rbt[V]) live(i int32, gen uint32) bool {
	return i >= 0 && int(i) < len(t.nodes) && t.nodes[i].alive && t.nodes[i].gen == gen
}

func (t *rbt[V]) alloc(value V) int32 {
	var i int32
	if last := len(t.free) - 1; last >= 0 {
		i = t.free[last]
		t.free = t.free[:last]
	} else {
		t.nodes = append(t.nodes, rbtNode[V]{})
		i = int32(len(t.nodes) - 1)
	}
	gen := t.nodes[i].gen
	t.nodes[i] = rbtNode[V]{
		value:    value,
		left:     nilNode,
		right:    nilNode,
		parent:   nilNode,
		previous: nilNode,
		next:     nilNode,
		alive:    true,
		gen:      gen,
	}
	t.size++
	return i
}

func (t *rbt[V]) release(i int32) {
	nd := t.n(i)
	var zero V
	nd.value = zero
	nd.alive = false
	nd.gen++
	t.free = append(t.free, i)
	t.size--
}

// insertSuccessor вставляет value сразу после node; node == nilNode - в начало.
func (t *rbt[V]) insertSuccessor(node int32, value V) int32 {
	successor := t.alloc(value)

	var parent int32
	if node != nilNode {
		t.n(successor).previous = node
		t.n(successor).next = t.n(node).next
		if t.n(node).next != nilNode {
			t.n(t.n(node).next).previous = successor
		}
		t.n(node).next = successor
		if t.n(node).right != nilNode {
			node = t.getFirst(t.n(node).right)
			t.n(node).left = successor
		} else {
			t.n(node).right = successor
		}
		parent = node

	} else if t.root != nilNode {
		node = t.getFirst(t.root)
		t.n(successor).previous = nilNode
		t.n(successor).next = node
		t.n(node).previous = successor
		t.n(node).left = successor
		parent = node
	} else {
		t.root = successor
		parent = nilNode
	}
	t.n(successor).parent = parent
	t.n(successor).red = true

	var grandpa, uncle int32
	node = successor
	for parent != nilNode && t.n(parent).red {
		grandpa = t.n(parent).parent
		if parent == t.n(grandpa).left {
			uncle = t.n(grandpa).right
			if t.isRed(uncle) {
				t.n(parent).red = false
				t.n(uncle).red = false
				t.n(grandpa).red = true
				node = grandpa
			} else {
				if node == t.n(parent).right {
					t.rotateLeft(parent)
					node = parent
					parent = t.n(node).parent
				}
				t.n(parent).red = false
				t.n(grandpa).red = true
				t.rotateRight(grandpa)
			}
		} else {
			uncle = t.n(grandpa).left
			if t.isRed(uncle) {
				t.n(parent).red = false
				t.n(uncle).red = false
				t.n(grandpa).red = true
				node = grandpa
			} else {
				if node == t.n(parent).left {
					t.rotateRight(parent)
					node = parent
					parent = t.n(node).parent
				}
				t.n(parent).red = false
				t.n(grandpa).red = true
				t.rotateLeft(grandpa)
			}
		}
		parent = t.n(node).parent
	}
	t.n(t.root).red = false
	return successor
}

func (t *rbt[V]) removeNode(node int32) {
	removed := node
	defer t.release(removed)

	nd := t.n(node)
	if nd.next != nilNode {
		t.n(nd.next).previous = nd.previous
	}
	if nd.previous != nilNode {
		t.n(nd.previous).next = nd.next
	}
	nd.next = nilNode
	nd.previous = nilNode

	parent := nd.parent
	left := nd.left
	right := nd.right
	var next int32
	if left == nilNode {
		next = right
	} else if right == nilNode {
		next = left
	} else {
		next = t.getFirst(right)
	}
	if parent != nilNode {
		if t.n(parent).left == node {
			t.n(parent).left = next
		} else {
			t.n(parent).right = next
		}
	} else {
		t.root = next
	}

	isRed := false
	if left != nilNode && right != nilNode {
		isRed = t.n(next).red
		t.n(next).red = t.n(node).red
		t.n(next).left = left
		t.n(left).parent = next
		if next != right {
			parent = t.n(next).parent
			t.n(next).parent = t.n(node).parent
			node = t.n(next).right
			t.n(parent).left = node
			t.n(next).right = right
			t.n(right).parent = next
		} else {
			t.n(next).parent = parent
			parent = next
			node = t.n(next).right
		}
	} else {
		isRed = t.n(node).red
		node = next
	}
	if node != nilNode {
		t.n(node).parent = parent
	}
	if isRed {
		return
	}
	if t.isRed(node) {
		t.n(node).red = false
		return
	}

	var sibling int32
	for {
		if node == t.root {
			break
		}
		if node == t.n(parent).left {
			sibling = t.n(parent).right
			if t.n(sibling).red {
				t.n(sibling).red = false
				t.n(parent).red = true
				t.rotateLeft(parent)
				sibling = t.n(parent).right
			}
			if t.isRed(t.n(sibling).left) || t.isRed(t.n(sibling).right) {
				if !t.isRed(t.n(sibling).right) {
					t.n(t.n(sibling).left).red = false
					t.n(sibling).red = true
					t.rotateRight(sibling)
					sibling = t.n(parent).right
				}
				t.n(sibling).red = t.n(parent).red
				t.n(parent).red = false
				t.n(t.n(sibling).right).red = false
				t.rotateLeft(parent)
				node = t.root
				break
			}
		} else {
			sibling = t.n(parent).left
			if t.n(sibling).red {
				t.n(sibling).red = false
				t.n(parent).red = true
				t.rotateRight(parent)
				sibling = t.n(parent).left
			}
			if t.isRed(t.n(sibling).left) || t.isRed(t.n(sibling).right) {
				if !t.isRed(t.n(sibling).left) {
					t.n(t.n(sibling).right).red = false
					t.n(sibling).red = true
					t.rotateLeft(sibling)
					sibling = t.n(parent).left
				}
				t.n(sibling).red = t.n(parent).red
				t.n(parent).red = false
				t.n(t.n(sibling).left).red = false
				t.rotateRight(parent)
				node = t.root
				break
			}
		}
		t.n(sibling).red = true
		node = parent
		parent = t.n(parent).parent
		if t.n(node).red {
			break
		}
	}
	if node != nilNode {
		t.n(node).red = false
	}
}

func (t *rbt[V]) rotateLeft(p int32) {
	q := t.n(p).right
	parent := t.n(p).parent
	if parent != nilNode {
		if t.n(parent).left == p {
			t.n(parent).left = q
		} else {
			t.n(parent).right = q
		}
	} else {
		t.root = q
	}
	t.n(q).parent = parent
	t.n(p).parent = q
	t.n(p).right = t.n(q).left
	if t.n(p).right != nilNode {
		t.n(t.n(p).right).parent = p
	}
	t.n(q).left = p
}

func (t *rbt[V]) rotateRight(p int32) {
	q := t.n(p).left
	parent := t.n(p).parent
	if parent != nilNode {
		if t.n(parent).left == p {
			t.n(parent).left = q
		} else {
			t.n(parent).right = q
		}
	} else {
		t.root = q
	}
	t.n(q).parent = parent
	t.n(p).parent = q
	t.n(p).left = t.n(q).right
	if t.n(p).left != nilNode {
		t.n(t.n(p).left).parent = p
	}
	t.n(q).right = p
}

func (t *rbt[V]) getFirst(node int32) int32 {
	for t.n(node).left != nilNode {
		node = t.n(node).left
	}
	return node
}

// first - самый левый узел или nilNode для пустого дерева.
func (t *rbt[V]) first() int32 {
	if t.root == nilNode {
		return nilNode
	}
	return t.getFirst(t.root)
}

func (t *rbt[V]) last() int32 {
	node := t.root
	if node == nilNode {
		return nilNode
	}
	for t.n(node).right != nilNode {
		node = t.n(node).right
	}
	return node
}

// blackHeight проверяет красно-черные свойства поддерева и возвращает его
// черную высоту; -1 - свойства нарушены.
func (t *rbt[V]) blackHeight(node int32) int {
	if node == nilNode {
		return 1
	}
	nd := t.n(node)
	if nd.red && (t.isRed(nd.left) || t.isRed(nd.right)) {
		return -1
	}
	for _, child := range []int32{nd.left, nd.right} {
		if child != nilNode && t.n(child).parent != node {
			return -1
		}
	}
	l, r := t.blackHeight(nd.left), t.blackHeight(nd.right)
	if l < 0 || l != r {
		return -1
	}
	if nd.red {
		return l
	}
	return l + 1
}
