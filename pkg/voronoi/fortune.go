package voronoi

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
	"github.com/0x0FACED/go-hyperfortune/pkg/logger"
)

// Stats - счетчики одного прогона.
type Stats struct {
	Sites        int
	Duplicates   int
	CircleEvents int
	Stale        int
	Cancelled    int
}

// Fortune - заметание окружностью растущего радиуса с центром в начале
// координат. Один экземпляр - один прогон, не для конкурентного использования.
type Fortune[T any] struct {
	k       kernel.Kernel[T]
	diagram *Diagram
	sites   []hyperbolic.Site[T]
	beach   *BeachLine[T]
	queue   *eventQueue[T]

	radius T
	edges  map[EdgeKey]int
	// ребро двух первых сайтов публикуется только со следующим событием сайта
	pending *[2]int
	seq     int
	last    *hyperbolic.Site[T]
	stats   Stats

	Logger *logger.ZapLogger
}

// NewFortune готовит прогон над sites; sites[i].ID должен быть равен i.
func NewFortune[T any](k kernel.Kernel[T], diagram *Diagram, sites []hyperbolic.Site[T], log *logger.ZapLogger) *Fortune[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Fortune[T]{
		k:       k,
		diagram: diagram,
		sites:   sites,
		beach:   NewBeachLine(k, sites),
		queue:   newEventQueue(k),
		radius:  k.FromFloat(0),
		edges:   make(map[EdgeKey]int),
		Logger:  log.With(zap.String("run", uuid.NewString()), zap.String("kernel", k.Name())),
	}
}

func (f *Fortune[T]) Beach() *BeachLine[T] { return f.beach }

func (f *Fortune[T]) Stats() Stats { return f.stats }

// Calculate обрабатывает все события. Результат дописывается в диаграмму.
func (f *Fortune[T]) Calculate() {
	k := f.k
	f.Logger.Info("[f] Алгоритм Форчуна запущен", zap.Int("sites", len(f.sites)))

	// порядок заметания: радиус, угол, номер
	order := make([]int, len(f.sites))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		sa, sb := f.sites[a], f.sites[b]
		if c := k.Cmp(sa.R, sb.R); c != 0 {
			return c
		}
		if c := k.Cmp(sa.Theta, sb.Theta); c != 0 {
			return c
		}
		return sa.ID - sb.ID
	})
	for rank, i := range order {
		f.queue.push(&event[T]{kind: siteEvent, radius: f.sites[i].R, site: i, rank: rank})
	}

	f.Logger.Debug("[f] Сайты отсортированы по радиусу", zap.Ints("order", order))

	var counter int
	for f.queue.len() > 0 {
		e := f.queue.pop()
		if k.Cmp(e.radius, f.radius) > 0 {
			f.radius = e.radius
		}
		f.beach.SetRadius(f.radius)

		f.Logger.Debug("[f-for] Событие",
			zap.Int("c", counter),
			zap.Stringer("kind", e.kind),
			zap.Float64("radius", k.Float(f.radius)),
			zap.Int("queue", f.queue.len()),
			zap.Int("beach", f.beach.Size()))
		counter++

		switch e.kind {
		case siteEvent:
			f.handleSite(e)
		case circleEvent:
			f.handleCircle(e)
		}
	}

	f.Logger.Info("[f] Алгоритм завершен!",
		zap.Int("edges", len(f.diagram.Edges)),
		zap.Int("vertices", len(f.diagram.Vertices)),
		zap.Int("beach", f.beach.Size()),
		zap.Int("duplicates", f.stats.Duplicates),
		zap.Int("stale", f.stats.Stale))
}

// duplicate сравнивает координаты с допуском ядра. Для совпадающих точек
// acosh расстояния теряет половину разрядов, поэтому расстояние не годится.
func (f *Fortune[T]) duplicate(a, b hyperbolic.Site[T]) bool {
	k := f.k
	if !k.Equal(a.R, b.R) {
		return false
	}
	zero := k.FromFloat(0)
	return k.Equal(a.R, zero) || k.Equal(hyperbolic.AngularDistance(k, a.Theta, b.Theta), zero)
}

func (f *Fortune[T]) handleSite(e *event[T]) {
	k := f.k
	site := f.sites[e.site]

	if f.last != nil && f.duplicate(*f.last, site) {
		f.stats.Duplicates++
		f.Logger.Error("[f-site] Найден дубликат!",
			zap.Int("site", site.ID), zap.Int("previous", f.last.ID),
			zap.Float64("r", k.Float(site.R)), zap.Float64("theta", k.Float(site.Theta)))
		return
	}
	f.last = &site
	f.stats.Sites++

	f.Logger.Debug("[f-site] Новый сайт",
		zap.Int("site", site.ID), zap.Float64("r", k.Float(site.R)), zap.Float64("theta", k.Float(site.Theta)))

	switch f.beach.Size() {
	case 0:
		group := f.firstGroup(site)
		if len(group) >= 3 {
			f.ring(group)
			return
		}
		f.beach.InsertFirst(site.ID)
		if len(group) == 2 {
			f.bootstrap(group[1])
		}
		return
	case 1:
		f.bootstrap(site)
		return
	}

	if f.pending != nil {
		f.publish(f.pending[0], f.pending[1])
		f.pending = nil
	}

	at := f.beach.FindArcAt(site.Theta)
	h := f.beach.Arc(at).Right
	f.Logger.Debug("[f-site] Дуга под сайтом", zap.Int("site", site.ID), zap.Int("arc", h))

	f.cancel(at)
	_, right := f.beach.Insert(at, Arc{Left: h, Right: site.ID}, Arc{Left: site.ID, Right: h})
	f.publish(site.ID, h)

	f.schedule(at)
	f.schedule(right)
}

// bootstrap заменяет единственную дугу парой изломов. Ребро пары пока
// не публикуется: у двух сайтов диаграмма считается пустой.
func (f *Fortune[T]) bootstrap(site hyperbolic.Site[T]) {
	first := f.beach.First()
	h := f.beach.Arc(first).Left
	f.beach.Insert(first, Arc{Left: h, Right: site.ID}, Arc{Left: site.ID, Right: h})
	f.pending = &[2]int{site.ID, h}
}

// firstGroup забирает из очереди все сайты с тем же радиусом, что и первый.
// Дубликаты отбрасываются.
func (f *Fortune[T]) firstGroup(first hyperbolic.Site[T]) []hyperbolic.Site[T] {
	k := f.k
	group := []hyperbolic.Site[T]{first}
	for {
		next := f.queue.peek()
		if next == nil || next.kind != siteEvent || k.Cmp(next.radius, first.R) != 0 {
			break
		}
		f.queue.pop()

		site := f.sites[next.site]
		if f.duplicate(*f.last, site) {
			f.stats.Duplicates++
			f.Logger.Error("[f-site] Найден дубликат!", zap.Int("site", site.ID), zap.Int("previous", f.last.ID))
			continue
		}
		f.last = &site
		f.stats.Sites++
		group = append(group, site)
	}
	return group
}

// ring строит начальную пляжную линию для трех и более сайтов на одной
// окружности вокруг начала координат. При радиусе заметания r все их дуги
// вырождены, и расщепление дуг дает неверный порядок изломов. Вместо этого
// изломы соседних по углу сайтов лежат на прямых бисектрисах, а все ребра
// начинаются в общей вершине - начале координат.
func (f *Fortune[T]) ring(group []hyperbolic.Site[T]) {
	ids := make([]int, len(group))
	for i, s := range group {
		ids[i] = s.ID
	}
	f.Logger.Debug("[f-site] Сайты на одной окружности", zap.Ints("sites", ids))

	arcs := f.beach.InsertRing(ids)
	vertex := f.diagram.addVertex(Vertex{R: 0, Theta: 0, Sites: [3]int{ids[0], ids[1], ids[2]}})
	for i := range ids {
		f.attach(ids[i], ids[(i+1)%len(ids)], vertex)
	}
	for _, id := range arcs {
		f.schedule(id)
	}
}

// actionable - событие все еще описывает пару соседних живых изломов и
// принадлежит левому из них.
func (f *Fortune[T]) actionable(e *event[T]) bool {
	if e.state != Pending {
		return false
	}
	if !f.beach.Alive(e.left) || !f.beach.Alive(e.right) {
		return false
	}
	if f.beach.Next(e.left) != e.right {
		return false
	}
	return f.beach.event(e.left) == e
}

func (f *Fortune[T]) handleCircle(e *event[T]) {
	k := f.k
	if !f.actionable(e) {
		f.stats.Stale++
		f.Logger.Debug("[f-circle] Устаревшее событие", zap.Int("seq", e.seq), zap.Stringer("state", e.state))
		return
	}
	e.state = Valid
	f.stats.CircleEvents++

	l, m, r := e.sites[0], e.sites[1], e.sites[2]
	vertex := f.diagram.addVertex(Vertex{
		R:     k.Float(e.vertex.R),
		Theta: k.Float(e.vertex.Theta),
		Sites: e.sites,
	})

	f.Logger.Debug("[f-circle] Дуга исчезла",
		zap.Int("arc", m), zap.Int("left", l), zap.Int("right", r),
		zap.Float64("r", k.Float(e.vertex.R)), zap.Float64("theta", k.Float(e.vertex.Theta)))

	f.attach(l, m, vertex)
	f.attach(m, r, vertex)

	f.cancel(f.beach.Prev(e.left))
	f.cancel(e.right)
	f.beach.setEvent(e.left, nil)

	merged := f.beach.Remove(e.left)
	f.attach(l, r, vertex)
	if f.Logger.Enabled(zapcore.DebugLevel) {
		p := f.beach.Position(merged)
		f.Logger.Debug("[f-circle] Новый излом",
			zap.Int("left", l), zap.Int("right", r),
			zap.Float64("r", k.Float(p.R)), zap.Float64("theta", k.Float(p.Theta)))
	}

	f.schedule(f.beach.Prev(merged))
	f.schedule(merged)
}

func (f *Fortune[T]) cancel(id ArcID) {
	e := f.beach.event(id)
	if e == nil {
		return
	}
	e.state = Cancelled
	f.beach.setEvent(id, nil)
	f.stats.Cancelled++
	f.Logger.Debug("[f-circle] Событие отменено", zap.Int("seq", e.seq))
}

// schedule планирует событие круга для дуги между left и следующим изломом.
func (f *Fortune[T]) schedule(left ArcID) {
	k := f.k
	f.cancel(left)

	right := f.beach.Next(left)
	la, ra := f.beach.Arc(left), f.beach.Arc(right)
	l, m, r := la.Left, la.Right, ra.Right
	if l == r {
		return
	}

	v, ok := hyperbolic.Circumcenter(k, f.sites[l].Point, f.sites[m].Point, f.sites[r].Point)
	if !ok {
		return
	}
	// вершина в начале координат бывает только у сайтов одного радиуса:
	// у первой окружности она уже добавлена, у следующих это не вершина
	planar := k.Sqrt(k.Add(k.Mul(v.X, v.X), k.Mul(v.Y, v.Y)))
	if k.Equal(planar, k.FromFloat(0)) {
		return
	}
	center := v.Point(k)
	vanish := k.Add(center.R, hyperbolic.DistanceVec(k, v, hyperbolic.FromPoint(k, f.sites[m].Point)))

	if k.Less(vanish, f.radius) {
		f.Logger.Debug("[f-circle] Событие в прошлом",
			zap.Ints("sites", []int{l, m, r}), zap.Float64("vanish", k.Float(vanish)))
		return
	}
	if !f.converges(left, vanish, center.Theta) || !f.converges(right, vanish, center.Theta) {
		f.Logger.Debug("[f-circle] Изломы не сходятся",
			zap.Ints("sites", []int{l, m, r}), zap.Float64("vanish", k.Float(vanish)))
		return
	}

	at := vanish
	if k.Cmp(at, f.radius) < 0 {
		at = f.radius
	}
	e := &event[T]{
		kind:   circleEvent,
		radius: at,
		seq:    f.seq,
		left:   left,
		right:  right,
		vertex: center,
		sites:  [3]int{l, m, r},
		state:  Pending,
	}
	f.seq++
	f.beach.setEvent(left, e)
	f.queue.push(e)

	f.Logger.Debug("[f-circle] Событие запланировано",
		zap.Int("seq", e.seq), zap.Ints("sites", []int{l, m, r}), zap.Float64("vanish", k.Float(vanish)))
}

// converges проверяет, что при радиусе vanish вершина лежит у нужного из
// двух изломов пары, а не у противоположного.
func (f *Fortune[T]) converges(id ArcID, vanish, theta T) bool {
	k := f.k
	expected, other := f.beach.bisector(id).Breakpoints(k.Cosh(vanish), k.Sinh(vanish))
	toExpected := hyperbolic.AngularDistance(k, theta, expected)
	toOther := hyperbolic.AngularDistance(k, theta, other)
	return !k.Less(toOther, toExpected)
}

// publish добавляет ребро пары, если его еще нет, и возвращает его индекс.
func (f *Fortune[T]) publish(a, b int) int {
	key := NewEdgeKey(a, b)
	if i, ok := f.edges[key]; ok {
		return i
	}
	i := f.diagram.addEdge(a, b)
	f.edges[key] = i
	f.Logger.Debug("[f] Новое ребро", zap.Int("a", a), zap.Int("b", b))
	return i
}

func (f *Fortune[T]) attach(a, b, vertex int) {
	f.diagram.attach(f.publish(a, b), vertex)
}
