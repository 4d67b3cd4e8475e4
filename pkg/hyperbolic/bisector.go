package hyperbolic

import (
	"fmt"

	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
)

// Bisector - серединный перпендикуляр двух сайтов.
//
// Сайты упорядочены: Near ближе к началу координат. Для кривой бисектрисы
//
//	tanh r(θ) = Numerator / Denominator(θ),
//
// Numerator = cosh r_far - cosh r_near,
// Denominator(θ) = sinh r_far cos(θ-θ_far) - sinh r_near cos(θ-θ_near).
// Кривая определена там, где Denominator(θ) > Numerator: [ThetaStart, ThetaEnd).
//
// При равных радиусах Numerator == 0, и бисектриса - прямая через начало
// координат под углом StraightAngle вместе с противоположным лучом.
type Bisector[T any] struct {
	k kernel.Kernel[T]

	Near, Far Site[T]
	// конструктор получил сайты в обратном порядке
	swapped bool

	Numerator   T
	Denominator Cosine[T]
	nearWave    Cosine[T]
	coshNear    T

	ThetaStart, ThetaEnd T

	Straight      bool
	StraightAngle T
}

// NewBisector строит бисектрису пары (s, t). Порядок аргументов задает
// ориентацию: первый результат Breakpoints - точка излома (s, t).
func NewBisector[T any](k kernel.Kernel[T], s, t Site[T]) *Bisector[T] {
	b := &Bisector[T]{k: k, Near: s, Far: t}
	if k.Cmp(s.R, t.R) > 0 {
		b.Near, b.Far = t, s
		b.swapped = true
	}

	zero := k.FromFloat(0)
	b.coshNear = k.Cosh(b.Near.R)
	b.Numerator = k.Sub(k.Cosh(b.Far.R), b.coshNear)
	b.nearWave = NewCosine(k, k.Sinh(b.Near.R), k.Neg(b.Near.Theta), zero)
	farWave := NewCosine(k, k.Sinh(b.Far.R), k.Neg(b.Far.Theta), zero)
	b.Denominator = farWave.Sub(k, b.nearWave)

	if k.Sign(b.Numerator) == 0 {
		b.Straight = true
		b.StraightAngle = Clip(k, k.Mul(k.Add(s.Theta, t.Theta), k.FromFloat(0.5)))
		return b
	}

	b.calcDefinition()
	return b
}

// calcDefinition - кривая определена, пока Denominator(θ) > Numerator:
// между нулями волны Denominator - Numerator.
func (b *Bisector[T]) calcDefinition() {
	k := b.k
	zero := k.FromFloat(0)
	// amp > Numerator всегда: sinh r_far - sinh r_near > cosh r_far - cosh r_near
	w := b.Denominator.Sub(k, Cosine[T]{X: zero, Y: zero, C: b.Numerator})
	b.ThetaEnd, b.ThetaStart = w.Zeros(k)
}

// InDefinition сообщает, лежит ли θ в интервале определения кривой.
// Прямая бисектриса определена везде.
func (b *Bisector[T]) InDefinition(theta T) bool {
	if b.Straight {
		return true
	}
	k := b.k
	width := Clip(k, k.Sub(b.ThetaEnd, b.ThetaStart))
	return k.Cmp(Clip(k, k.Sub(theta, b.ThetaStart)), width) < 0
}

// At - точка бисектрисы в направлении θ. Паникует на прямой бисектрисе и
// вне интервала определения.
func (b *Bisector[T]) At(theta T) Point[T] {
	k := b.k
	if b.Straight {
		panic(fmt.Errorf("%w: At on straight bisector (%d, %d)", ErrContract, b.Near.ID, b.Far.ID))
	}
	if !b.InDefinition(theta) {
		panic(fmt.Errorf("%w: θ=%v outside definition of bisector (%d, %d)",
			ErrContract, k.Float(theta), b.Near.ID, b.Far.ID))
	}
	den := b.Denominator.At(k, theta)
	return Point[T]{R: k.Atanh(k.Quo(b.Numerator, den)), Theta: Clip(k, theta)}
}

// Breakpoints - две точки излома пары на радиусе заметания R.
// first - излом (s, t) в порядке аргументов конструктора, second - (t, s).
func (b *Bisector[T]) Breakpoints(coshR, sinhR T) (first, second T) {
	enter, leave := b.breakpoints(coshR, sinhR)
	if b.swapped {
		return leave, enter
	}
	return enter, leave
}

// breakpoints возвращает (near, far) и (far, near).
func (b *Bisector[T]) breakpoints(coshR, sinhR T) (T, T) {
	k := b.k
	pi := k.Pi()

	if b.Straight {
		// дуга far лежит по ту сторону луча, куда смотрит θ_far
		enter := b.StraightAngle
		if k.Cmp(Clip(k, k.Sub(b.Far.Theta, enter)), pi) >= 0 {
			enter = Clip(k, k.Add(enter, pi))
		}
		return enter, Clip(k, k.Add(enter, pi))
	}

	a := k.Sub(coshR, b.coshNear)
	wave := b.Denominator.Scale(k, a).Add(k, b.nearWave.Scale(k, b.Numerator))
	amp := wave.Amp(k)
	if k.Sign(amp) == 0 {
		return b.Far.Theta, b.Far.Theta
	}
	phase := k.Atan2(wave.Y, wave.X)
	z := k.Acos(k.Quo(k.Mul(b.Numerator, sinhR), amp))
	return Clip(k, k.Sub(k.Neg(phase), z)), Clip(k, k.Add(k.Neg(phase), z))
}

// ArcRadius - радиус дуги сайта s в направлении θ при радиусе заметания R:
// tanh ρ = (cosh R - cosh r_s) / (sinh R - sinh r_s cos(θ-θ_s)).
func ArcRadius[T any](k kernel.Kernel[T], s Point[T], coshR, sinhR, theta T) T {
	num := k.Sub(coshR, k.Cosh(s.R))
	den := k.Sub(sinhR, k.Mul(k.Sinh(s.R), k.Cos(k.Sub(theta, s.Theta))))
	if k.Sign(den) <= 0 {
		return k.FromFloat(0)
	}
	return k.Atanh(k.Quo(num, den))
}
