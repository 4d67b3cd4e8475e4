package hyperbolic

import "github.com/0x0FACED/go-hyperfortune/pkg/kernel"

// Translate сдвигает точку вдоль полярной оси на d (d > 0 - в сторону θ = 0).
//
// Точки ниже оси (θ > π) отражаются относительно нее, сдвигаются и отражаются
// обратно. Для точек на оси (θ = 0 или π) общая формула делит на ноль,
// поэтому там считается напрямую по радиусу.
func Translate[T any](k kernel.Kernel[T], p Point[T], d T) Point[T] {
	if k.Sign(d) == 0 {
		return p
	}

	pi := k.Pi()
	zero := k.FromFloat(0)

	if k.Sign(p.Theta) != 0 && k.Cmp(p.Theta, pi) != 0 {
		q := p
		mirrored := k.Cmp(p.Theta, pi) > 0
		if mirrored {
			q.Theta = k.Sub(Tau(k), p.Theta)
		}

		// точка, которая после сдвига окажется в начале координат
		absD := k.Abs(d)
		ref := Point[T]{R: absD, Theta: zero}
		if k.Sign(d) > 0 {
			ref.Theta = pi
		}

		radial := Distance(k, q, ref)

		num := k.Sub(k.Mul(k.Cosh(absD), k.Cosh(radial)), k.Cosh(q.R))
		den := k.Mul(k.Sinh(absD), k.Sinh(radial))

		// acos прижимается к [-1, 1]; при нулевом знаменателе угол 0
		angle := zero
		if k.Sign(den) != 0 {
			angle = k.Acos(k.Quo(num, den))
		}
		if k.Sign(d) < 0 {
			angle = k.Sub(pi, angle)
		}
		if mirrored {
			angle = k.Sub(Tau(k), angle)
		}
		return Point[T]{R: radial, Theta: Clip(k, angle)}
	}

	// точка на оси: при слишком большом сдвиге переходим через начало координат
	if k.Sign(p.Theta) == 0 {
		r := k.Add(p.R, d)
		theta := zero
		if k.Sign(r) < 0 {
			theta = pi
		}
		return Point[T]{R: k.Abs(r), Theta: theta}
	}

	r := k.Sub(p.R, d)
	theta := pi
	if k.Sign(r) < 0 {
		theta = zero
	}
	return Point[T]{R: k.Abs(r), Theta: theta}
}

// Rotate поворачивает точку вокруг начала координат на angle.
func Rotate[T any](k kernel.Kernel[T], p Point[T], angle T) Point[T] {
	return Point[T]{R: p.R, Theta: Clip(k, k.Add(p.Theta, angle))}
}

// Recenter переносит сайты так, что center оказывается в начале координат.
// Идентификаторы сохраняются, попарные расстояния не меняются.
func Recenter[T any](k kernel.Kernel[T], sites []Site[T], center Point[T]) []Site[T] {
	out := make([]Site[T], len(sites))
	back := k.Neg(center.Theta)
	shift := k.Neg(center.R)
	for i, s := range sites {
		p := Translate(k, Rotate(k, s.Point, back), shift)
		out[i] = Site[T]{Point: p, ID: s.ID}
	}
	return out
}
