// Package hyperbolic - примитивы гиперболической плоскости в полярных координатах:
// точки, расстояние, изометрии, модель гиперболоида и серединные перпендикуляры.
//
// Все функции обобщены по числовому ядру kernel.Kernel[T].
package hyperbolic

import (
	"errors"

	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
)

// ErrContract - вызывающий нарушил контракт примитива (например, вычислил
// бисектрису вне интервала определения). Это ошибка программы, а не входных данных.
var ErrContract = errors.New("hyperbolic: contract violation")

// Point - точка в полярных координатах: R >= 0, Theta в [0, 2π).
type Point[T any] struct {
	R     T
	Theta T
}

// Site - точка с устойчивым идентификатором (порядковый номер во входе).
type Site[T any] struct {
	Point[T]
	ID int
}

// NewPoint переводит float64 координаты в представление ядра, угол приводится к [0, 2π).
func NewPoint[T any](k kernel.Kernel[T], r, theta float64) Point[T] {
	return Point[T]{R: k.FromFloat(r), Theta: Clip(k, k.FromFloat(theta))}
}

// NewSites нумерует точки в порядке входа.
func NewSites[T any](points []Point[T]) []Site[T] {
	sites := make([]Site[T], len(points))
	for i, p := range points {
		sites[i] = Site[T]{Point: p, ID: i}
	}
	return sites
}

// Tau - 2π в представлении ядра.
func Tau[T any](k kernel.Kernel[T]) T {
	return k.Add(k.Pi(), k.Pi())
}

// Clip приводит угол к диапазону [0, 2π).
func Clip[T any](k kernel.Kernel[T], x T) T {
	tau := Tau(k)
	for k.Sign(x) < 0 {
		x = k.Add(x, tau)
	}
	for k.Cmp(x, tau) >= 0 {
		x = k.Sub(x, tau)
	}
	return x
}

// AngularDistance - кратчайшее расстояние между двумя направлениями, в [0, π].
func AngularDistance[T any](k kernel.Kernel[T], a, b T) T {
	d1 := Clip(k, k.Sub(a, b))
	d2 := Clip(k, k.Sub(b, a))
	if k.Cmp(d1, d2) < 0 {
		return d1
	}
	return d2
}

// Distance - гиперболическое расстояние между s и t:
// acosh(cosh r_s cosh r_t - sinh r_s cos(θ_s-θ_t) sinh r_t).
func Distance[T any](k kernel.Kernel[T], s, t Point[T]) T {
	ch := k.Mul(k.Cosh(s.R), k.Cosh(t.R))
	sh := k.Mul(k.Mul(k.Sinh(s.R), k.Cos(k.Sub(s.Theta, t.Theta))), k.Sinh(t.R))
	return k.Acosh(k.Sub(ch, sh))
}
