package hyperbolic

import "github.com/0x0FACED/go-hyperfortune/pkg/kernel"

// Cosine - волна amp·cos(θ + phase) + C.
//
// Амплитуда и фаза хранятся как вектор (X, Y) = amp∠phase, поэтому сумма волн
// одной частоты - это сумма векторов, без тригонометрии.
type Cosine[T any] struct {
	X, Y T
	C    T
}

func NewCosine[T any](k kernel.Kernel[T], amp, phase, c T) Cosine[T] {
	return Cosine[T]{X: k.Mul(amp, k.Cos(phase)), Y: k.Mul(amp, k.Sin(phase)), C: c}
}

func (w Cosine[T]) Add(k kernel.Kernel[T], o Cosine[T]) Cosine[T] {
	return Cosine[T]{X: k.Add(w.X, o.X), Y: k.Add(w.Y, o.Y), C: k.Add(w.C, o.C)}
}

func (w Cosine[T]) Sub(k kernel.Kernel[T], o Cosine[T]) Cosine[T] {
	return Cosine[T]{X: k.Sub(w.X, o.X), Y: k.Sub(w.Y, o.Y), C: k.Sub(w.C, o.C)}
}

func (w Cosine[T]) Scale(k kernel.Kernel[T], a T) Cosine[T] {
	return Cosine[T]{X: k.Mul(a, w.X), Y: k.Mul(a, w.Y), C: k.Mul(a, w.C)}
}

func (w Cosine[T]) Amp(k kernel.Kernel[T]) T {
	return k.Sqrt(k.Add(k.Mul(w.X, w.X), k.Mul(w.Y, w.Y)))
}

// Phase в [0, 2π).
func (w Cosine[T]) Phase(k kernel.Kernel[T]) T {
	return Clip(k, k.Atan2(w.Y, w.X))
}

// At - значение волны в точке θ.
func (w Cosine[T]) At(k kernel.Kernel[T], theta T) T {
	return k.Add(k.Sub(k.Mul(w.X, k.Cos(theta)), k.Mul(w.Y, k.Sin(theta))), w.C)
}

// Zeros - два нуля волны. Если |C| > amp, нулей нет, и acos прижимается
// к краю: оба значения совпадают с экстремумом.
func (w Cosine[T]) Zeros(k kernel.Kernel[T]) (T, T) {
	amp := w.Amp(k)
	phase := w.Phase(k)
	if k.Sign(amp) == 0 {
		return phase, phase
	}
	z := k.Acos(k.Quo(k.Neg(w.C), amp))
	return Clip(k, k.Sub(z, phase)), Clip(k, k.Sub(k.Neg(z), phase))
}
