package hyperbolic

import "github.com/0x0FACED/go-hyperfortune/pkg/kernel"

// HyperboloidVec - вектор в модели гиперболоида z² - x² - y² = 1.
// Форма Минковского: <u, v> = x·x' + y·y' - z·z'.
type HyperboloidVec[T any] struct {
	X, Y, Z T
}

// FromPoint вкладывает точку плоскости в гиперболоид.
func FromPoint[T any](k kernel.Kernel[T], p Point[T]) HyperboloidVec[T] {
	sh := k.Sinh(p.R)
	return HyperboloidVec[T]{
		X: k.Mul(sh, k.Cos(p.Theta)),
		Y: k.Mul(sh, k.Sin(p.Theta)),
		Z: k.Cosh(p.R),
	}
}

// Point - обратное отображение: r = acosh(z), θ = atan2(y, x).
func (v HyperboloidVec[T]) Point(k kernel.Kernel[T]) Point[T] {
	return Point[T]{R: k.Acosh(v.Z), Theta: Clip(k, k.Atan2(v.Y, v.X))}
}

func (v HyperboloidVec[T]) Add(k kernel.Kernel[T], u HyperboloidVec[T]) HyperboloidVec[T] {
	return HyperboloidVec[T]{X: k.Add(v.X, u.X), Y: k.Add(v.Y, u.Y), Z: k.Add(v.Z, u.Z)}
}

func (v HyperboloidVec[T]) Sub(k kernel.Kernel[T], u HyperboloidVec[T]) HyperboloidVec[T] {
	return HyperboloidVec[T]{X: k.Sub(v.X, u.X), Y: k.Sub(v.Y, u.Y), Z: k.Sub(v.Z, u.Z)}
}

func (v HyperboloidVec[T]) Scale(k kernel.Kernel[T], a T) HyperboloidVec[T] {
	return HyperboloidVec[T]{X: k.Mul(a, v.X), Y: k.Mul(a, v.Y), Z: k.Mul(a, v.Z)}
}

// Dot - скалярное произведение Минковского.
func (v HyperboloidVec[T]) Dot(k kernel.Kernel[T], u HyperboloidVec[T]) T {
	return k.Sub(k.Add(k.Mul(v.X, u.X), k.Mul(v.Y, u.Y)), k.Mul(v.Z, u.Z))
}

// Cross - векторное произведение с обращенной z-компонентой:
// результат ортогонален обоим аргументам в форме Минковского.
func (v HyperboloidVec[T]) Cross(k kernel.Kernel[T], u HyperboloidVec[T]) HyperboloidVec[T] {
	return HyperboloidVec[T]{
		X: k.Sub(k.Mul(v.Y, u.Z), k.Mul(u.Y, v.Z)),
		Y: k.Sub(k.Mul(u.X, v.Z), k.Mul(v.X, u.Z)),
		Z: k.Sub(k.Mul(v.Y, u.X), k.Mul(u.Y, v.X)),
	}
}

// Normalize проецирует времениподобный вектор на верхнюю полу гиперболоида.
// Для пространственноподобного и нулевого вектора точки нет: ok == false.
func (v HyperboloidVec[T]) Normalize(k kernel.Kernel[T]) (HyperboloidVec[T], bool) {
	sq := k.Sub(k.Mul(v.Z, v.Z), k.Add(k.Mul(v.X, v.X), k.Mul(v.Y, v.Y)))
	if k.Sign(sq) <= 0 {
		return HyperboloidVec[T]{}, false
	}
	a := k.Sqrt(sq)
	if k.Sign(v.Z) < 0 {
		a = k.Neg(a)
	}
	return HyperboloidVec[T]{X: k.Quo(v.X, a), Y: k.Quo(v.Y, a), Z: k.Quo(v.Z, a)}, true
}

// DistanceVec - расстояние между двумя точками гиперболоида: acosh(-<u, v>).
func DistanceVec[T any](k kernel.Kernel[T], u, v HyperboloidVec[T]) T {
	return k.Acosh(k.Neg(u.Dot(k, v)))
}

// Circumcenter - точка, равноудаленная от a, b и c.
// У трех точек гиперболической плоскости ее может не быть (бисектрисы не
// пересекаются) - тогда ok == false.
func Circumcenter[T any](k kernel.Kernel[T], a, b, c Point[T]) (HyperboloidVec[T], bool) {
	va, vb, vc := FromPoint(k, a), FromPoint(k, b), FromPoint(k, c)
	n := va.Sub(k, vb).Cross(k, va.Sub(k, vc))
	return n.Normalize(k)
}
