package kernel

import "math"

// DefaultEpsilon - допуск нативного ядра.
const DefaultEpsilon = 1e-9

// atanhLimit - наибольший аргумент Atanh, который еще дает конечный результат.
var atanhLimit = math.Nextafter(1, 0)

// Native - ядро двойной точности поверх пакета math.
type Native struct {
	eps float64
}

func NewNative() Native {
	return Native{eps: DefaultEpsilon}
}

func (Native) Name() string { return "double" }

func (Native) FromFloat(x float64) float64 { return x }
func (Native) Float(x float64) float64     { return x }
func (Native) Pi() float64                 { return math.Pi }

func (Native) Add(x, y float64) float64 { return x + y }
func (Native) Sub(x, y float64) float64 { return x - y }
func (Native) Mul(x, y float64) float64 { return x * y }
func (Native) Quo(x, y float64) float64 { return x / y }
func (Native) Neg(x float64) float64    { return -x }
func (Native) Abs(x float64) float64    { return math.Abs(x) }

func (Native) Sqrt(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}

func (Native) Sin(x float64) float64 { return math.Sin(x) }
func (Native) Cos(x float64) float64 { return math.Cos(x) }

func (Native) Acos(x float64) float64 {
	return math.Acos(clamp(x, -1, 1))
}

func (Native) Atan2(y, x float64) float64 { return math.Atan2(y, x) }

func (Native) Sinh(x float64) float64 { return math.Sinh(x) }
func (Native) Cosh(x float64) float64 { return math.Cosh(x) }

func (Native) Acosh(x float64) float64 {
	if x < 1 {
		return 0
	}
	return math.Acosh(x)
}

func (Native) Atanh(x float64) float64 {
	return math.Atanh(clamp(x, -atanhLimit, atanhLimit))
}

func (Native) Cmp(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func (Native) Sign(x float64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func (n Native) Eps() float64 { return n.eps }

func (n Native) Equal(x, y float64) bool {
	return math.Abs(x-y) <= n.eps
}

func (n Native) Less(x, y float64) bool {
	return x < y-n.eps
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

var _ Kernel[float64] = Native{}
