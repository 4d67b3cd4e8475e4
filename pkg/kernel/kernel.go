// Package kernel содержит числовые ядра: представление вещественного числа
// выбранной точности вместе с гиперболической тригонометрией и сравнением с допуском.
//
// Все алгоритмы пакетов hyperbolic и voronoi обобщены по Kernel[T] и
// инстанцируются один раз на выбранную точность.
package kernel

import (
	"errors"
	"fmt"
)

// Double - значение точности, которое выбирает нативное ядро float64.
const Double = 0

var ErrPrecision = errors.New("kernel: unsupported precision")

// Kernel - числовое ядро над типом T.
//
// Значения T считаются неизменяемыми: ни один метод не модифицирует аргументы,
// результат всегда новое значение. Ядро не хранит изменяемого состояния,
// поэтому один экземпляр можно использовать из нескольких горутин.
//
// Политика области определения: Acos, Acosh, Atanh и Sqrt прижимают аргумент
// к ближайшей допустимой границе вместо того, чтобы вернуть NaN.
type Kernel[T any] interface {
	Name() string

	FromFloat(x float64) T
	Float(x T) float64
	Pi() T

	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	Quo(x, y T) T
	Neg(x T) T
	Abs(x T) T
	Sqrt(x T) T

	Sin(x T) T
	Cos(x T) T
	Acos(x T) T
	Atan2(y, x T) T

	Sinh(x T) T
	Cosh(x T) T
	Acosh(x T) T
	Atanh(x T) T

	// Cmp - точное сравнение: -1, 0 или +1.
	Cmp(x, y T) int
	Sign(x T) int

	// Eps - допуск ядра. Equal и Less сравнивают с его учетом.
	Eps() T
	Equal(x, y T) bool
	Less(x, y T) bool
}

// Precisions возвращает поддерживаемые разрядности (в битах) для Decimal.
func Precisions() []int {
	out := make([]int, 0, 15)
	for bits := 32; bits <= 256; bits += 16 {
		out = append(out, bits)
	}
	return out
}

// SupportedPrecision сообщает, есть ли ядро Decimal для данной разрядности.
func SupportedPrecision(bits int) bool {
	return bits >= 32 && bits <= 256 && bits%16 == 0
}

// ParsePrecision нормализует запрошенную точность: неподдерживаемые значения
// откатываются к Double. Второе значение сообщает, что был откат.
func ParsePrecision(bits int) (int, bool) {
	if bits == Double || SupportedPrecision(bits) {
		return bits, false
	}
	return Double, true
}

func precisionError(bits int) error {
	return fmt.Errorf("%w: %d bits (want a multiple of 16 in [32, 256])", ErrPrecision, bits)
}
