package kernel

import (
	"fmt"
	"math"

	"github.com/ericlagergren/decimal"
	dmath "github.com/ericlagergren/decimal/math"
)

// guardDigits - запас разрядов для exp/log, из которых собраны sinh, cosh и обратные.
const guardDigits = 8

// Decimal - ядро произвольной фиксированной точности.
// Разрядность задается в битах и переводится в десятичные знаки.
type Decimal struct {
	bits   int
	digits int

	// константы общие для всех вызовов и никогда не изменяются
	eps      *decimal.Big
	one      *decimal.Big
	minusOne *decimal.Big
	half     *decimal.Big
	limit    *decimal.Big
	pi       *decimal.Big
}

// NewDecimal создает ядро на bits двоичных разрядов (32..256, кратно 16).
func NewDecimal(bits int) (Decimal, error) {
	if !SupportedPrecision(bits) {
		return Decimal{}, precisionError(bits)
	}

	digits := int(math.Ceil(float64(bits) * math.Log10(2)))
	d := Decimal{
		bits:     bits,
		digits:   digits,
		eps:      decimal.New(1, digits/2),
		one:      decimal.New(1, 0),
		minusOne: decimal.New(-1, 0),
		half:     decimal.New(5, 1),
	}
	// 1 - 10^-digits
	d.limit = d.new().Sub(d.one, decimal.New(1, digits))
	d.pi = dmath.Pi(d.new())
	return d, nil
}

// MustDecimal как NewDecimal, но паникует на неподдерживаемой разрядности.
func MustDecimal(bits int) Decimal {
	d, err := NewDecimal(bits)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) Name() string { return fmt.Sprintf("decimal-%d", d.bits) }

// Bits возвращает разрядность ядра в битах.
func (d Decimal) Bits() int { return d.bits }

// Digits возвращает число десятичных знаков, с которым ведутся вычисления.
func (d Decimal) Digits() int { return d.digits }

func (d Decimal) new() *decimal.Big {
	return decimal.WithPrecision(d.digits)
}

func (d Decimal) wide() *decimal.Big {
	return decimal.WithPrecision(d.digits + guardDigits)
}

func (d Decimal) FromFloat(x float64) *decimal.Big {
	return d.new().SetFloat64(x)
}

func (d Decimal) Float(x *decimal.Big) float64 {
	f, _ := x.Float64()
	return f
}

func (d Decimal) Pi() *decimal.Big { return d.pi }

func (d Decimal) Add(x, y *decimal.Big) *decimal.Big { return d.new().Add(x, y) }
func (d Decimal) Sub(x, y *decimal.Big) *decimal.Big { return d.new().Sub(x, y) }
func (d Decimal) Mul(x, y *decimal.Big) *decimal.Big { return d.new().Mul(x, y) }
func (d Decimal) Quo(x, y *decimal.Big) *decimal.Big { return d.new().Quo(x, y) }
func (d Decimal) Neg(x *decimal.Big) *decimal.Big    { return d.new().Neg(x) }
func (d Decimal) Abs(x *decimal.Big) *decimal.Big    { return d.new().Abs(x) }

func (d Decimal) Sqrt(x *decimal.Big) *decimal.Big {
	if x.Sign() <= 0 {
		return d.new()
	}
	return dmath.Sqrt(d.new(), x)
}

func (d Decimal) Sin(x *decimal.Big) *decimal.Big { return dmath.Sin(d.new(), x) }
func (d Decimal) Cos(x *decimal.Big) *decimal.Big { return dmath.Cos(d.new(), x) }

func (d Decimal) Acos(x *decimal.Big) *decimal.Big {
	switch {
	case x.Cmp(d.one) >= 0:
		return d.new()
	case x.Cmp(d.minusOne) <= 0:
		return d.pi
	}
	return dmath.Acos(d.new(), x)
}

func (d Decimal) Atan2(y, x *decimal.Big) *decimal.Big {
	if y.Sign() == 0 && x.Sign() == 0 {
		return d.new()
	}
	return dmath.Atan2(d.new(), y, x)
}

// exp считается с запасом разрядов: sinh малых аргументов - разность близких чисел.
func (d Decimal) exp(x *decimal.Big) (*decimal.Big, *decimal.Big) {
	e := dmath.Exp(d.wide(), x)
	inv := d.wide().Quo(d.one, e)
	return e, inv
}

func (d Decimal) Sinh(x *decimal.Big) *decimal.Big {
	e, inv := d.exp(x)
	diff := d.wide().Sub(e, inv)
	return d.new().Mul(diff, d.half)
}

func (d Decimal) Cosh(x *decimal.Big) *decimal.Big {
	e, inv := d.exp(x)
	sum := d.wide().Add(e, inv)
	return d.new().Mul(sum, d.half)
}

func (d Decimal) Acosh(x *decimal.Big) *decimal.Big {
	if x.Cmp(d.one) <= 0 {
		return d.new()
	}
	sq := d.wide().Mul(x, x)
	sq = d.wide().Sub(sq, d.one)
	arg := d.wide().Add(x, dmath.Sqrt(d.wide(), sq))
	return dmath.Log(d.new(), arg)
}

func (d Decimal) Atanh(x *decimal.Big) *decimal.Big {
	if x.Cmp(d.limit) > 0 {
		x = d.limit
	} else if neg := d.new().Neg(d.limit); x.Cmp(neg) < 0 {
		x = neg
	}
	num := d.wide().Add(d.one, x)
	den := d.wide().Sub(d.one, x)
	l := dmath.Log(d.wide(), d.wide().Quo(num, den))
	return d.new().Mul(l, d.half)
}

func (d Decimal) Cmp(x, y *decimal.Big) int { return x.Cmp(y) }
func (d Decimal) Sign(x *decimal.Big) int   { return x.Sign() }

func (d Decimal) Eps() *decimal.Big { return d.eps }

func (d Decimal) Equal(x, y *decimal.Big) bool {
	return d.Abs(d.Sub(x, y)).Cmp(d.eps) <= 0
}

func (d Decimal) Less(x, y *decimal.Big) bool {
	return d.Sub(y, x).Cmp(d.eps) > 0
}

var _ Kernel[*decimal.Big] = Decimal{}
