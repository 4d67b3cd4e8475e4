// Package generator строит случайные сайты в гиперболическом диске
// с квазиравномерным распределением радиусов (модель случайных
// гиперболических графов).
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
)

var ErrParams = errors.New("generator: invalid parameters")

// Params - отрицательные N или R выводятся из остальных параметров.
type Params struct {
	N      int
	R      float64
	Alpha  float64
	Degree float64
	// Seed 0 - зерно от текущего времени.
	Seed int64
}

// Resolve заполняет недостающий N или R.
//
// Радиус выводится из ожидаемой средней степени Degree:
// R = 2 ln(2N/(pi d) * (alpha/(alpha-1/2))^2). Количество точек из
// радиуса - как площадь диска 2pi(cosh(cR)-1) с масштабом c, при котором
// R = 30 дает 1e7 точек.
func (p Params) Resolve() (Params, error) {
	if p.N < 0 && p.R < 0 {
		return p, fmt.Errorf("%w: at least one of N or R has to be specified", ErrParams)
	}
	if p.Alpha <= 0 {
		return p, fmt.Errorf("%w: alpha %v", ErrParams, p.Alpha)
	}

	if p.R < 0 {
		if p.Alpha <= 0.5 || p.Degree <= 0 {
			return p, fmt.Errorf("%w: deriving R needs alpha > 0.5 and degree > 0", ErrParams)
		}
		k := p.Alpha / (p.Alpha - 0.5)
		p.R = 2 * math.Log(2*float64(p.N)/(math.Pi*p.Degree)*k*k)
		if p.R < 0 || math.IsNaN(p.R) {
			p.R = 0
		}
	}
	if p.N < 0 {
		c := math.Acosh(1e7/(2*math.Pi)+1) / 30
		p.N = int(2 * math.Pi * (math.Cosh(c*p.R) - 1))
	}
	return p, nil
}

// Sample возвращает N точек: угол равномерен, радиус распределен с
// плотностью alpha*sinh(alpha r)/(cosh(alpha R)-1) на [0, R].
func Sample(p Params) ([]hyperbolic.Point[float64], error) {
	p, err := p.Resolve()
	if err != nil {
		return nil, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	top := math.Cosh(p.Alpha*p.R) - 1
	points := make([]hyperbolic.Point[float64], p.N)
	for i := range points {
		theta := rnd.Float64() * 2 * math.Pi
		r := math.Acosh(1+top*rnd.Float64()) / p.Alpha
		points[i] = hyperbolic.Point[float64]{R: r, Theta: theta}
	}
	return points, nil
}
