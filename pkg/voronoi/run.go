package voronoi

import (
	"errors"
	"fmt"
	"math"

	"github.com/ericlagergren/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
	"github.com/0x0FACED/go-hyperfortune/pkg/logger"
)

var ErrSite = errors.New("voronoi: invalid site")

// NoCenter - сайты не переносятся перед заметанием.
const NoCenter = -1

type Options struct {
	// Precision - разрядность в битах, kernel.Double - float64.
	Precision int
	// Center - номер сайта, который переносится в начало координат.
	Center int
	Logger *logger.ZapLogger
}

// Точки задаются в полярных координатах (R, Theta), номер сайта - индекс точки.
func CreateDiagram(points []hyperbolic.Point[float64], precision int, log *logger.ZapLogger) (*Diagram, error) {
	return CreateDiagramWithOptions(points, Options{Precision: precision, Center: NoCenter, Logger: log})
}

func CreateDiagramWithOptions(points []hyperbolic.Point[float64], opts Options) (*Diagram, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	if err := validatePoints(points); err != nil {
		return nil, err
	}
	if opts.Center != NoCenter && (opts.Center < 0 || opts.Center >= len(points)) {
		return nil, fmt.Errorf("%w: center %d out of range [0, %d)", ErrSite, opts.Center, len(points))
	}

	bits, fallback := kernel.ParsePrecision(opts.Precision)
	if fallback {
		log.Warn("[f] Точность не поддерживается, используется double",
			zap.Int("precision", opts.Precision), zap.Ints("supported", kernel.Precisions()))
	}

	if bits == kernel.Double {
		return run[float64](kernel.NewNative(), points, opts.Center, log)
	}
	k, err := kernel.NewDecimal(bits)
	if err != nil {
		return nil, err
	}
	return run[*decimal.Big](k, points, opts.Center, log)
}

func validatePoints(points []hyperbolic.Point[float64]) error {
	var errs error
	for i, p := range points {
		if math.IsNaN(p.R) || math.IsInf(p.R, 0) || p.R < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: point %d: radius %v", ErrSite, i, p.R))
		}
		if math.IsNaN(p.Theta) || math.IsInf(p.Theta, 0) {
			errs = multierr.Append(errs, fmt.Errorf("%w: point %d: angle %v", ErrSite, i, p.Theta))
		}
	}
	return errs
}

// run инстанцирует заметание для ядра k. Частичная диаграмма не возвращается.
func run[T any](k kernel.Kernel[T], points []hyperbolic.Point[float64], center int, log *logger.ZapLogger) (_ *Diagram, err error) {
	defer recoverInvariant(log, &err)

	converted := make([]hyperbolic.Point[T], len(points))
	for i, p := range points {
		converted[i] = hyperbolic.NewPoint(k, p.R, p.Theta)
	}
	sites := hyperbolic.NewSites(converted)
	if center != NoCenter {
		sites = hyperbolic.Recenter(k, sites, sites[center].Point)
	}

	diagram := NewDiagram()
	NewFortune(k, diagram, sites, log).Calculate()
	return diagram, nil
}

// recoverInvariant превращает панику с ErrInvariant или hyperbolic.ErrContract
// в ошибку. Остальные паники пробрасываются дальше.
func recoverInvariant(log *logger.ZapLogger, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok || !(errors.Is(e, ErrInvariant) || errors.Is(e, hyperbolic.ErrContract)) {
		panic(r)
	}
	log.Error("[f] Построение прервано", zap.Error(e))
	*err = e
}
