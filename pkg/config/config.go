// Package config - конфигурация запуска из YAML файла. Флаги командной
// строки перекрывают значения из файла.
package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
)

var ErrInvalid = errors.New("config: invalid value")

// NoCenter - сайты не переносятся.
const NoCenter = -1

type Output struct {
	Vertices      string `yaml:"vertices"`
	Triangulation string `yaml:"triangulation"`
}

// Generator - параметры выборки точек. Отрицательные N и R означают
// "вывести из остальных параметров".
type Generator struct {
	Output string  `yaml:"output"`
	N      int     `yaml:"n"`
	Radius float64 `yaml:"radius"`
	Alpha  float64 `yaml:"alpha"`
	Degree float64 `yaml:"degree"`
	Seed   int64   `yaml:"seed"`
}

type Config struct {
	Input     string    `yaml:"input"`
	Precision int       `yaml:"precision"`
	Verbose   bool      `yaml:"verbose"`
	Center    int       `yaml:"center"`
	Output    Output    `yaml:"output"`
	Generator Generator `yaml:"generator"`
}

func Default() Config {
	return Config{
		Precision: kernel.Double,
		Center:    NoCenter,
		Generator: Generator{
			Output: "sample.txt",
			N:      -1,
			Radius: -1,
			Alpha:  1,
			Degree: 8,
		},
	}
}

// Load читает файл поверх Default. Пустой path - только значения по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate проверяет параметры построения и возвращает все найденные ошибки.
// Генератор проверяется отдельно.
func (c Config) Validate() error {
	var errs error
	// неподдерживаемая точность не ошибка: заметание откатится к double
	if c.Precision < kernel.Double {
		errs = multierr.Append(errs, fmt.Errorf("%w: precision %d", ErrInvalid, c.Precision))
	}
	if c.Center < NoCenter {
		errs = multierr.Append(errs, fmt.Errorf("%w: center %d", ErrInvalid, c.Center))
	}
	return errs
}

func (g Generator) Validate() error {
	var errs error
	if g.N < 0 && g.Radius < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: at least one of n or radius has to be specified", ErrInvalid))
	}
	if g.Alpha <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: alpha %v must be positive", ErrInvalid, g.Alpha))
	}
	if g.Radius < 0 && g.Alpha <= 0.5 {
		errs = multierr.Append(errs, fmt.Errorf("%w: deriving radius needs alpha > 0.5, got %v", ErrInvalid, g.Alpha))
	}
	if g.Radius < 0 && g.Degree <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: degree %v must be positive", ErrInvalid, g.Degree))
	}
	if g.Output == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: generator output is empty", ErrInvalid))
	}
	return errs
}
