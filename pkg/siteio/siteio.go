// Package siteio читает и пишет текстовые файлы сайтов и результатов.
//
// Сайт - строка "theta r". Вершины пишутся как "r theta", ребра
// триангуляции как "a b" с номерами сайтов.
package siteio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/voronoi"
)

var ErrFormat = errors.New("siteio: malformed line")

// ReadSites разбирает "theta r" построчно. Пустые строки пропускаются.
func ReadSites(r io.Reader) ([]hyperbolic.Point[float64], error) {
	var points []hyperbolic.Point[float64]

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w %d: want \"theta r\", got %q", ErrFormat, line, text)
		}
		theta, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: angle: %w", ErrFormat, line, err)
		}
		radius, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: radius: %w", ErrFormat, line, err)
		}
		points = append(points, hyperbolic.Point[float64]{R: radius, Theta: theta})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sites: %w", err)
	}
	return points, nil
}

func ReadSitesFile(path string) ([]hyperbolic.Point[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	points, err := ReadSites(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

func WriteSites(w io.Writer, points []hyperbolic.Point[float64]) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%.6f %.6f\n", p.Theta, p.R); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func WriteVertices(w io.Writer, d *voronoi.Diagram) error {
	bw := bufio.NewWriter(w)
	for _, v := range d.Vertices {
		if _, err := fmt.Fprintf(bw, "%.9f %.9f\n", v.R, v.Theta); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTriangulation пишет двойственные ребра, каждое один раз.
func WriteTriangulation(w io.Writer, d *voronoi.Diagram) error {
	bw := bufio.NewWriter(w)
	for _, e := range d.Triangulation() {
		if _, err := fmt.Fprintf(bw, "%d %d\n", e[0], e[1]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile создает path и передает его в write.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
