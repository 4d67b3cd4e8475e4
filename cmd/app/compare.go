package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0x0FACED/go-hyperfortune/pkg/hyperbolic"
	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
	"github.com/0x0FACED/go-hyperfortune/pkg/logger"
	"github.com/0x0FACED/go-hyperfortune/pkg/siteio"
	"github.com/0x0FACED/go-hyperfortune/pkg/voronoi"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare diagrams computed with different precisions",
	Long: `Computes the diagram of the same sites once per precision, concurrently,
and compares every result against the one with the most bits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare(cmd)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringP("input", "i", "", "Site file, one \"theta r\" per line")
	compareCmd.Flags().IntSlice("precisions", []int{kernel.Double, 64, 128, 256}, "Precisions to compare, 0 for double")
	compareCmd.Flags().Int("center", voronoi.NoCenter, "Move this site to the origin before the sweep")
}

type precisionResult struct {
	bits    int
	diagram *voronoi.Diagram
}

// computeAll строит диаграмму для каждой точности в отдельной горутине.
// Результаты упорядочены как precisions.
func computeAll(ctx context.Context, points []hyperbolic.Point[float64], precisions []int, center int, log *logger.ZapLogger) ([]precisionResult, error) {
	results := make([]precisionResult, len(precisions))

	g, ctx := errgroup.WithContext(ctx)
	for i, bits := range precisions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := voronoi.CreateDiagramWithOptions(points, voronoi.Options{
				Precision: bits,
				Center:    center,
				Logger:    log.With(zap.Int("precision", bits)),
			})
			if err != nil {
				return fmt.Errorf("precision %d: %w", bits, err)
			}
			results[i] = precisionResult{bits: bits, diagram: d}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reference - результат с наибольшей разрядностью, double считается младше всех.
func reference(results []precisionResult) int {
	best := 0
	for i, r := range results {
		if r.bits > results[best].bits {
			best = i
		}
	}
	return best
}

func runCompare(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Input == "" {
		return fmt.Errorf("no input file, use --input or the config")
	}

	precisions, _ := cmd.Flags().GetIntSlice("precisions")
	precisions = slices.Compact(slices.Sorted(slices.Values(precisions)))
	if len(precisions) < 2 {
		return fmt.Errorf("need at least two distinct precisions, got %v", precisions)
	}

	log := newLogger(cfg)
	defer log.Sync()

	points, err := siteio.ReadSitesFile(cfg.Input)
	if err != nil {
		return err
	}

	results, err := computeAll(cmd.Context(), points, precisions, cfg.Center, log)
	if err != nil {
		return err
	}

	ref := results[reference(results)]
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.bits == ref.bits {
			continue
		}
		c := voronoi.Compare(r.diagram, ref.diagram)
		fmt.Fprintf(out, "%s vs %s: %d matching edges, %d missing, %d extra, max vertex deviation %.3e\n",
			precisionName(r.bits), precisionName(ref.bits),
			c.Matching, len(c.Missing), len(c.Extra), c.MaxVertexDeviation)
		if !c.Equal() {
			log.Warn("[app] Диаграммы различаются",
				zap.Int("precision", r.bits), zap.Int("reference", ref.bits))
		}
	}
	return nil
}

func precisionName(bits int) string {
	if bits == kernel.Double {
		return "double"
	}
	return fmt.Sprintf("%d bits", bits)
}
