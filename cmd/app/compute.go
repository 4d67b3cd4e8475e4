package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-hyperfortune/pkg/kernel"
	"github.com/0x0FACED/go-hyperfortune/pkg/siteio"
	"github.com/0x0FACED/go-hyperfortune/pkg/voronoi"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute the Voronoi diagram of a site file",
	Long: `Reads sites from --input, runs the sweep and reports the timing.
Vertices ("r theta") and Delaunay edges ("a b") are written when
--vertices and --triangulation are set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompute(cmd)
	},
}

func init() {
	rootCmd.AddCommand(computeCmd)
	computeCmd.Flags().StringP("input", "i", "", "Site file, one \"theta r\" per line")
	computeCmd.Flags().IntP("precision", "p", kernel.Double, "Bits of precision: 32..256 in steps of 16, 0 for double")
	computeCmd.Flags().StringP("vertices", "d", "", "Write Voronoi vertices to this file")
	computeCmd.Flags().StringP("triangulation", "t", "", "Write Delaunay edges to this file")
	computeCmd.Flags().Int("center", voronoi.NoCenter, "Move this site to the origin before the sweep")
}

func runCompute(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("vertices") {
		cfg.Output.Vertices, _ = flags.GetString("vertices")
	}
	if flags.Changed("triangulation") {
		cfg.Output.Triangulation, _ = flags.GetString("triangulation")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Input == "" {
		return errors.New("no input file, use --input or the config")
	}

	log := newLogger(cfg)
	defer log.Sync()

	points, err := siteio.ReadSitesFile(cfg.Input)
	if err != nil {
		return err
	}

	bits, _ := kernel.ParsePrecision(cfg.Precision)
	if bits == kernel.Double {
		fmt.Fprintln(cmd.OutOrStdout(), "Using double precision")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Using a precision of %d bits\n", bits)
	}

	start := time.Now()
	diagram, err := voronoi.CreateDiagramWithOptions(points, voronoi.Options{
		Precision: cfg.Precision,
		Center:    cfg.Center,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(cmd.OutOrStdout(), "Voronoi diagram of %d sites computed in %d microseconds\n",
		len(points), elapsed.Microseconds())
	log.Info("[app] Диаграмма построена",
		zap.Int("edges", len(diagram.Edges)),
		zap.Int("vertices", len(diagram.Vertices)),
		zap.Duration("elapsed", elapsed))

	if cfg.Output.Vertices != "" {
		err := siteio.WriteFile(cfg.Output.Vertices, func(w io.Writer) error {
			return siteio.WriteVertices(w, diagram)
		})
		if err != nil {
			return err
		}
	}
	if cfg.Output.Triangulation != "" {
		err := siteio.WriteFile(cfg.Output.Triangulation, func(w io.Writer) error {
			return siteio.WriteTriangulation(w, diagram)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
