package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/willbeason/julia-escape/pkg/escape"
	"github.com/willbeason/julia-escape/pkg/grid"
	"github.com/willbeason/julia-escape/pkg/palette"
	"github.com/willbeason/julia-escape/pkg/render"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

type options struct {
	width, height int
	region        grid.Region

	c            complexValue
	maxIters     int
	escapeRadius float64
	sentinel     sentinelValue

	preset      string
	palette     string
	supersample int
	workers     int

	out      string
	format   string
	logLevel string
}

func defaultOptions() *options {
	p := escape.DefaultParams()
	dendrite := grid.Presets["dendrite"]

	return &options{
		width:        1000,
		height:       1000,
		region:       dendrite.Region,
		c:            complexValue(p.C),
		maxIters:     p.MaxIters,
		escapeRadius: p.EscapeRadius,
		sentinel:     sentinelValue(p.Sentinel),
		palette:      "inferno",
		supersample:  1,
		workers:      runtime.NumCPU(),
		logLevel:     "warn",
	}
}

func mainCmd() *cobra.Command {
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "julia",
		Short: "Render the escape times of a quadratic Julia set",
		Long: `Render the escape times of z -> z² + c over a rectangle of the complex plane.

Each pixel records the step at which its orbit first left the escape radius,
divided by the iteration budget and colored through a palette.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.width, "width", opts.width, "image width in pixels")
	flags.IntVar(&opts.height, "height", opts.height, "image height in pixels")
	flags.Float64Var(&opts.region.XMin, "xmin", opts.region.XMin, "smallest real part")
	flags.Float64Var(&opts.region.XMax, "xmax", opts.region.XMax, "largest real part")
	flags.Float64Var(&opts.region.YMin, "ymin", opts.region.YMin, "smallest imaginary part")
	flags.Float64Var(&opts.region.YMax, "ymax", opts.region.YMax, "largest imaginary part")
	flags.Var(&opts.c, "c", "constant of the recurrence, e.g. -0.123+0.745i")
	flags.IntVar(&opts.maxIters, "max-iters", opts.maxIters, "iteration budget per point")
	flags.Float64Var(&opts.escapeRadius, "escape-radius", opts.escapeRadius, "magnitude beyond which an orbit has escaped")
	flags.Var(&opts.sentinel, "sentinel", "value for points that never escape: zero, max-iters or nan")
	flags.StringVar(&opts.preset, "preset", "", fmt.Sprintf("named Julia set %v; explicit -c and bounds win", grid.PresetNames()))
	flags.StringVar(&opts.palette, "palette", opts.palette, fmt.Sprintf("color map %v", palette.Names()))
	flags.IntVar(&opts.supersample, "supersample", opts.supersample, "samples per pixel along each axis")
	flags.IntVar(&opts.workers, "workers", opts.workers, "goroutines sharing each iteration step")
	flags.StringVarP(&opts.out, "out", "o", "", `output file, "-" for stdout (default out/<timestamp>.png)`)
	flags.StringVar(&opts.format, "format", "", "png, tiff or bmp (default from the output extension)")
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "debug, info, warn or error")

	return cmd
}

func runCmd(cmd *cobra.Command, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	escape.SetLogger(log)
	defer escape.SetLogger(nil)

	if err := applyPreset(cmd, opts); err != nil {
		return err
	}
	if opts.supersample < 1 {
		return fmt.Errorf("supersample must be at least 1, got %d", opts.supersample)
	}

	pal, err := palette.Lookup(opts.palette)
	if err != nil {
		return err
	}

	format, err := resolveOutput(opts)
	if err != nil {
		return err
	}

	g, err := grid.FromRegion(opts.region, opts.width*opts.supersample, opts.height*opts.supersample)
	if err != nil {
		return err
	}

	params := escape.Params{
		C:            complex128(opts.c),
		MaxIters:     opts.maxIters,
		EscapeRadius: opts.escapeRadius,
		Sentinel:     escape.Sentinel(opts.sentinel),
	}

	start := time.Now()
	field, err := escape.Evaluate(g, params, escape.WithWorkers(opts.workers))
	if err != nil {
		return err
	}
	log.Info("evaluated", slog.Duration("elapsed", time.Since(start)))

	var img image.Image = render.Image(field, pal)
	if opts.supersample > 1 {
		img = render.Downsample(img, opts.width, opts.height)
	}

	if opts.out == "-" {
		err = writeStdout(cmd.OutOrStdout(), img, format)
	} else {
		err = writeFile(opts.out, img, format)
	}
	if err != nil {
		return err
	}
	log.Info("wrote image", slog.String("out", opts.out), slog.String("format", string(format)))

	printSummary(cmd.ErrOrStderr(), field.Stats())

	return nil
}

// applyPreset fills the constant and bounds from a named preset unless they
// were given explicitly.
func applyPreset(cmd *cobra.Command, opts *options) error {
	if opts.preset == "" {
		return nil
	}

	p, err := grid.LookupPreset(opts.preset)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("c") {
		opts.c = complexValue(p.C)
	}
	if !flags.Changed("xmin") {
		opts.region.XMin = p.Region.XMin
	}
	if !flags.Changed("xmax") {
		opts.region.XMax = p.Region.XMax
	}
	if !flags.Changed("ymin") {
		opts.region.YMin = p.Region.YMin
	}
	if !flags.Changed("ymax") {
		opts.region.YMax = p.Region.YMax
	}

	return nil
}

// resolveOutput picks the output format and fills in the default path.
func resolveOutput(opts *options) (render.Format, error) {
	if opts.format != "" {
		if opts.out == "" {
			opts.out = defaultPath(strings.ToLower(opts.format))
		}
		return render.ParseFormat(opts.format)
	}

	switch opts.out {
	case "-":
		return render.PNG, nil
	case "":
		opts.out = defaultPath("png")
	}
	return render.FormatFromPath(opts.out)
}

func defaultPath(ext string) string {
	return filepath.Join("out", fmt.Sprintf("%s.%s", time.Now().Format("20060102150405"), ext))
}

func writeStdout(w io.Writer, img image.Image, format render.Format) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("refusing to write %s image to a terminal", format)
	}

	if err := render.Encode(w, img, format); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}

// writeFile encodes img to path. A partially written file is removed.
func writeFile(path string, img image.Image, format render.Format) error {
	err := os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = render.Encode(f, img, format)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("encoding %s: %w", format, err)
	}

	err = f.Close()
	if err != nil {
		_ = os.Remove(path)
		return err
	}

	return nil
}

func printSummary(w io.Writer, s escape.Stats) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%d points: %d escaped, %d bounded", s.Cells, s.Escaped, s.Unescaped)
	if s.Escaped > 0 {
		p.Fprintf(w, " (escape steps %d to %d)", s.MinEscape, s.MaxEscape)
	}
	p.Fprintln(w)
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
