package main

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/palette"
	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/raster"
)

const (
	DefaultWidth  = 3840
	DefaultHeight = 2160

	DefaultOutput = "mandelbrot.rgba"
)

var (
	defaultUpperLeft  = plane.Complex{Re: -2, Im: -1}
	defaultLowerRight = plane.Complex{Re: 1, Im: 1}
)

const (
	outputFlag        = "output"
	maxIterationsFlag = "max-iterations"
	paletteFlag       = "palette"
	workersFlag       = "workers"
)

const long = `Renders the Mandelbrot set as a raw RGBA raster: 4 bytes per pixel,
row-major, no header.

With no arguments renders 3840x2160 pixels between -2-1i and 1+1i.
Otherwise exactly six arguments are required:
  <width>    number of pixels per line (e.g. 3840 for UHD)
  <height>   number of lines of pixels (e.g. 2160 for UHD)
  <ul_x>     upper left corner abscissa, a number in [-2,1]
  <ul_y>     upper left corner ordinate, a number in [-1,1]
  <br_x>     lower right corner abscissa, a number in [-2,1]
  <br_y>     lower right corner ordinate, a number in [-1,1]

Flags must come before the positional arguments.`

// geometry is the part of the configuration given as positional arguments.
type geometry struct {
	width, height         uint
	upperLeft, lowerRight plane.Complex
}

func mainCmd(logger *slog.Logger) *cobra.Command {
	var geom geometry

	cmd := &cobra.Command{
		Use:   "mandelbrot [flags] [<width> <height> <ul_x> <ul_y> <br_x> <br_y>]",
		Short: "Render the Mandelbrot set to a raw RGBA raster",
		Long:  long,
		Args: func(_ *cobra.Command, args []string) error {
			var err error
			geom, err = parseArgs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, logger, geom)
		},
	}

	// Stop at the first positional argument so negative coordinates are not
	// taken for shorthand flags.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringP(outputFlag, "o", DefaultOutput, `file to write the raster to, "-" for stdout`)
	cmd.Flags().UintP(maxIterationsFlag, "n", escape.DefaultMaxIterations, "iteration cap; points that reach it are in the set")
	cmd.Flags().StringP(paletteFlag, "p", palette.NameRainbow, `"rainbow", "gray" or the path of a RIFF .pal file`)
	cmd.Flags().IntP(workersFlag, "w", 1, "goroutines sharing the rows, 0 for one per CPU")

	return cmd
}

func parseArgs(args []string) (geometry, error) {
	switch len(args) {
	case 0:
		return geometry{
			width:      DefaultWidth,
			height:     DefaultHeight,
			upperLeft:  defaultUpperLeft,
			lowerRight: defaultLowerRight,
		}, nil
	case 6:
	default:
		return geometry{}, errors.Errorf("accepts 0 or 6 arguments, received %d", len(args))
	}

	var geom geometry
	var err error

	if geom.width, err = parseUint("width", args[0]); err != nil {
		return geometry{}, err
	}
	if geom.height, err = parseUint("height", args[1]); err != nil {
		return geometry{}, err
	}

	coords := make([]float64, 4)
	for i, name := range []string{"ul_x", "ul_y", "br_x", "br_y"} {
		if coords[i], err = parseFloat(name, args[2+i]); err != nil {
			return geometry{}, err
		}
	}
	geom.upperLeft = plane.Complex{Re: coords[0], Im: coords[1]}
	geom.lowerRight = plane.Complex{Re: coords[2], Im: coords[3]}

	if geom.width != 0 && geom.height > math.MaxInt/4/geom.width {
		return geometry{}, errors.Errorf("%dx%d pixels do not fit in memory", geom.width, geom.height)
	}

	return geom, nil
}

func parseUint(name, s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return uint(v), nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return v, nil
}

func runCmd(cmd *cobra.Command, logger *slog.Logger, geom geometry) error {
	flags := cmd.Flags()

	maxIter, err := flags.GetUint(maxIterationsFlag)
	if err != nil {
		return err
	}
	paletteName, err := flags.GetString(paletteFlag)
	if err != nil {
		return err
	}
	workers, err := flags.GetInt(workersFlag)
	if err != nil {
		return err
	}
	output, err := flags.GetString(outputFlag)
	if err != nil {
		return err
	}

	if err := palette.CheckCap(maxIter); err != nil {
		return errors.Wrapf(err, "invalid --%s", maxIterationsFlag)
	}

	table, err := palette.Load(paletteName, maxIter)
	if err != nil {
		return err
	}

	renderer, err := raster.NewRenderer(maxIter, table, workers)
	if err != nil {
		return err
	}

	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	img := raster.New(geom.width, geom.height, geom.upperLeft, geom.lowerRight)

	logger.Info("generating",
		"width", geom.width, "height", geom.height,
		"upper_left", geom.upperLeft, "lower_right", geom.lowerRight,
		"max_iterations", maxIter, "palette", paletteName, "workers", workers)
	start := time.Now()
	renderer.Render(img)
	logger.Info("generation done", "elapsed", time.Since(start))

	// A raster that cannot be saved is reported but does not fail the run.
	n, err := save(logger, img, output, cmd.OutOrStdout())
	if err != nil {
		logger.Error("could not save raster", "output", output, "written", n, "error", err)
		return nil
	}
	logger.Info("saved", "output", output, "bytes", n)

	return nil
}

func save(logger *slog.Logger, img *raster.Image, output string, stdout io.Writer) (int64, error) {
	if output == "-" {
		return img.WriteTo(stdout)
	}

	f, err := os.Create(output)
	if err != nil {
		return 0, errors.Wrapf(err, "could not open %q", output)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger.Error("could not close output", "name", output, "error", closeErr)
		}
	}()

	n, err := img.WriteTo(f)
	if err != nil {
		return n, errors.Wrapf(err, "could not write %q", output)
	}
	return n, nil
}

// execute runs the command and returns the process exit status. A help
// request prints usage and fails like any other invocation error.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	if args == nil {
		args = []string{}
	}

	cmd := mainCmd(logger)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		return 1
	}
	if help, _ := cmd.Flags().GetBool("help"); help {
		return 1
	}

	return 0
}

func main() {
	ctx := context.Background()

	os.Exit(execute(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
