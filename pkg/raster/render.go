package raster

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/palette"
	"github.com/willbeason/mandelbrot/pkg/parallel"
)

// A Renderer colors every pixel of an Image with Table[Evaluator.Count].
type Renderer struct {
	Evaluator escape.Evaluator
	Table     palette.Table

	// Workers is the number of goroutines sharing the rows of an image.
	// 1 renders on the calling goroutine; < 1 uses every CPU.
	Workers int
}

// NewRenderer returns a Renderer for the quadratic map. table must have one
// entry per possible count, maxIter+1 in all.
func NewRenderer(maxIter uint, table palette.Table, workers int) (*Renderer, error) {
	if err := table.Check(maxIter); err != nil {
		return nil, errors.Wrap(err, "invalid color table")
	}

	return &Renderer{
		Evaluator: escape.Evaluator{MaxIterations: maxIter},
		Table:     table,
		Workers:   workers,
	}, nil
}

// Render renders img on the calling goroutine.
func Render(img *Image, maxIter uint, table palette.Table) {
	r := Renderer{
		Evaluator: escape.Evaluator{MaxIterations: maxIter},
		Table:     table,
		Workers:   1,
	}
	r.Render(img)
}

// Render writes every pixel of img exactly once. img.Pixels must already
// hold Width*Height entries.
//
// Rows are split into contiguous bands, one job per band. Bands never
// overlap, so workers write to disjoint parts of img.Pixels.
func (r *Renderer) Render(img *Image) {
	if img.Width == 0 || img.Height == 0 {
		return
	}

	pool := parallel.Start(r.Workers)
	for _, band := range bands(img.Height, r.Workers) {
		pool.Do(func() {
			r.renderRows(img, band[0], band[1])
		})
	}
	pool.Wait()
}

func (r *Renderer) renderRows(img *Image, from, to uint) {
	dx, dy := img.Step()

	for y := from; y < to; y++ {
		row := img.Pixels[y*img.Width : (y+1)*img.Width]
		for x := range row {
			row[x] = r.Table[r.Evaluator.Count(img.sample(uint(x), y, dx, dy))]
		}
	}
}

// bands splits [0, height) into contiguous [from, to) row ranges, about four
// per worker.
func bands(height uint, workers int) [][2]uint {
	if workers == 1 {
		return [][2]uint{{0, height}}
	}

	n := uint(4 * runtime.GOMAXPROCS(0))
	if workers > 1 {
		n = uint(4 * workers)
	}
	n = min(n, height)

	res := make([][2]uint, 0, n)
	for i := uint(0); i < n; i++ {
		res = append(res, [2]uint{i * height / n, (i + 1) * height / n})
	}
	return res
}
