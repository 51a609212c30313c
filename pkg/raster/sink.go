package raster

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const bytesPerPixel = 4

var _ io.WriterTo = &Image{}

// WriteTo writes the pixels row-major, four little-endian bytes per pixel,
// with no header. The dimensions are not recorded.
//
// Each row is encoded into one reused buffer and handed to w in a single
// Write.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	if img.Width == 0 || len(img.Pixels) == 0 {
		return 0, nil
	}

	width := int(img.Width)
	buf := make([]byte, 0, width*bytesPerPixel)

	var written int64
	for y := 0; y*width < len(img.Pixels); y++ {
		row := img.Pixels[y*width : min((y+1)*width, len(img.Pixels))]

		buf = buf[:0]
		for _, p := range row {
			buf = binary.LittleEndian.AppendUint32(buf, p)
		}

		n, err := w.Write(buf)
		written += int64(n)
		if err == nil && n < len(buf) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return written, errors.Wrapf(err, "could not write row %d/%d", y, img.Height)
		}
	}

	return written, nil
}
