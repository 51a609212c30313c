package palette

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	NameRainbow = "rainbow"
	NameGray    = "gray"
)

// Load returns the table for a built-in palette name, or reads a PAL file
// when name is not one.
func Load(name string, maxIter uint) (Table, error) {
	switch name {
	case NameRainbow:
		return Rainbow(maxIter)
	case NameGray, "grey":
		return Grayscale(maxIter)
	}

	if err := CheckCap(maxIter); err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown palette %q", name)
	}

	return readTable(f, name, maxIter)
}

// readTable reads a PAL file from rc and closes it. A failed close is
// reported even when reading succeeded.
func readTable(rc io.ReadCloser, name string, maxIter uint) (t Table, err error) {
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			t, err = nil, errors.Wrapf(closeErr, "could not close palette %q", name)
		}
	}()

	pal, err := ReadRIFF(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load palette %q", name)
	}

	return FromPalette(pal, maxIter)
}
