package palette

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette() color.Palette {
	return color.Palette{
		color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff},
		color.NRGBA{R: 0xf0, G: 0xe0, B: 0xd0, A: 0xff},
		color.NRGBA{R: 0x00, G: 0x80, B: 0xff, A: 0xff},
	}
}

func TestRIFF(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteRIFF(&buf, testPalette())
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, 20+4*3, buf.Len())
	assert.Equal(t, []byte("RIFF"), buf.Bytes()[:4])
	assert.Equal(t, []byte("PAL data"), buf.Bytes()[8:16])

	pal, err := ReadRIFF(&buf)
	require.NoError(t, err)
	assert.Equal(t, testPalette(), pal)
}

func TestReadRIFFErrors(t *testing.T) {
	var buf bytes.Buffer
	_, err := WriteRIFF(&buf, testPalette())
	require.NoError(t, err)
	valid := buf.Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not riff", data: []byte("this is not a palette file")},
		{name: "wrong form", data: append(append([]byte{}, valid[:8]...), append([]byte("WAVE"), valid[12:]...)...)},
		{name: "bad version", data: func() []byte {
			d := append([]byte{}, valid...)
			d[20] = 0x01
			return d
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRIFF(bytes.NewReader(tt.data))
			assert.Error(t, err)
		})
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

func TestWriteRIFFShort(t *testing.T) {
	_, err := WriteRIFF(shortWriter{}, testPalette())
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrShortWrite))
}

func TestLoad(t *testing.T) {
	table, err := Load(NameRainbow, 16)
	require.NoError(t, err)
	assert.Equal(t, rainbow(t, 16), table)

	table, err = Load(NameGray, 16)
	require.NoError(t, err)
	assert.Equal(t, grayscale(t, 16), table)

	path := filepath.Join(t.TempDir(), "three.pal")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = WriteRIFF(f, testPalette())
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err = Load(path, 4)
	require.NoError(t, err)
	want, err := FromPalette(testPalette(), 4)
	require.NoError(t, err)
	assert.Equal(t, want, table)

	_, err = Load(filepath.Join(t.TempDir(), "missing.pal"), 4)
	assert.Error(t, err)
}

type closeFailer struct {
	io.Reader
	closed bool
}

var errCloseFailed = errors.New("close failed")

func (c *closeFailer) Close() error {
	c.closed = true
	return errCloseFailed
}

func TestReadTableClose(t *testing.T) {
	var buf bytes.Buffer
	_, err := WriteRIFF(&buf, testPalette())
	require.NoError(t, err)

	rc := &closeFailer{Reader: &buf}
	_, err = readTable(rc, "three.pal", 4)
	require.Error(t, err)
	assert.True(t, rc.closed)
	assert.True(t, errors.Is(err, errCloseFailed))

	// A read error takes precedence over the close error.
	rc = &closeFailer{Reader: bytes.NewReader([]byte("not a palette"))}
	_, err = readTable(rc, "bad.pal", 4)
	require.Error(t, err)
	assert.True(t, rc.closed)
	assert.False(t, errors.Is(err, errCloseFailed))
}
