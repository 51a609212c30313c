package palette

import (
	"encoding/binary"
	"image/color"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/riff"
)

/*
Microsoft RIFF palette, one LOGPALETTE per data chunk:

typedef struct tagLOGPALETTE {
  WORD         palVersion;    // 0x0300
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadRIFF reads every palette of a PAL file and concatenates them.
func ReadRIFF(r io.Reader) (color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not open RIFF stream")
	}
	if formType != palType {
		return nil, errors.Errorf("unsupported RIFF content type: %q", string(formType[:]))
	}

	return readChunks(rd, "PAL")
}

func readChunks(r *riff.Reader, ident string) (color.Palette, error) {
	var res color.Palette

	for i := 0; ; i++ {
		id, size, data, err := r.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, errors.Wrapf(err, "could not read chunk %s#%d", ident, i)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, errors.Wrapf(err, "could not read list %s#%d", ident, i)
			}
			if listType != palType {
				return res, errors.Errorf("list %s#%d has unsupported type %q", ident, i, string(listType[:]))
			}

			pal, err := readChunks(list, ident+"/"+string(listType[:]))
			res = append(res, pal...)
			if err != nil {
				return res, err
			}
		case dataType:
			pal, err := readPalette(data)
			res = append(res, pal...)
			if err != nil {
				return res, errors.Wrapf(err, "chunk %s#%d", ident, i)
			}
		default:
			// Other chunks (e.g. INFO) carry no colors.
		}
	}
}

func readPalette(r io.Reader) (color.Palette, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errors.Wrap(err, "could not read palette header")
	}

	if ver := binary.LittleEndian.Uint16(header[:2]); ver != palVersion {
		return nil, errors.Errorf("unsupported palette version %#04x", ver)
	}

	count := int(binary.LittleEndian.Uint16(header[2:]))
	entries := make([]byte, 4*count)
	if _, err := io.ReadFull(r, entries); err != nil {
		return nil, errors.Wrapf(err, "could not read %d palette entries", count)
	}

	res := make(color.Palette, count)
	for i := range res {
		e := entries[4*i:]
		res[i] = color.NRGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
	}

	return res, nil
}

// WriteRIFF writes pal as a single-chunk PAL file and returns the number of
// bytes written.
func WriteRIFF(w io.Writer, pal color.Palette) (int64, error) {
	if len(pal) > 0xffff {
		return 0, errors.Errorf("palette has %d colors, at most %d fit a PAL chunk", len(pal), 0xffff)
	}

	chunkSize := 4 + 4*len(pal)
	buf := make([]byte, 0, 20+4*len(pal))
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+chunkSize))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunkSize))
	buf = binary.LittleEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(pal)))

	for _, col := range pal {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		buf = append(buf, c.R, c.G, c.B, 0x00)
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), errors.Wrap(err, "could not write palette")
	}
	if n != len(buf) {
		return int64(n), errors.Wrapf(io.ErrShortWrite, "wrote only %d/%d bytes", n, len(buf))
	}

	return int64(n), nil
}
