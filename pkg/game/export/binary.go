// Package export writes and reads the raw packed tile dump: ⌈W·H·3/8⌉ bytes,
// no header, row-major, tile 0 in the low three bits of byte 0.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"mapgen/pkg/engine/world"
)

// ErrExportIO wraps every failure to open, write or read a dump
var ErrExportIO = errors.New("export i/o failure")

// PackedSource is anything that exposes a packed tile buffer
type PackedSource interface {
	Packed() []byte
}

// WriteBinary writes the packed buffer of src to w
func WriteBinary(w io.Writer, src PackedSource) error {
	if _, err := w.Write(src.Packed()); err != nil {
		return fmt.Errorf("%w: %v", ErrExportIO, err)
	}
	return nil
}

// SaveBinary writes the packed buffer of src to path, replacing any file
func SaveBinary(path string, src PackedSource) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportIO, err)
	}
	bw := bufio.NewWriter(f)
	if err := WriteBinary(bw, src); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrExportIO, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrExportIO, err)
	}
	return nil
}

// ReadBinary reads a dump of a width x height map from r into a grid
func ReadBinary(r io.Reader, width, height int) (*world.Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrExportIO, width, height)
	}
	buf := make([]byte, world.PackedSize(width, height))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: reading %dx%d dump: %v", ErrExportIO, width, height, err)
	}
	g := world.NewGrid(width, height)
	if err := g.LoadPacked(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportIO, err)
	}
	return g, nil
}

// LoadBinary reads a dump file of a width x height map
func LoadBinary(path string, width, height int) (*world.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportIO, err)
	}
	defer f.Close()
	return ReadBinary(bufio.NewReader(f), width, height)
}
